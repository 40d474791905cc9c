package handlers

import (
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/records"
)

type RecordsHandler struct {
	log   logrus.FieldLogger
	store records.Store
	dec   *schema.Decoder
}

func NewRecordsHandler(log logrus.FieldLogger, store records.Store) *RecordsHandler {
	return &RecordsHandler{log: log, store: store, dec: newDecoder()}
}

func (h RecordsHandler) Top(w http.ResponseWriter, r *http.Request) {
	var filter records.Filter
	if err := h.dec.Decode(&filter, r.URL.Query()); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	if filter.Difficulty != "" && filter.Difficulty != string(mines.Custom) {
		d, err := mines.ParseDifficulty(filter.Difficulty)
		if err != nil {
			sendError(w, h.log, http.StatusBadRequest, err)
			return
		}
		filter.Difficulty = string(d)
	}

	top, err := h.store.Top(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to fetch records")
		return
	}
	sendJSONOrLog(w, h.log, top)
}
