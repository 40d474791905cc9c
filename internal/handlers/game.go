package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/command"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/records"
	"github.com/vancomm/minesweeper/internal/session"
)

var moves = map[string]command.Kind{
	"open":   command.Open,
	"flag":   command.Flag,
	"unflag": command.Unflag,
}

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *session.Manager
	jwt      *config.JWT
	ws       *config.WebSocket
	records  records.Store
	dec      *schema.Decoder
}

func NewGameHandler(
	log logrus.FieldLogger,
	sessions *session.Manager,
	jwt *config.JWT,
	ws *config.WebSocket,
	store records.Store,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		jwt:      jwt,
		ws:       ws,
		records:  store,
		dec:      newDecoder(),
	}
}

func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return nil, false
	}
	s, err := g.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return s, true
}

// apply runs fn against the session game, saves a record if fn finished the
// game and returns a snapshot taken under the same lock.
func (g GameHandler) apply(
	ctx context.Context, s *session.Session, fn func(rt *command.Router) error,
) (dto SessionDTO, err error) {
	s.Do(func(rt *command.Router) error {
		wasOver := rt.Game().Status.Over()
		err = fn(rt)
		dto = NewSessionDTO(s.Id, rt.Game())
		if !wasOver && rt.Game().Status.Over() {
			g.saveRecord(ctx, rt.Game())
		}
		return nil
	})
	return dto, err
}

func (g GameHandler) saveRecord(ctx context.Context, game *mines.Game) {
	rec, err := records.FromGame(game)
	if err != nil {
		g.log.WithError(err).Warn("unable to build record")
		return
	}
	if err := g.records.Save(ctx, rec); err != nil {
		g.log.WithError(err).WithField("record", rec.Id.String()).Error("unable to save record")
		return
	}
	g.log.WithFields(logrus.Fields{
		"record":      rec.Id.String(),
		"difficulty":  rec.Difficulty,
		"won":         rec.Won,
		"duration_ms": rec.Duration.Milliseconds(),
	}).Info("saved record")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mines.ErrGameOver), errors.Is(err, mines.ErrNotStarted):
		return http.StatusConflict
	case errors.Is(err, mines.ErrInvalidParams),
		errors.Is(err, mines.ErrUnknownDifficulty),
		errors.Is(err, command.ErrUnknownCommand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var dto NewGameDTO
	if err := g.dec.Decode(&dto, r.URL.Query()); err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	cmd := command.Command{Kind: command.New}
	if dto.Seed != "" {
		params, err := mines.ParseSeed(dto.Seed)
		if err != nil {
			sendError(w, g.log, http.StatusBadRequest, err)
			return
		}
		cmd.Difficulty, cmd.Params = mines.Custom, params
	} else {
		d, err := mines.ParseDifficulty(dto.Difficulty)
		if err != nil {
			sendError(w, g.log, http.StatusBadRequest, err)
			return
		}
		cmd.Difficulty = d
	}

	s := g.sessions.Create()
	created, err := g.apply(r.Context(), s, func(rt *command.Router) error {
		_, err := rt.Apply(cmd)
		return err
	})
	if err != nil {
		g.sessions.Delete(s.Id)
		sendError(w, g.log, statusFor(err), err)
		return
	}

	token, err := g.jwt.Sign(s.Id.String())
	if err != nil {
		g.sessions.Delete(s.Id)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign session token")
		return
	}

	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, CreatedDTO{Session: created, Token: token})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	dto, _ := g.apply(r.Context(), s, func(*command.Router) error { return nil })
	sendJSONOrLog(w, g.log, dto)
}

func (g GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var move MoveDTO
	if err := g.dec.Decode(&move, r.URL.Query()); err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	kind, ok := moves[strings.ToLower(move.Move)]
	if !ok {
		sendError(w, g.log, http.StatusBadRequest, fmt.Errorf("%w: %q", command.ErrUnknownCommand, move.Move))
		return
	}

	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	dto, err := g.apply(r.Context(), s, func(rt *command.Router) error {
		_, err := rt.Apply(command.Command{Kind: kind, X: move.X, Y: move.Y})
		return err
	})
	if err != nil {
		sendError(w, g.log, statusFor(err), err)
		return
	}
	sendJSONOrLog(w, g.log, dto)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	dto, err := g.apply(r.Context(), s, func(rt *command.Router) error {
		_, err := rt.Game().Forfeit()
		return err
	})
	if err != nil {
		sendError(w, g.log, statusFor(err), err)
		return
	}
	sendJSONOrLog(w, g.log, dto)
}

// Connect upgrades to a websocket that takes router command lines, one or
// more per text message, and answers each message with the session state.
func (g GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.Id.String())
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("unable to read message")
			}
			return
		}
		if mt != websocket.TextMessage {
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text only"))
			return
		}
		text := strings.TrimSpace(string(message))
		log.WithField("text", text).Debug("ws message")

		var res command.Result
		dto, err := g.apply(r.Context(), s, func(rt *command.Router) (err error) {
			res, err = rt.ExecuteAll(text)
			return err
		})
		reply := wsReply{SessionDTO: dto}
		if err != nil {
			reply.Error = err.Error()
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("unable to write reply")
			return
		}
		if res.Command.Kind == command.Quit {
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return
		}
	}
}
