package app

import (
	"net/http"

	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/middleware"
)

func (a *App) handle(method, path string, h http.HandlerFunc, mws ...middleware.Middleware) {
	a.router.Handle(method+" "+a.basePath+path, middleware.Wrap(h, mws...))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.jwt, a.ws, a.records)
	top := handlers.NewRecordsHandler(a.log, a.records)
	auth := middleware.Auth(a.log, a.jwt)

	a.handle(http.MethodPost, "/game", game.NewGame)
	a.handle(http.MethodGet, "/game/{id}", game.Fetch)
	a.handle(http.MethodPost, "/game/{id}/move", game.Move, auth)
	a.handle(http.MethodPost, "/game/{id}/forfeit", game.Forfeit, auth)
	a.handle(http.MethodGet, "/game/{id}/connect", game.Connect, auth)
	a.handle(http.MethodGet, "/records", top.Top)
}
