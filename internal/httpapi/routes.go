package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eti-lan/game-lobby/internal/ws"
)

func SetupRoutes(a *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/champions", a.Champions)
	r.Get("/spells", a.Spells)
	r.Get("/maps", a.Maps)
	r.Get("/gameSettings", a.GameSettings)
	r.Get("/healthz", a.Healthz)

	r.Post("/team", a.Team)
	r.Post("/readyToggle", a.ReadyToggle)
	r.Post("/leaveTeam", a.LeaveTeam)
	r.Post("/admin", a.Admin)
	r.Post("/startGame", a.StartGame)
	r.Post("/updateGameSettings", a.UpdateGameSettings)

	r.Get("/ws", ws.Handler(a.lb, a.log))
	return r
}
