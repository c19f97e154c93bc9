package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/eti-lan/game-lobby/internal/catalog"
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/lobby"
)

type API struct {
	lb  *lobby.Lobby
	cat *catalog.Catalog
	log *zap.Logger
}

func New(lb *lobby.Lobby, cat *catalog.Catalog, log *zap.Logger) *API {
	return &API{lb: lb, cat: cat, log: log}
}

func (a *API) Champions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"champions": a.cat.Champions})
}

func (a *API) Spells(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"spells": a.cat.Spells})
}

func (a *API) Maps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"maps": a.cat.Maps})
}

func (a *API) Team(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Team string `json:"team"`
	}
	if !decode(w, r, &req) {
		return
	}

	reply := make(chan lobby.Result, 1)
	a.lb.Inbox() <- lobby.SetTeam{Name: req.Name, Team: req.Team, Reply: reply}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%s switched to team %s", req.Name, req.Team),
		"players": res.Players,
	})
}

func (a *API) ReadyToggle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Ready *bool  `json:"ready"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Ready == nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid readyToggle format."})
		return
	}

	reply := make(chan lobby.Result, 1)
	a.lb.Inbox() <- lobby.SetReady{Name: req.Name, Ready: *req.Ready, Reply: reply}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": res.Players})
}

func (a *API) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}

	reply := make(chan lobby.Result, 1)
	a.lb.Inbox() <- lobby.LeaveTeam{Name: req.Name, Reply: reply}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": res.Players})
}

func (a *API) Admin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password   string `json:"password"`
		PlayerName string `json:"playerName"`
	}
	if !decode(w, r, &req) {
		return
	}

	reply := make(chan lobby.Result, 1)
	a.lb.Inbox() <- lobby.Authenticate{Password: req.Password, PlayerName: req.PlayerName, Reply: reply}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Admin %s authenticated", req.PlayerName),
	})
}

func (a *API) StartGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	reply := make(chan lobby.Result, 1)
	a.lb.Inbox() <- lobby.RequestLaunch{Password: req.Password, Reply: reply}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Game has been started."})
}

func (a *API) GameSettings(w http.ResponseWriter, r *http.Request) {
	reply := make(chan lobby.SettingsResult, 1)
	a.lb.Inbox() <- lobby.GetSettings{Reply: reply}
	res := <-reply
	writeJSON(w, http.StatusOK, map[string]any{"gameSettings": res.Settings})
}

func (a *API) UpdateGameSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password            string `json:"password"`
		ManacostsEnabled    *bool  `json:"MANACOSTS_ENABLED"`
		CooldownsEnabled    *bool  `json:"COOLDOWNS_ENABLED"`
		MinionSpawnsEnabled *bool  `json:"MINION_SPAWNS_ENABLED"`
		TickRate            *int   `json:"TICK_RATE"`
		Map                 *int   `json:"map"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.ManacostsEnabled == nil || req.CooldownsEnabled == nil ||
		req.MinionSpawnsEnabled == nil || req.TickRate == nil || req.Map == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid format for game settings."})
		return
	}

	reply := make(chan lobby.SettingsResult, 1)
	a.lb.Inbox() <- lobby.UpdateSettings{
		Password: req.Password,
		Settings: config.GameSettings{
			ManacostsEnabled:    *req.ManacostsEnabled,
			CooldownsEnabled:    *req.CooldownsEnabled,
			MinionSpawnsEnabled: *req.MinionSpawnsEnabled,
			TickRate:            *req.TickRate,
			Map:                 *req.Map,
		},
		Reply: reply,
	}
	res := <-reply
	if res.Err != nil {
		writeError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Game settings updated successfully.",
		"settings": res.Settings,
	})
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body."})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, lobby.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, lobby.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, lobby.ErrValidation), errors.Is(err, lobby.ErrNotAllReady):
		status = http.StatusBadRequest
	case errors.Is(err, lobby.ErrSessionActive):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
