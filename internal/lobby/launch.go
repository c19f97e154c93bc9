package lobby

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/launcher"
	"github.com/eti-lan/game-lobby/internal/protocol"
)

// handleRequestLaunch runs the Idle -> Launching transition: password gate,
// readiness quorum over rostered players, ephemeral ID allocation in
// snapshot order, durable hand-off, then the gameLaunch and assignIDs
// broadcasts. A persistence failure aborts before any broadcast.
func (l *Lobby) handleRequestLaunch(password string) error {
	if password != l.adminPassword {
		return ErrForbidden
	}
	if l.sessionActive {
		return ErrSessionActive
	}

	var roster []*Player
	for _, p := range l.players {
		if p.Team == TeamUnassigned {
			continue
		}
		if !p.Ready {
			return ErrNotAllReady
		}
		roster = append(roster, p)
	}

	assigned := make(map[string]int, len(roster))
	entries := make([]launcher.Player, 0, len(roster))
	for i, p := range roster {
		id := i + 1
		assigned[p.IdentityKey] = id
		entries = append(entries, launcher.Player{
			PlayerID:    id,
			IdentityKey: p.IdentityKey,
			Rank:        p.Rank,
			Name:        p.Name,
			Champion:    p.Champion,
			Team:        p.Team,
			Summoner1:   p.Summoner1,
			Summoner2:   p.Summoner2,
			Ribbon:      2,
			Runes:       l.runes.Runes,
			Talents:     l.runes.Talents,
		})
	}

	info := buildGameInfo(l.settings, entries)
	if err := l.launcher.Launch(info); err != nil {
		l.log.Error("launch hand-off failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	l.session = &GameSession{
		ID:          ulid.Make().String(),
		GameID:      info.GameID,
		AssignedIDs: assigned,
	}
	l.sessionActive = true

	l.broadcast(protocol.ServerMessage{
		Type: protocol.MsgGameLaunch,
		GameConfig: &protocol.GameLaunchConfig{
			GameServer: l.gameServerPath,
			GamePort:   l.gameServerPort,
			GameConfig: &info,
		},
	})
	l.broadcast(protocol.ServerMessage{Type: protocol.MsgAssignIDs, AssignedIDs: assigned})

	l.log.Info("game launched",
		zap.String("session_id", l.session.ID),
		zap.Int64("game_id", info.GameID),
		zap.Int("players", len(roster)))

	// The reset always fires; there is no cancelling an in-flight launch.
	time.AfterFunc(l.resetDelay, func() {
		select {
		case l.inbox <- resetFired{}:
		case <-l.ctx.Done():
		}
	})
	return nil
}

func (l *Lobby) handleReset() {
	for _, p := range l.players {
		p.Team = TeamUnassigned
		p.Ready = false
	}
	l.sessionActive = false
	l.session = nil
	l.log.Info("lobby reset after game start")
	l.broadcastPlayers()
}

func (l *Lobby) handleUpdateSettings(password string, s config.GameSettings) error {
	if password != l.adminPassword {
		return ErrForbidden
	}
	if s.TickRate <= 0 {
		return fmt.Errorf("%w: invalid tick rate %d", ErrValidation, s.TickRate)
	}
	if !l.catalog.HasMap(s.Map) {
		return fmt.Errorf("%w: selected map does not exist", ErrValidation)
	}
	if err := l.store.Save(s); err != nil {
		l.log.Error("saving game settings failed", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	l.settings = s
	l.log.Info("game settings updated", zap.Int("map", s.Map), zap.Int("tick_rate", s.TickRate))
	settings := s
	l.broadcast(protocol.ServerMessage{Type: protocol.MsgGameSettingsUpdate, Settings: &settings})
	return nil
}

func buildGameInfo(s config.GameSettings, players []launcher.Player) launcher.GameInfo {
	return launcher.GameInfo{
		GameID: time.Now().UnixMilli(),
		Game: launcher.Game{
			Map:      s.Map,
			GameMode: "CLASSIC",
		},
		Settings: launcher.InfoSettings{
			TickRate:                   s.TickRate,
			ForceStartTimer:            60,
			SuppressScriptNotFoundLogs: true,
			ManacostsEnabled:           s.ManacostsEnabled,
			CooldownsEnabled:           s.CooldownsEnabled,
			MinionSpawnsEnabled:        s.MinionSpawnsEnabled,
			ContentPath:                "../../../gameclient",
			ScriptAssemblies:           []string{"ScriptsCore", "CBProject-Converted", "Chronobreak-Scripts"},
		},
		Players: players,
	}
}
