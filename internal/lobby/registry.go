package lobby

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eti-lan/game-lobby/internal/protocol"
)

func (l *Lobby) handleAttach(msg Attach) {
	l.conns[msg.ConnID] = &conn{id: msg.ConnID, outbox: msg.Outbox, alive: true}
	l.sendTo(msg.ConnID, protocol.System("Welcome to the lobby!"))
	l.log.Info("client connected", zap.String("conn_id", msg.ConnID))
}

func (l *Lobby) handleDisconnect(connID string) {
	if l.removeConn(connID) {
		l.broadcastPlayers()
	}
}

func (l *Lobby) handleRegister(msg Register) {
	c, ok := l.conns[msg.ConnID]
	if !ok {
		return
	}

	key := strings.TrimSpace(msg.IdentityKey)
	name := strings.TrimSpace(msg.Name)
	if key == "" {
		l.sendTo(msg.ConnID, protocol.Error("No valid identity key provided. Registration refused."))
		return
	}
	if name == "" {
		l.sendTo(msg.ConnID, protocol.Error("Invalid or missing player name."))
		return
	}

	// A connection switching identity keys abandons its old player; a
	// player without a connection must not linger in the registry.
	if c.key != "" && c.key != key {
		if old := l.byKey[c.key]; old != nil && old.connID == msg.ConnID {
			l.removePlayer(old)
		}
		c.key = ""
	}

	now := time.Now()
	p := l.byKey[key]
	if p == nil {
		p = newPlayer(name, key, now)
		p.connID = msg.ConnID
		l.players = append(l.players, p)
		l.byKey[key] = p
		l.log.Info("player registered", zap.String("name", name))
	} else {
		if p.connID != "" && p.connID != msg.ConnID {
			l.log.Info("player has an old connection, terminating it", zap.String("name", name))
			l.terminateConn(p.connID)
		}
		p.Name = name
		p.connID = msg.ConnID
		p.LastSeen = now
		// A reconnecting player must re-ready.
		p.Ready = false
		l.log.Info("player reconnected", zap.String("name", name))
	}
	c.key = key

	l.sendTo(msg.ConnID, protocol.System("Registration successful."))
	l.broadcastPlayers()
}

func (l *Lobby) handleChat(msg Chat) {
	c, ok := l.conns[msg.ConnID]
	if !ok {
		return
	}
	if c.key == "" {
		l.sendTo(msg.ConnID, protocol.Error("Player not found or not registered."))
		return
	}
	if msg.Sender == "" || msg.Message == "" {
		l.sendTo(msg.ConnID, protocol.Error("Invalid chat format."))
		return
	}
	l.broadcast(protocol.ServerMessage{Type: protocol.MsgChat, Sender: msg.Sender, Message: msg.Message})
}

func (l *Lobby) handleUpdateLoadout(msg UpdateLoadout) {
	c, ok := l.conns[msg.ConnID]
	if !ok {
		return
	}
	p := (*Player)(nil)
	if c.key != "" {
		p = l.byKey[c.key]
	}
	if p == nil {
		l.sendTo(msg.ConnID, protocol.Error("Player not found or not registered."))
		return
	}

	updated := false
	if msg.Champion != "" {
		if l.catalog.HasChampion(msg.Champion) {
			p.Champion = msg.Champion
			updated = true
		} else {
			l.sendTo(msg.ConnID, protocol.Error(fmt.Sprintf("Invalid champion: %s", msg.Champion)))
		}
	}
	if msg.Spell != "" {
		if l.catalog.HasSpell(msg.Spell) {
			p.Spell = msg.Spell
			updated = true
		} else {
			l.sendTo(msg.ConnID, protocol.Error(fmt.Sprintf("Invalid spell: %s", msg.Spell)))
		}
	}

	if updated {
		l.log.Info("player loadout updated",
			zap.String("name", p.Name),
			zap.String("champion", p.Champion),
			zap.String("spell", p.Spell))
		l.broadcastPlayers()
	}
}

// handleReadyToggle is the websocket path of SetReady. Like chat and loadout
// updates, it requires the calling connection to be registered.
func (l *Lobby) handleReadyToggle(msg SetReady) {
	c, ok := l.conns[msg.ConnID]
	if !ok {
		return
	}
	if c.key == "" {
		l.sendTo(msg.ConnID, protocol.Error("Player not found or not registered."))
		return
	}
	if err := l.handleSetReady(msg.Name, msg.Ready); err != nil {
		l.sendTo(msg.ConnID, protocol.Error(err.Error()))
	}
}

func (l *Lobby) handleSetReady(name string, ready bool) error {
	if name == "" {
		return fmt.Errorf("%w: player name missing", ErrValidation)
	}
	p := l.findByName(name)
	if p == nil {
		return fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	p.Ready = ready
	l.log.Info("player ready state changed", zap.String("name", name), zap.Bool("ready", ready))
	l.broadcastPlayers()
	return nil
}

func (l *Lobby) handleSetTeam(name, team string) error {
	if name == "" {
		return fmt.Errorf("%w: player name missing", ErrValidation)
	}
	if !validTeam(team) {
		return fmt.Errorf("%w: unknown team %q", ErrValidation, team)
	}
	p := l.findByName(name)
	if p == nil {
		return fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	p.Team = team
	l.log.Info("player switched team", zap.String("name", name), zap.String("team", team))
	l.broadcastPlayers()
	return nil
}

func (l *Lobby) handleAuthenticate(password, playerName string) error {
	if password != l.adminPassword {
		return ErrForbidden
	}
	if p := l.findByName(playerName); p != nil {
		p.Admin = true
		l.broadcastPlayers()
	}
	l.log.Info("admin authenticated", zap.String("name", playerName))
	l.broadcast(protocol.ServerMessage{Type: protocol.MsgAdminAuthenticated, PlayerName: playerName})
	return nil
}

func (l *Lobby) findByName(name string) *Player {
	for _, p := range l.players {
		if p.Name == name {
			return p
		}
	}
	return nil
}
