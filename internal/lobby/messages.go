package lobby

import (
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/protocol"
)

type Msg interface{ isLobbyMsg() }

// OutboundKind distinguishes regular payloads from liveness probe requests
// on a connection's outbox.
type OutboundKind int

const (
	OutboundMessage OutboundKind = iota
	OutboundProbe
)

type Outbound struct {
	Kind OutboundKind
	Msg  protocol.ServerMessage
}

// Attach registers a live connection before any player is bound to it.
type Attach struct {
	ConnID string
	Outbox chan Outbound
}

// Disconnect runs the close path for a connection: its bound player, if any,
// is removed from the registry.
type Disconnect struct{ ConnID string }

// MarkAlive is the transport's liveness acknowledgment for a probe.
type MarkAlive struct{ ConnID string }

// Register binds an identity key to the connection, creating the player or
// rebinding an existing one.
type Register struct {
	ConnID      string
	Name        string
	IdentityKey string
}

type Chat struct {
	ConnID  string
	Sender  string
	Message string
}

// UpdateLoadout acts on the calling connection's bound player. Empty fields
// are left untouched; invalid values are rejected per field.
type UpdateLoadout struct {
	ConnID   string
	Champion string
	Spell    string
}

// Result answers the request/response operations with the error, if any,
// and the post-operation snapshot.
type Result struct {
	Err     error
	Players []protocol.PlayerState
}

type SettingsResult struct {
	Err      error
	Settings config.GameSettings
}

// SetReady arrives either over the websocket (ConnID set, Reply nil; errors
// go back over the connection) or over HTTP (Reply set).
type SetReady struct {
	ConnID string
	Name   string
	Ready  bool
	Reply  chan Result
}

type SetTeam struct {
	Name  string
	Team  string
	Reply chan Result
}

type LeaveTeam struct {
	Name  string
	Reply chan Result
}

type Authenticate struct {
	Password   string
	PlayerName string
	Reply      chan Result
}

type RequestLaunch struct {
	Password string
	Reply    chan Result
}

type GetSettings struct{ Reply chan SettingsResult }

type UpdateSettings struct {
	Password string
	Settings config.GameSettings
	Reply    chan SettingsResult
}

// View reflects internal state without data races; test and introspection
// use only.
type View struct {
	Players       []protocol.PlayerState
	SessionActive bool
	NumConns      int
	Settings      config.GameSettings
	Session       *GameSession
}

type GetState struct{ Reply chan View }

type Shutdown struct{}

// resetFired is posted by the launch reset timer.
type resetFired struct{}

func (Attach) isLobbyMsg()         {}
func (Disconnect) isLobbyMsg()     {}
func (MarkAlive) isLobbyMsg()      {}
func (Register) isLobbyMsg()       {}
func (Chat) isLobbyMsg()           {}
func (UpdateLoadout) isLobbyMsg()  {}
func (SetReady) isLobbyMsg()       {}
func (SetTeam) isLobbyMsg()        {}
func (LeaveTeam) isLobbyMsg()      {}
func (Authenticate) isLobbyMsg()   {}
func (RequestLaunch) isLobbyMsg()  {}
func (GetSettings) isLobbyMsg()    {}
func (UpdateSettings) isLobbyMsg() {}
func (GetState) isLobbyMsg()       {}
func (Shutdown) isLobbyMsg()       {}
func (resetFired) isLobbyMsg()     {}
