package protocol

import (
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/launcher"
)

// Client -> server message kinds.
const (
	MsgRegister     = "register"
	MsgChat         = "chat"
	MsgUpdatePlayer = "updatePlayer"
	MsgReadyToggle  = "readyToggle"
)

// Server -> client message kinds.
const (
	MsgSystem             = "system"
	MsgError              = "error"
	MsgPlayerUpdate       = "playerUpdate"
	MsgGameLaunch         = "gameLaunch"
	MsgAssignIDs          = "assignIDs"
	MsgAdminAuthenticated = "adminAuthenticated"
	MsgGameSettingsUpdate = "gameSettingsUpdate"
)

// ClientMessage is the closed union of messages a client may send over the
// websocket. Unknown types are rejected explicitly, never dispatched.
type ClientMessage struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	IdentityKey string `json:"identityKey,omitempty"`
	Sender      string `json:"sender,omitempty"`
	Message     string `json:"message,omitempty"`
	Champion    string `json:"champion,omitempty"`
	Spell       string `json:"spell,omitempty"`
	// Pointer so a missing field is distinguishable from false.
	Ready *bool `json:"ready,omitempty"`
}

// ServerMessage is the closed union of messages the server broadcasts or
// replies with over the websocket.
type ServerMessage struct {
	Type        string               `json:"type"`
	Message     string               `json:"message,omitempty"`
	Sender      string               `json:"sender,omitempty"`
	Players     []PlayerState        `json:"players,omitempty"`
	GameConfig  *GameLaunchConfig    `json:"gameConfig,omitempty"`
	AssignedIDs map[string]int       `json:"assignedIDs,omitempty"`
	PlayerName  string               `json:"playerName,omitempty"`
	Settings    *config.GameSettings `json:"settings,omitempty"`
}

// PlayerState is the per-player slice of a lobby snapshot. The identity key
// is deliberately absent: it is a secret and only ever appears in assignIDs.
type PlayerState struct {
	Name      string `json:"name"`
	Champion  string `json:"champion"`
	Spell     string `json:"spell"`
	Team      string `json:"team"`
	Ready     bool   `json:"ready"`
	Summoner1 string `json:"summoner1"`
	Summoner2 string `json:"summoner2"`
	Rank      string `json:"rank"`
	Admin     bool   `json:"admin"`
}

type GameLaunchConfig struct {
	GameServer string             `json:"gameServer"`
	GamePort   int                `json:"gamePort"`
	GameConfig *launcher.GameInfo `json:"gameConfig"`
}

func System(message string) ServerMessage {
	return ServerMessage{Type: MsgSystem, Message: message}
}

func Error(message string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: message}
}
