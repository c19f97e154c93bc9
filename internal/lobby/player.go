package lobby

import (
	"time"

	"github.com/eti-lan/game-lobby/internal/protocol"
)

const TeamUnassigned = "-"

const (
	TeamBlue = "Blue"
	TeamRed  = "Red"
)

func validTeam(team string) bool {
	switch team {
	case TeamBlue, TeamRed, TeamUnassigned:
		return true
	default:
		return false
	}
}

// Player is a registry entry. The identity key is the sole deduplication
// key; connID points at the live connection currently bound to it.
type Player struct {
	IdentityKey string
	Name        string
	Champion    string
	Spell       string
	Team        string
	Ready       bool
	Summoner1   string
	Summoner2   string
	Rank        string
	Admin       bool
	LastSeen    time.Time

	connID string
}

func newPlayer(name, identityKey string, now time.Time) *Player {
	return &Player{
		IdentityKey: identityKey,
		Name:        name,
		Champion:    "Unknown",
		Spell:       "SummonerFlash",
		Team:        TeamUnassigned,
		Summoner1:   "SummonerFlash",
		Summoner2:   "SummonerHeal",
		Rank:        "UNRANKED",
		LastSeen:    now,
	}
}

func (p *Player) state() protocol.PlayerState {
	return protocol.PlayerState{
		Name:      p.Name,
		Champion:  p.Champion,
		Spell:     p.Spell,
		Team:      p.Team,
		Ready:     p.Ready,
		Summoner1: p.Summoner1,
		Summoner2: p.Summoner2,
		Rank:      p.Rank,
		Admin:     p.Admin,
	}
}

// GameSession owns the ephemeral ID allocation for one launched game.
// It exists from launch until the lobby reset destroys it; IDs are never
// reused across sessions.
type GameSession struct {
	ID          string
	GameID      int64
	AssignedIDs map[string]int
}
