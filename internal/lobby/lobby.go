package lobby

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eti-lan/game-lobby/internal/catalog"
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/launcher"
	"github.com/eti-lan/game-lobby/internal/protocol"
)

type conn struct {
	id     string
	outbox chan Outbound
	alive  bool
	key    string // identity key of the bound player, "" until registered
}

type Deps struct {
	Catalog  *catalog.Catalog
	Store    config.SettingsStore
	Launcher launcher.Launcher
	Settings config.GameSettings
	Runes    launcher.RunesConfig

	AdminPassword     string
	HeartbeatInterval time.Duration
	ResetDelay        time.Duration
	GameServerPath    string
	GameServerPort    int

	Logger *zap.Logger
}

// Lobby is a single actor goroutine owning all lobby state. Every mutation,
// the heartbeat tick and the post-launch reset timer arrive as messages on
// one inbox, so no operation can observe a half-applied change.
type Lobby struct {
	inbox chan Msg

	players []*Player
	byKey   map[string]*Player
	conns   map[string]*conn

	sessionActive bool
	session       *GameSession
	settings      config.GameSettings

	catalog        *catalog.Catalog
	store          config.SettingsStore
	launcher       launcher.Launcher
	runes          launcher.RunesConfig
	adminPassword  string
	heartbeat      time.Duration
	resetDelay     time.Duration
	gameServerPath string
	gameServerPort int

	log    *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, d Deps) *Lobby {
	ctx, cancel := context.WithCancel(parent)

	if d.HeartbeatInterval <= 0 {
		d.HeartbeatInterval = 15 * time.Second
	}
	if d.ResetDelay <= 0 {
		d.ResetDelay = 20 * time.Second
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	l := &Lobby{
		inbox:          make(chan Msg, 64),
		byKey:          make(map[string]*Player),
		conns:          make(map[string]*conn),
		settings:       d.Settings,
		catalog:        d.Catalog,
		store:          d.Store,
		launcher:       d.Launcher,
		runes:          d.Runes,
		adminPassword:  d.AdminPassword,
		heartbeat:      d.HeartbeatInterval,
		resetDelay:     d.ResetDelay,
		gameServerPath: d.GameServerPath,
		gameServerPort: d.GameServerPort,
		log:            d.Logger,
		ctx:            ctx,
		cancel:         cancel,
	}

	go l.loop()
	return l
}

// Inbox exposes the actor's message channel to the transport layers.
func (l *Lobby) Inbox() chan<- Msg { return l.inbox }

func (l *Lobby) loop() {
	ticker := time.NewTicker(l.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			l.shutdown()
			return

		case <-ticker.C:
			l.handleHeartbeatTick()

		case m := <-l.inbox:
			switch msg := m.(type) {
			case Attach:
				l.handleAttach(msg)

			case Disconnect:
				l.handleDisconnect(msg.ConnID)

			case MarkAlive:
				l.handleMarkAlive(msg.ConnID)

			case Register:
				l.handleRegister(msg)

			case Chat:
				l.handleChat(msg)

			case UpdateLoadout:
				l.handleUpdateLoadout(msg)

			case SetReady:
				if msg.Reply == nil {
					l.handleReadyToggle(msg)
				} else {
					err := l.handleSetReady(msg.Name, msg.Ready)
					l.respond(msg.Reply, err)
				}

			case SetTeam:
				err := l.handleSetTeam(msg.Name, msg.Team)
				l.respond(msg.Reply, err)

			case LeaveTeam:
				err := l.handleSetTeam(msg.Name, TeamUnassigned)
				l.respond(msg.Reply, err)

			case Authenticate:
				err := l.handleAuthenticate(msg.Password, msg.PlayerName)
				l.respond(msg.Reply, err)

			case RequestLaunch:
				err := l.handleRequestLaunch(msg.Password)
				l.respond(msg.Reply, err)

			case GetSettings:
				msg.Reply <- SettingsResult{Settings: l.settings}

			case UpdateSettings:
				err := l.handleUpdateSettings(msg.Password, msg.Settings)
				msg.Reply <- SettingsResult{Err: err, Settings: l.settings}

			case resetFired:
				l.handleReset()

			case GetState:
				msg.Reply <- l.view()

			case Shutdown:
				l.shutdown()
				return
			}
		}
	}
}

func (l *Lobby) respond(reply chan Result, err error) {
	if reply != nil {
		reply <- Result{Err: err, Players: l.snapshot()}
	}
}

func (l *Lobby) view() View {
	v := View{
		Players:       l.snapshot(),
		SessionActive: l.sessionActive,
		NumConns:      len(l.conns),
		Settings:      l.settings,
	}
	if l.session != nil {
		assigned := make(map[string]int, len(l.session.AssignedIDs))
		for k, id := range l.session.AssignedIDs {
			assigned[k] = id
		}
		v.Session = &GameSession{ID: l.session.ID, GameID: l.session.GameID, AssignedIDs: assigned}
	}
	return v
}

func (l *Lobby) snapshot() []protocol.PlayerState {
	players := make([]protocol.PlayerState, 0, len(l.players))
	for _, p := range l.players {
		players = append(players, p.state())
	}
	return players
}

func (l *Lobby) sendTo(connID string, msg protocol.ServerMessage) {
	c, ok := l.conns[connID]
	if !ok {
		return
	}
	select {
	case c.outbox <- Outbound{Msg: msg}:
	default:
		l.dropConns([]string{connID})
	}
}

func (l *Lobby) broadcast(msg protocol.ServerMessage) {
	var dropped []string
	for id, c := range l.conns {
		select {
		case c.outbox <- Outbound{Msg: msg}:
		default:
			// Slow or stuck client: treat like a disconnect.
			dropped = append(dropped, id)
		}
	}
	l.dropConns(dropped)
}

func (l *Lobby) broadcastPlayers() {
	l.broadcast(protocol.ServerMessage{Type: protocol.MsgPlayerUpdate, Players: l.snapshot()})
}

func (l *Lobby) dropConns(ids []string) {
	if len(ids) == 0 {
		return
	}
	removed := false
	for _, id := range ids {
		if l.removeConn(id) {
			removed = true
		}
	}
	if removed {
		l.broadcastPlayers()
	}
}

// removeConn closes the connection's outbox and, when a player is bound to
// it, purges that player from the registry. Returns whether a player was
// removed. Registry removal and index removal happen together, never apart.
func (l *Lobby) removeConn(id string) bool {
	c, ok := l.conns[id]
	if !ok {
		return false
	}
	close(c.outbox)
	delete(l.conns, id)
	if c.key == "" {
		return false
	}
	p := l.byKey[c.key]
	if p == nil || p.connID != id {
		// The player was rebound to a newer connection.
		return false
	}
	l.removePlayer(p)
	l.log.Info("player removed", zap.String("name", p.Name))
	return true
}

// terminateConn force-closes a connection without touching the registry;
// used when a reconnect supersedes the old connection.
func (l *Lobby) terminateConn(id string) {
	c, ok := l.conns[id]
	if !ok {
		return
	}
	close(c.outbox)
	delete(l.conns, id)
}

func (l *Lobby) removePlayer(p *Player) {
	delete(l.byKey, p.IdentityKey)
	for i, other := range l.players {
		if other == p {
			l.players = append(l.players[:i], l.players[i+1:]...)
			return
		}
	}
}

func (l *Lobby) shutdown() {
	for id, c := range l.conns {
		close(c.outbox)
		delete(l.conns, id)
	}
	l.players = nil
	clear(l.byKey)
	l.cancel()
}
