package lobby

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eti-lan/game-lobby/internal/catalog"
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/launcher"
	"github.com/eti-lan/game-lobby/internal/protocol"
)

const recvTimeout = 500 * time.Millisecond

type fakeLauncher struct {
	err      error
	launches chan launcher.GameInfo
}

func newFakeLauncher() *fakeLauncher {
	return &fakeLauncher{launches: make(chan launcher.GameInfo, 4)}
}

func (f *fakeLauncher) Launch(info launcher.GameInfo) error {
	if f.err != nil {
		return f.err
	}
	select {
	case f.launches <- info:
	default:
	}
	return nil
}

type memStore struct {
	err   error
	saved chan config.GameSettings
}

func newMemStore() *memStore {
	return &memStore{saved: make(chan config.GameSettings, 4)}
}

func (s *memStore) Load() (config.GameSettings, error) { return config.DefaultSettings(), nil }

func (s *memStore) Save(gs config.GameSettings) error {
	if s.err != nil {
		return s.err
	}
	select {
	case s.saved <- gs:
	default:
	}
	return nil
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]catalog.Champion{{Name: "Ahri"}, {Name: "Garen"}},
		[]string{"SummonerFlash", "SummonerHeal"},
		[]catalog.Map{{ID: 1, Name: "Summoner's Rift"}, {ID: 12, Name: "Howling Abyss"}},
	)
}

type fixture struct {
	lb     *Lobby
	launch *fakeLauncher
	store  *memStore
}

func newTestLobby(t *testing.T, mod func(*Deps)) *fixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	fl := newFakeLauncher()
	store := newMemStore()
	d := Deps{
		Catalog:           testCatalog(),
		Store:             store,
		Launcher:          fl,
		Settings:          config.DefaultSettings(),
		AdminPassword:     "hunter2",
		HeartbeatInterval: time.Hour,
		ResetDelay:        time.Hour,
		GameServerPath:    "gameserver/League of Legends.exe",
		GameServerPort:    5119,
		Runes: launcher.RunesConfig{
			Runes:   map[string]int{"1": 5245},
			Talents: map[string]int{"4111": 1},
		},
	}
	if mod != nil {
		mod(&d)
	}
	return &fixture{lb: New(ctx, d), launch: fl, store: store}
}

type client struct {
	id  string
	out chan Outbound
}

// attach wires a fake connection into the lobby and drains the welcome
// message.
func attach(t *testing.T, lb *Lobby, id string) *client {
	t.Helper()
	c := &client{id: id, out: make(chan Outbound, 32)}
	lb.Inbox() <- Attach{ConnID: id, Outbox: c.out}
	msg := recvType(t, c, protocol.MsgSystem)
	require.Equal(t, "Welcome to the lobby!", msg.Message)
	return c
}

func register(t *testing.T, lb *Lobby, c *client, name, key string) {
	t.Helper()
	lb.Inbox() <- Register{ConnID: c.id, Name: name, IdentityKey: key}
	msg := recvType(t, c, protocol.MsgSystem)
	require.Equal(t, "Registration successful.", msg.Message)
}

// recvType receives messages until one of the wanted type arrives, skipping
// probes and unrelated broadcasts; fails the test on timeout or close.
func recvType(t *testing.T, c *client, typ string) protocol.ServerMessage {
	t.Helper()
	deadline := time.After(recvTimeout)
	for {
		select {
		case ob, ok := <-c.out:
			if !ok {
				t.Fatalf("outbox closed while waiting for %q", typ)
			}
			if ob.Kind != OutboundMessage || ob.Msg.Type != typ {
				continue
			}
			return ob.Msg
		case <-deadline:
			t.Fatalf("timed out waiting for %q", typ)
		}
	}
}

func recvNoType(t *testing.T, c *client, typ string, within time.Duration) {
	t.Helper()
	deadline := time.After(within)
	for {
		select {
		case ob, ok := <-c.out:
			if !ok {
				return
			}
			if ob.Kind == OutboundMessage && ob.Msg.Type == typ {
				t.Fatalf("expected no %q message, got %+v", typ, ob.Msg)
			}
		case <-deadline:
			return
		}
	}
}

func expectClosed(t *testing.T, c *client) {
	t.Helper()
	deadline := time.After(recvTimeout)
	for {
		select {
		case _, ok := <-c.out:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected outbox to be closed")
		}
	}
}

func getView(t *testing.T, lb *Lobby) View {
	t.Helper()
	reply := make(chan View, 1)
	lb.Inbox() <- GetState{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-time.After(recvTimeout):
		t.Fatalf("timed out waiting for view")
		return View{}
	}
}

func setTeam(t *testing.T, lb *Lobby, name, team string) {
	t.Helper()
	reply := make(chan Result, 1)
	lb.Inbox() <- SetTeam{Name: name, Team: team, Reply: reply}
	require.NoError(t, (<-reply).Err)
}

func setReady(t *testing.T, lb *Lobby, name string, ready bool) {
	t.Helper()
	reply := make(chan Result, 1)
	lb.Inbox() <- SetReady{Name: name, Ready: ready, Reply: reply}
	require.NoError(t, (<-reply).Err)
}

func requestLaunch(t *testing.T, lb *Lobby, password string) error {
	t.Helper()
	reply := make(chan Result, 1)
	lb.Inbox() <- RequestLaunch{Password: password, Reply: reply}
	select {
	case res := <-reply:
		return res.Err
	case <-time.After(recvTimeout):
		t.Fatalf("timed out waiting for launch reply")
		return nil
	}
}

func TestRegisterCreatesPlayerWithDefaults(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")

	snap := recvType(t, c, protocol.MsgPlayerUpdate)
	require.Len(t, snap.Players, 1)
	p := snap.Players[0]
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, "Unknown", p.Champion)
	require.Equal(t, "SummonerFlash", p.Spell)
	require.Equal(t, TeamUnassigned, p.Team)
	require.Equal(t, "UNRANKED", p.Rank)
	require.False(t, p.Ready)
}

func TestRegisterSameKeyRebindsAndClosesOldConn(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	setReady(t, f.lb, "Alice", true)

	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Alice", "key-alice")

	expectClosed(t, c1)

	v := getView(t, f.lb)
	require.Len(t, v.Players, 1)
	require.Equal(t, 1, v.NumConns)
	// Reconnecting resets readiness.
	require.False(t, v.Players[0].Ready)
}

func TestRegisterRejectsMissingKeyOrName(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")

	f.lb.Inbox() <- Register{ConnID: "c1", Name: "Alice", IdentityKey: "  "}
	msg := recvType(t, c, protocol.MsgError)
	require.Contains(t, msg.Message, "identity key")

	f.lb.Inbox() <- Register{ConnID: "c1", Name: "", IdentityKey: "key-alice"}
	msg = recvType(t, c, protocol.MsgError)
	require.Contains(t, msg.Message, "player name")

	require.Empty(t, getView(t, f.lb).Players)
}

func TestUnregisteredConnectionIsRejected(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")

	f.lb.Inbox() <- Chat{ConnID: "c1", Sender: "ghost", Message: "hi"}
	msg := recvType(t, c, protocol.MsgError)
	require.Equal(t, "Player not found or not registered.", msg.Message)

	f.lb.Inbox() <- UpdateLoadout{ConnID: "c1", Champion: "Ahri"}
	msg = recvType(t, c, protocol.MsgError)
	require.Equal(t, "Player not found or not registered.", msg.Message)
}

func TestUnregisteredReadyToggleMutatesNobody(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")

	c2 := attach(t, f.lb, "c2")
	f.lb.Inbox() <- SetReady{ConnID: "c2", Name: "Alice", Ready: true}
	msg := recvType(t, c2, protocol.MsgError)
	require.Equal(t, "Player not found or not registered.", msg.Message)

	v := getView(t, f.lb)
	require.False(t, v.Players[0].Ready)
}

func TestChatIsBroadcastToAllConnections(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Bob", "key-bob")

	f.lb.Inbox() <- Chat{ConnID: "c1", Sender: "Alice", Message: "glhf"}

	for _, c := range []*client{c1, c2} {
		msg := recvType(t, c, protocol.MsgChat)
		require.Equal(t, "Alice", msg.Sender)
		require.Equal(t, "glhf", msg.Message)
	}
}

func TestUpdateLoadoutValidatesAgainstCatalog(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")

	f.lb.Inbox() <- UpdateLoadout{ConnID: "c1", Champion: "NotAChampion"}
	msg := recvType(t, c, protocol.MsgError)
	require.Contains(t, msg.Message, "Invalid champion")

	// The prior value is retained on rejection.
	v := getView(t, f.lb)
	require.Equal(t, "Unknown", v.Players[0].Champion)

	// A valid champion together with an invalid spell applies the valid
	// field and rejects the other.
	f.lb.Inbox() <- UpdateLoadout{ConnID: "c1", Champion: "Ahri", Spell: "SummonerTeleport"}
	msg = recvType(t, c, protocol.MsgError)
	require.Contains(t, msg.Message, "Invalid spell")

	snap := recvType(t, c, protocol.MsgPlayerUpdate)
	require.Equal(t, "Ahri", snap.Players[0].Champion)
	require.Equal(t, "SummonerFlash", snap.Players[0].Spell)
}

func TestSetTeamAndReadyUnknownPlayer(t *testing.T) {
	f := newTestLobby(t, nil)

	reply := make(chan Result, 1)
	f.lb.Inbox() <- SetTeam{Name: "Nobody", Team: TeamBlue, Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrNotFound)

	f.lb.Inbox() <- SetReady{Name: "Nobody", Ready: true, Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrNotFound)
}

func TestSetTeamRejectsUnknownTeam(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")

	reply := make(chan Result, 1)
	f.lb.Inbox() <- SetTeam{Name: "Alice", Team: "Green", Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrValidation)
}

func TestLeaveTeamClearsAssignment(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")
	setTeam(t, f.lb, "Alice", TeamRed)

	reply := make(chan Result, 1)
	f.lb.Inbox() <- LeaveTeam{Name: "Alice", Reply: reply}
	res := <-reply
	require.NoError(t, res.Err)
	require.Equal(t, TeamUnassigned, res.Players[0].Team)
}

func TestLaunchWrongPasswordMutatesNothing(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")
	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)

	require.ErrorIs(t, requestLaunch(t, f.lb, "wrong"), ErrForbidden)

	v := getView(t, f.lb)
	require.False(t, v.SessionActive)
	require.Nil(t, v.Session)
	recvNoType(t, c, protocol.MsgGameLaunch, 100*time.Millisecond)
	recvNoType(t, c, protocol.MsgAssignIDs, 50*time.Millisecond)
}

func TestLaunchRequiresRosteredPlayersReady(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Bob", "key-bob")

	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)
	setTeam(t, f.lb, "Bob", TeamBlue)
	// Bob never readies.

	require.ErrorIs(t, requestLaunch(t, f.lb, "hunter2"), ErrNotAllReady)
	require.False(t, getView(t, f.lb).SessionActive)
}

func TestUnassignedPlayersIgnoredForReadyCheck(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Carol", "key-carol")

	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)
	// Carol stays unassigned and not ready.

	require.NoError(t, requestLaunch(t, f.lb, "hunter2"))
}

func TestLaunchAssignsEphemeralIDsInSnapshotOrder(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Bob", "key-bob")
	c3 := attach(t, f.lb, "c3")
	register(t, f.lb, c3, "Carol", "key-carol")

	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)
	setTeam(t, f.lb, "Bob", TeamBlue)
	setReady(t, f.lb, "Bob", true)

	require.NoError(t, requestLaunch(t, f.lb, "hunter2"))

	// Every connection receives the pair, the unrostered Carol included.
	for _, c := range []*client{c1, c2, c3} {
		launch := recvType(t, c, protocol.MsgGameLaunch)
		require.NotNil(t, launch.GameConfig)
		require.Equal(t, "gameserver/League of Legends.exe", launch.GameConfig.GameServer)
		require.Equal(t, 5119, launch.GameConfig.GamePort)
		require.Len(t, launch.GameConfig.GameConfig.Players, 2)

		assign := recvType(t, c, protocol.MsgAssignIDs)
		require.Equal(t, map[string]int{"key-alice": 1, "key-bob": 2}, assign.AssignedIDs)
		_, carolHasID := assign.AssignedIDs["key-carol"]
		require.False(t, carolHasID)
	}

	// The descriptor handed to the launcher carries the same roster order.
	select {
	case info := <-f.launch.launches:
		require.Equal(t, "key-alice", info.Players[0].IdentityKey)
		require.Equal(t, 1, info.Players[0].PlayerID)
		require.Equal(t, "key-bob", info.Players[1].IdentityKey)
		require.Equal(t, 2, info.Players[1].PlayerID)
		// Every entry carries the static runes/talents block.
		for _, p := range info.Players {
			require.Equal(t, map[string]int{"1": 5245}, p.Runes)
			require.Equal(t, map[string]int{"4111": 1}, p.Talents)
		}
	case <-time.After(recvTimeout):
		t.Fatalf("launcher never received the descriptor")
	}

	v := getView(t, f.lb)
	require.True(t, v.SessionActive)
	require.NotNil(t, v.Session)
	require.Equal(t, map[string]int{"key-alice": 1, "key-bob": 2}, v.Session.AssignedIDs)
}

func TestLaunchPersistenceFailureAborts(t *testing.T) {
	f := newTestLobby(t, nil)
	f.launch.err = errors.New("disk full")

	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")
	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)

	require.ErrorIs(t, requestLaunch(t, f.lb, "hunter2"), ErrPersistence)

	v := getView(t, f.lb)
	require.False(t, v.SessionActive)
	require.Nil(t, v.Session)
	recvNoType(t, c, protocol.MsgGameLaunch, 100*time.Millisecond)
	recvNoType(t, c, protocol.MsgAssignIDs, 50*time.Millisecond)
}

func TestLaunchRefusedWhileSessionActive(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")
	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)

	require.NoError(t, requestLaunch(t, f.lb, "hunter2"))
	require.ErrorIs(t, requestLaunch(t, f.lb, "hunter2"), ErrSessionActive)
}

func TestLobbyResetsAfterDelay(t *testing.T) {
	f := newTestLobby(t, func(d *Deps) {
		d.ResetDelay = 50 * time.Millisecond
	})
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")
	setTeam(t, f.lb, "Alice", TeamRed)
	setReady(t, f.lb, "Alice", true)

	require.NoError(t, requestLaunch(t, f.lb, "hunter2"))
	recvType(t, c, protocol.MsgAssignIDs)

	deadline := time.After(2 * time.Second)
	for {
		var snap protocol.ServerMessage
		select {
		case ob, ok := <-c.out:
			if !ok {
				t.Fatalf("outbox closed before reset broadcast")
			}
			if ob.Kind != OutboundMessage || ob.Msg.Type != protocol.MsgPlayerUpdate {
				continue
			}
			snap = ob.Msg
		case <-deadline:
			t.Fatalf("timed out waiting for reset broadcast")
		}
		if snap.Players[0].Team == TeamUnassigned && !snap.Players[0].Ready {
			break
		}
	}

	v := getView(t, f.lb)
	require.False(t, v.SessionActive)
	require.Nil(t, v.Session)
}

func TestDisconnectedPlayerDisappearsFromSnapshots(t *testing.T) {
	f := newTestLobby(t, nil)
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")
	c2 := attach(t, f.lb, "c2")
	register(t, f.lb, c2, "Bob", "key-bob")

	f.lb.Inbox() <- Disconnect{ConnID: "c1"}

	deadline := time.After(recvTimeout)
	for {
		var snap protocol.ServerMessage
		select {
		case ob := <-c2.out:
			if ob.Kind != OutboundMessage || ob.Msg.Type != protocol.MsgPlayerUpdate {
				continue
			}
			snap = ob.Msg
		case <-deadline:
			t.Fatalf("timed out waiting for post-disconnect snapshot")
		}
		if len(snap.Players) == 1 {
			require.Equal(t, "Bob", snap.Players[0].Name)
			break
		}
	}
}

func TestHeartbeatDropsSilentConnections(t *testing.T) {
	f := newTestLobby(t, func(d *Deps) {
		d.HeartbeatInterval = 30 * time.Millisecond
	})
	c1 := attach(t, f.lb, "c1")
	register(t, f.lb, c1, "Alice", "key-alice")

	// c2 acknowledges every probe; c1 never does. The responder starts
	// before registration so no probe is ever missed.
	c2out := make(chan Outbound, 32)
	f.lb.Inbox() <- Attach{ConnID: "c2", Outbox: c2out}
	go func() {
		for ob := range c2out {
			if ob.Kind == OutboundProbe {
				f.lb.Inbox() <- MarkAlive{ConnID: "c2"}
			}
		}
	}()
	f.lb.Inbox() <- Register{ConnID: "c2", Name: "Bob", IdentityKey: "key-bob"}

	require.Eventually(t, func() bool {
		v := getView(t, f.lb)
		return v.NumConns == 1 && len(v.Players) == 1 && v.Players[0].Name == "Bob"
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSlowClientIsDropped(t *testing.T) {
	f := newTestLobby(t, nil)
	c := &client{id: "c1", out: make(chan Outbound, 1)}
	f.lb.Inbox() <- Attach{ConnID: "c1", Outbox: c.out}
	f.lb.Inbox() <- Register{ConnID: "c1", Name: "Alice", IdentityKey: "key-alice"}

	// The tiny outbox fills immediately; the next send drops the client.
	f.lb.Inbox() <- Chat{ConnID: "c1", Sender: "Alice", Message: "one"}
	f.lb.Inbox() <- Chat{ConnID: "c1", Sender: "Alice", Message: "two"}

	require.Eventually(t, func() bool {
		return getView(t, f.lb).NumConns == 0
	}, time.Second, 10*time.Millisecond)
}

func TestAdminAuthentication(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")

	reply := make(chan Result, 1)
	f.lb.Inbox() <- Authenticate{Password: "wrong", PlayerName: "Alice", Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrForbidden)

	f.lb.Inbox() <- Authenticate{Password: "hunter2", PlayerName: "Alice", Reply: reply}
	require.NoError(t, (<-reply).Err)

	msg := recvType(t, c, protocol.MsgAdminAuthenticated)
	require.Equal(t, "Alice", msg.PlayerName)

	v := getView(t, f.lb)
	require.True(t, v.Players[0].Admin)
}

func TestUpdateSettingsValidatesAndPersists(t *testing.T) {
	f := newTestLobby(t, nil)
	c := attach(t, f.lb, "c1")
	register(t, f.lb, c, "Alice", "key-alice")

	reply := make(chan SettingsResult, 1)

	f.lb.Inbox() <- UpdateSettings{Password: "wrong", Settings: config.DefaultSettings(), Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrForbidden)

	bad := config.DefaultSettings()
	bad.Map = 99
	f.lb.Inbox() <- UpdateSettings{Password: "hunter2", Settings: bad, Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrValidation)

	want := config.GameSettings{
		ManacostsEnabled:    false,
		CooldownsEnabled:    true,
		MinionSpawnsEnabled: true,
		TickRate:            30,
		Map:                 12,
	}
	f.lb.Inbox() <- UpdateSettings{Password: "hunter2", Settings: want, Reply: reply}
	res := <-reply
	require.NoError(t, res.Err)
	require.Equal(t, want, res.Settings)

	select {
	case saved := <-f.store.saved:
		require.Equal(t, want, saved)
	case <-time.After(recvTimeout):
		t.Fatalf("settings were never persisted")
	}

	msg := recvType(t, c, protocol.MsgGameSettingsUpdate)
	require.NotNil(t, msg.Settings)
	require.Equal(t, want, *msg.Settings)

	sreply := make(chan SettingsResult, 1)
	f.lb.Inbox() <- GetSettings{Reply: sreply}
	require.Equal(t, want, (<-sreply).Settings)
}

func TestUpdateSettingsPersistenceFailure(t *testing.T) {
	f := newTestLobby(t, nil)
	f.store.err = errors.New("disk full")

	reply := make(chan SettingsResult, 1)
	f.lb.Inbox() <- UpdateSettings{Password: "hunter2", Settings: config.DefaultSettings(), Reply: reply}
	require.ErrorIs(t, (<-reply).Err, ErrPersistence)

	// The in-memory settings are untouched on failure.
	sreply := make(chan SettingsResult, 1)
	f.lb.Inbox() <- GetSettings{Reply: sreply}
	require.Equal(t, config.DefaultSettings(), (<-sreply).Settings)
}
