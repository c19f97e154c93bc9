package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// GameInfo is the session descriptor handed to the external game server.
// The field names follow the GameInfo.json format the server consumes.
type GameInfo struct {
	GameID   int64        `json:"gameId"`
	Game     Game         `json:"game"`
	Settings InfoSettings `json:"gameInfo"`
	Players  []Player     `json:"players"`
}

type Game struct {
	Map      int       `json:"map"`
	GameMode string    `json:"gameMode"`
	Mutators [8]string `json:"mutators"`
}

type InfoSettings struct {
	TickRate                   int      `json:"TICK_RATE"`
	ForceStartTimer            int      `json:"FORCE_START_TIMER"`
	UseCache                   bool     `json:"USE_CACHE"`
	IsDamageTextGlobal         bool     `json:"IS_DAMAGE_TEXT_GLOBAL"`
	EnableContentLoadingLogs   bool     `json:"ENABLE_CONTENT_LOADING_LOGS"`
	SuppressScriptNotFoundLogs bool     `json:"SUPRESS_SCRIPT_NOT_FOUND_LOGS"`
	CheatsEnabled              bool     `json:"CHEATS_ENABLED"`
	ManacostsEnabled           bool     `json:"MANACOSTS_ENABLED"`
	CooldownsEnabled           bool     `json:"COOLDOWNS_ENABLED"`
	MinionSpawnsEnabled        bool     `json:"MINION_SPAWNS_ENABLED"`
	LogInPackets               bool     `json:"LOG_IN_PACKETS"`
	LogOutPackets              bool     `json:"LOG_OUT_PACKETS"`
	ContentPath                string   `json:"CONTENT_PATH"`
	EndgameHTTPPostAddress     string   `json:"ENDGAME_HTTP_POST_ADDRESS"`
	ScriptAssemblies           []string `json:"scriptAssemblies"`
}

type Player struct {
	PlayerID    int            `json:"playerId"`
	IdentityKey string         `json:"identityKey"`
	Rank        string         `json:"rank"`
	Name        string         `json:"name"`
	Champion    string         `json:"champion"`
	Team        string         `json:"team"`
	Skin        int            `json:"skin"`
	Summoner1   string         `json:"summoner1"`
	Summoner2   string         `json:"summoner2"`
	Ribbon      int            `json:"ribbon"`
	Icon        int            `json:"icon"`
	Runes       map[string]int `json:"runes"`
	Talents     map[string]int `json:"talents"`
}

// RunesConfig is the static runes/talents block copied onto every player
// entry of the descriptor. Loaded once at startup; never mutated.
type RunesConfig struct {
	Runes   map[string]int `json:"runes"`
	Talents map[string]int `json:"talents"`
}

func LoadRunes(path string) (RunesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunesConfig{}, fmt.Errorf("read runes: %w", err)
	}
	var rc RunesConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return RunesConfig{}, fmt.Errorf("parse runes: %w", err)
	}
	return rc, nil
}

// Launcher is the external hand-off collaborator consumed by the lobby.
type Launcher interface {
	// Launch durably persists the descriptor and starts the game server.
	// An error means the descriptor could not be persisted; process start
	// failures are logged only, never surfaced.
	Launch(info GameInfo) error
}

type Options struct {
	GameInfoPath string
	Command      string
	Dir          string
	Logger       *zap.Logger
}

// Process writes the descriptor to GameInfoPath and spawns the configured
// game-server command detached, fire-and-forget.
type Process struct {
	gameInfoPath string
	command      string
	dir          string
	log          *zap.Logger
}

func NewProcess(opts Options) *Process {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Process{
		gameInfoPath: opts.GameInfoPath,
		command:      opts.Command,
		dir:          opts.Dir,
		log:          log,
	}
}

func (p *Process) Launch(info GameInfo) error {
	payload, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode game info: %w", err)
	}
	if err := os.WriteFile(p.gameInfoPath, payload, 0o644); err != nil {
		return fmt.Errorf("write game info: %w", err)
	}
	p.log.Info("game info written", zap.String("path", p.gameInfoPath), zap.Int64("game_id", info.GameID))

	if p.command == "" {
		p.log.Warn("no game server command configured, skipping spawn")
		return nil
	}

	cmd := exec.Command(p.command)
	cmd.Dir = p.dir
	if err := cmd.Start(); err != nil {
		p.log.Error("failed to start game server", zap.String("command", p.command), zap.Error(err))
		return nil
	}
	p.log.Info("game server started", zap.String("command", p.command), zap.Int("pid", cmd.Process.Pid))

	go func() {
		if err := cmd.Wait(); err != nil {
			p.log.Warn("game server exited", zap.Error(err))
			return
		}
		p.log.Info("game server exited")
	}()
	return nil
}
