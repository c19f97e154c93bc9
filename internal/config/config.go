package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	AdminPassword string `env:"ADMIN_PASSWORD,required,notEmpty"`

	ChampionsPath string `env:"CHAMPIONS_PATH" envDefault:"data/champions.json"`
	SpellsPath    string `env:"SPELLS_PATH" envDefault:"data/spells.json"`
	MapsPath      string `env:"MAPS_PATH" envDefault:"data/maps.json"`
	RunesPath     string `env:"RUNES_PATH" envDefault:"data/runes.json"`

	SettingsPath string `env:"SETTINGS_PATH" envDefault:"data/server-config.json"`
	PostgresDSN  string `env:"POSTGRES_DSN"`

	GameInfoPath      string `env:"GAME_INFO_PATH,required,notEmpty"`
	GameServerCommand string `env:"GAME_SERVER_COMMAND"`
	GameServerDir     string `env:"GAME_SERVER_DIR"`
	GameServerPath    string `env:"GAME_SERVER_PATH"`
	GameServerPort    int    `env:"GAME_SERVER_PORT" envDefault:"5119"`

	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL" envDefault:"15s"`
	ResetDelay        time.Duration `env:"RESET_DELAY" envDefault:"20s"`

	LogPretty bool `env:"LOG_PRETTY" envDefault:"false"`
}

// Load reads a .env file when present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}
