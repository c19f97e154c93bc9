package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GameSettings is the single persisted settings record: read at startup,
// rewritten whenever an admin updates it. Field names match the wire shape
// expected by the game server.
type GameSettings struct {
	ManacostsEnabled    bool `json:"MANACOSTS_ENABLED"`
	CooldownsEnabled    bool `json:"COOLDOWNS_ENABLED"`
	MinionSpawnsEnabled bool `json:"MINION_SPAWNS_ENABLED"`
	TickRate            int  `json:"TICK_RATE"`
	Map                 int  `json:"map"`
}

func DefaultSettings() GameSettings {
	return GameSettings{
		ManacostsEnabled:    true,
		CooldownsEnabled:    true,
		MinionSpawnsEnabled: true,
		TickRate:            60,
		Map:                 1,
	}
}

type SettingsStore interface {
	Load() (GameSettings, error)
	Save(GameSettings) error
}

// FileStore keeps the settings record in a JSON file. A missing file yields
// the defaults; the first Save creates it.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (GameSettings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return GameSettings{}, fmt.Errorf("read settings: %w", err)
	}
	var gs GameSettings
	if err := json.Unmarshal(data, &gs); err != nil {
		return GameSettings{}, fmt.Errorf("parse settings: %w", err)
	}
	return gs, nil
}

func (s *FileStore) Save(gs GameSettings) error {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

type settingsRecord struct {
	ID                  uint `gorm:"primaryKey"`
	ManacostsEnabled    bool
	CooldownsEnabled    bool
	MinionSpawnsEnabled bool
	TickRate            int
	MapID               int
}

func (settingsRecord) TableName() string { return "game_settings" }

// GormStore persists the settings record as a single row in Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&settingsRecord{}); err != nil {
		return nil, fmt.Errorf("migrate settings: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Load() (GameSettings, error) {
	var rec settingsRecord
	err := s.db.First(&rec, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return GameSettings{}, fmt.Errorf("load settings: %w", err)
	}
	return GameSettings{
		ManacostsEnabled:    rec.ManacostsEnabled,
		CooldownsEnabled:    rec.CooldownsEnabled,
		MinionSpawnsEnabled: rec.MinionSpawnsEnabled,
		TickRate:            rec.TickRate,
		Map:                 rec.MapID,
	}, nil
}

func (s *GormStore) Save(gs GameSettings) error {
	rec := settingsRecord{
		ID:                  1,
		ManacostsEnabled:    gs.ManacostsEnabled,
		CooldownsEnabled:    gs.CooldownsEnabled,
		MinionSpawnsEnabled: gs.MinionSpawnsEnabled,
		TickRate:            gs.TickRate,
		MapID:               gs.Map,
	}
	if err := s.db.Save(&rec).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
