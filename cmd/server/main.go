package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eti-lan/game-lobby/internal/catalog"
	"github.com/eti-lan/game-lobby/internal/config"
	"github.com/eti-lan/game-lobby/internal/httpapi"
	"github.com/eti-lan/game-lobby/internal/launcher"
	"github.com/eti-lan/game-lobby/internal/lobby"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.LogPretty)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cat, err := catalog.Load(cfg.ChampionsPath, cfg.SpellsPath, cfg.MapsPath)
	if err != nil {
		logger.Fatal("loading catalogs failed", zap.Error(err))
	}
	logger.Info("catalogs loaded",
		zap.Int("champions", len(cat.Champions)),
		zap.Int("spells", len(cat.Spells)),
		zap.Int("maps", len(cat.Maps)))

	runes, err := launcher.LoadRunes(cfg.RunesPath)
	if err != nil {
		logger.Fatal("loading runes failed", zap.Error(err))
	}

	var store config.SettingsStore
	if cfg.PostgresDSN != "" {
		store, err = config.NewGormStore(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("opening settings store failed", zap.Error(err))
		}
	} else {
		store = config.NewFileStore(cfg.SettingsPath)
	}
	settings, err := store.Load()
	if err != nil {
		logger.Fatal("loading game settings failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lb := lobby.New(ctx, lobby.Deps{
		Catalog: cat,
		Store:   store,
		Launcher: launcher.NewProcess(launcher.Options{
			GameInfoPath: cfg.GameInfoPath,
			Command:      cfg.GameServerCommand,
			Dir:          cfg.GameServerDir,
			Logger:       logger.Named("launcher"),
		}),
		Settings:          settings,
		Runes:             runes,
		AdminPassword:     cfg.AdminPassword,
		HeartbeatInterval: cfg.HeartbeatInterval,
		ResetDelay:        cfg.ResetDelay,
		GameServerPath:    cfg.GameServerPath,
		GameServerPort:    cfg.GameServerPort,
		Logger:            logger.Named("lobby"),
	})

	api := httpapi.New(lb, cat, logger.Named("http"))
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.SetupRoutes(api),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(pretty bool) (*zap.Logger, error) {
	if pretty {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
