package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"skrillax-agent/internal/agent"
	"skrillax-agent/internal/config"
	"skrillax-agent/internal/engine"
	"skrillax-agent/internal/infrastructure/content"
	"skrillax-agent/internal/infrastructure/storage"
	"skrillax-agent/internal/navmesh"
	"skrillax-agent/internal/network"
	"skrillax-agent/internal/server"
	"skrillax-agent/internal/version"
	"skrillax-agent/internal/worlddata"
	"skrillax-agent/pkg/logger"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг флагов
	var configPath string
	var seed int64
	flag.StringVar(&configPath, "config", "", "Path to YAML config (empty for defaults + env)")
	flag.Int64Var(&seed, "seed", 0, "World seed, overrides config (0 keeps config value)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Configure(cfg.Log.Level, cfg.Log.Format)
	if seed != 0 {
		cfg.Game.Seed = seed
	}

	logger.Log.Info("Starting Skrillax agent simulation...")
	logger.Log.Info(version.String())

	// 2. Справочные данные мира
	registry := worlddata.NewRegistry()
	if err := registry.Load(content.NewDirLoader(cfg.Data.ContentDir)); err != nil {
		logger.Log.WithError(err).WithField("dir", cfg.Data.ContentDir).Fatal("Failed to load content")
	}
	logger.Log.WithFields(toFields(registry.Summary())).Info("Content loaded")

	terrain, err := loadTerrain(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load terrain")
	}

	// 3. Движок
	hub := network.NewBroadcaster()
	engCfg := engine.NewConfig(cfg.Game)
	eng, err := engine.New(engCfg, registry, terrain, hub)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build engine")
	}
	logger.Log.Infof("Using master seed: %d", engCfg.Seed)

	// 4. Последний снимок
	snapshots, err := storage.NewSnapshotService(cfg.Storage.SnapshotDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open snapshot storage")
	}
	snap, path, err := snapshots.LoadLatest()
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		logger.Log.Info("No snapshot found, starting with an empty world")
	case err != nil:
		logger.Log.WithError(err).Fatal("Failed to load snapshot")
	default:
		loaded := eng.LoadCharacters(snap.Characters)
		logger.Log.WithFields(logrus.Fields{"path": path, "characters": loaded}).Info("Snapshot restored")
	}

	// 5. Сервер и цикл, до сигнала остановки
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(eng, hub, cfg.Server.Port)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error {
		eng.Run(gctx)
		return nil
	})
	startAgents(gctx, eng, hub, cfg.Agents)
	if cfg.Storage.Autosave > 0 {
		g.Go(func() error {
			autosave(gctx, eng, snapshots, cfg.Storage.Autosave)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
	}

	logger.Log.Info("Shutting down...")
	if _, err := snapshots.Save(eng.TickCount(), eng.SaveCharacters()); err != nil {
		logger.Log.WithError(err).Error("Final snapshot failed")
	}
	logger.Log.Info("Done.")
}

// startAgents запускает встроенных ботов для персонажей из снимка
func startAgents(ctx context.Context, eng *engine.Engine, hub *network.Broadcaster, agents []config.AgentConfig) {
	for _, a := range agents {
		id, ok := eng.FindCharacter(a.Character)
		if !ok {
			logger.Log.WithField("character_id", a.Character).Warn("Agent character is not loaded")
			continue
		}
		policy, err := agent.ParsePolicy(a.Stats)
		if err != nil {
			logger.Log.WithError(err).Warn("Agent skipped")
			continue
		}
		go agent.NewBot(id.Decimal(), policy, a.Mastery, eng, hub).Run(ctx)
	}
}

func loadTerrain(cfg config.Config) (navmesh.HeightProvider, error) {
	if cfg.Data.Heightmap == "" {
		return navmesh.Flat{Height: cfg.Data.FlatHeight, Bounds: cfg.Game.Bounds}, nil
	}
	return navmesh.LoadHeightmap(cfg.Data.Heightmap)
}

func autosave(ctx context.Context, eng *engine.Engine, snapshots *storage.SnapshotService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := snapshots.Save(eng.TickCount(), eng.SaveCharacters()); err != nil {
				logger.Log.WithError(err).Warn("Autosave failed")
			}
		}
	}
}

func toFields(counts map[string]int) logrus.Fields {
	out := make(logrus.Fields, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}
