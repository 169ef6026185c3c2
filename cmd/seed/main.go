package main

import (
	"context"

	"applestore-clone/internal/backend"
	"applestore-clone/internal/config"
	"applestore-clone/internal/logging"
	"applestore-clone/internal/seed"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	logger := logging.Named(cfg.Log.Level, cfg.Log.Development, "seed")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open backend", zap.Error(err))
	}
	defer store.Close()

	if err := seed.Apply(ctx, store.Docs); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}

	logger.Info("seed applied", zap.String("backend", store.Name), zap.Int("items", len(seed.DemoItems)))
}
