package main

import (
	"context"

	"applestore-clone/internal/config"
	"applestore-clone/internal/db"
	"applestore-clone/internal/logging"
	"applestore-clone/internal/migrate"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	logger := logging.Named(cfg.Log.Level, cfg.Log.Development, "migrate")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DocStore.DBConnString, cfg.DocStoreConnTimeout(), logger)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	version, err := migrate.ApplyVersion(ctx, pool)
	if err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	logger.Info("migrations applied", zap.Uint("version", version))
}
