package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"applestore-clone/internal/backend"
	"applestore-clone/internal/config"
	"applestore-clone/internal/importer"
	"applestore-clone/internal/logging"
	"go.uber.org/zap"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to item CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	logger := logging.Named(cfg.Log.Level, cfg.Log.Development, "importer")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open backend", zap.Error(err))
	}
	defer store.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal("open file", zap.String("file", filePath), zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, store.Docs, logger)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", count), zap.Error(err))
	}

	fmt.Printf("Imported %d items into %s in %s\n", count, store.Name, time.Since(start).Truncate(time.Millisecond))
}
