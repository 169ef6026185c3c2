package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"applestore-clone/internal/backend"
	"applestore-clone/internal/catalog"
	"applestore-clone/internal/config"
	"applestore-clone/internal/httpserver"
	"applestore-clone/internal/logging"
	"applestore-clone/internal/service/identity"
	"applestore-clone/internal/session"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	logger := logging.Named(cfg.Log.Level, cfg.Log.Development, "api")
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open backend", zap.String("backend", cfg.DocStore.Backend), zap.Error(err))
	}
	defer store.Close()

	identityService := identity.New(store.Customers, identity.Config{
		Secret:   []byte(cfg.Auth.IDTokenSecret),
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.ClientID,
	}, logger.Named("identity"))

	catalogLogger := logger.Named("catalog")
	manager := session.NewManager(cfg.Auth.ClientID, identityService, func() *catalog.Store {
		return catalog.New(store.Docs, catalogLogger)
	}, logger.Named("session"))
	defer manager.Close()
	if !manager.Configured() {
		logger.Fatal("startup: " + session.ErrMissingClientConfig.Error())
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Session:        manager,
		Docs:           store.Docs,
		AllowedOrigins: cfg.AllowedOrigins(),
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
