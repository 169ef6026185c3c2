// Package backend opens the storage a process runs against, as selected by DOCSTORE_BACKEND.
package backend

import (
	"context"
	"fmt"

	"applestore-clone/internal/config"
	"applestore-clone/internal/db"
	"applestore-clone/internal/docstore"
	"applestore-clone/internal/migrate"
	"applestore-clone/internal/repository/customer"
	"go.uber.org/zap"
)

// Backend bundles the document store with the customer repository living next to it.
type Backend struct {
	Name      string
	Docs      docstore.Store
	Customers customer.Repository
	closers   []func()
}

// Open connects the configured backend. Postgres schemas are migrated before use.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	name := cfg.DocStore.Backend

	switch name {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DocStore.DBConnString, cfg.DocStoreConnTimeout(), logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		if err := migrate.Apply(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		return &Backend{
			Name:      name,
			Docs:      docstore.NewPostgres(pool, logger),
			Customers: customer.NewPostgres(pool, logger),
			closers:   []func(){pool.Close},
		}, nil

	case config.BackendMongo:
		client, err := docstore.ConnectMongo(ctx, cfg.DocStore.MongoURI, cfg.DocStoreConnTimeout())
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		database := client.Database(cfg.DocStore.MongoDatabase)
		logger.Info("backend: mongo connected", zap.String("database", cfg.DocStore.MongoDatabase))
		return &Backend{
			Name:      name,
			Docs:      docstore.NewMongo(database, logger),
			Customers: customer.NewMongo(database, logger),
			closers: []func(){func() {
				_ = client.Disconnect(context.Background())
			}},
		}, nil

	case config.BackendMemory:
		logger.Warn("backend: using in-memory storage, nothing survives a restart")
		return &Backend{
			Name:      name,
			Docs:      docstore.NewMemory(),
			Customers: customer.NewMemory(),
		}, nil
	}

	return nil, fmt.Errorf("unknown document store backend %q", name)
}

// Close releases connections in reverse order of acquisition.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}
