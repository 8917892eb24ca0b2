package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/phonebook/internal/adapter/postgres"
	"github.com/heartmarshall/phonebook/internal/adapter/postgres/color"
	"github.com/heartmarshall/phonebook/internal/adapter/postgres/contact"
	"github.com/heartmarshall/phonebook/internal/adapter/sqlite"
	"github.com/heartmarshall/phonebook/internal/config"
	"github.com/heartmarshall/phonebook/internal/store"
)

// OpenStore connects the configured storage driver, applies migrations
// unless disabled, and returns an initialized contact store. The returned
// close func releases the database handle.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store.Store, func(), error) {
	var (
		st      *store.Store
		closeFn func()
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if !cfg.Storage.SkipMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("migrate database: %w", err)
			}
		}
		st = store.New(logger, color.New(pool), contact.New(pool), postgres.NewTxManager(pool))
		closeFn = pool.Close

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		if !cfg.Storage.SkipMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("migrate database: %w", err)
			}
		}
		st = store.New(logger, sqlite.NewColorRepo(db), sqlite.NewContactRepo(db), sqlite.NewTxManager(db))
		closeFn = func() { _ = db.Close() }

	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Storage.InitTimeout)
	defer cancel()

	if err := st.Init(initCtx); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("init contact store: %w", err)
	}

	logger.Info("storage ready",
		slog.String("driver", cfg.Storage.Driver),
		slog.Bool("migrated", !cfg.Storage.SkipMigrate),
	)

	return st, closeFn, nil
}
