// Package bootstrap wires the record store both binaries run on.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"rentease-backend/internal/config"
	"rentease-backend/internal/logger"
	"rentease-backend/internal/repository"
	"rentease-backend/internal/repository/memory"
	"rentease-backend/internal/repository/postgres"
	"rentease-backend/internal/repository/sqlite"
)

// OpenStore opens the record store selected by cfg.Database.Driver.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory, "":
		logger.Warn("Using in-memory record store; data is lost on exit")
		return memory.NewStore(), nil

	case config.DriverSQLite:
		logger.Info("Opening SQLite record store", "path", cfg.Database.SQLitePath)
		store, err := sqlite.NewStore(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Database connection established")
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// HealthCheck reports whether store can serve a read.
func HealthCheck(store repository.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return store.View(ctx, func(r repository.Reader) error {
			_, err := r.Read(ctx, repository.CollectionProperties)
			return err
		})
	}
}
