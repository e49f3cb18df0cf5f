package storage

import (
	"context"

	"tasklog/internal/config"
	"tasklog/internal/errors"
)

// Open returns the DayStore selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (DayStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON, "":
		return NewJSONStore(cfg.DataDir), nil
	case config.BackendSQLite:
		return OpenSQLiteStore(ctx, cfg.GetSQLitePath())
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.Storage.PostgresURL)
	default:
		return nil, errors.NewConfigError("unknown storage backend: "+cfg.Storage.Backend, nil)
	}
}
