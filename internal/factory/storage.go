// Package factory assembles concrete drivers from configuration.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/filamentgenius/backend/internal/config"
	storepkg "github.com/filamentgenius/backend/internal/store"
	storemem "github.com/filamentgenius/backend/internal/store/memory"
	storepg "github.com/filamentgenius/backend/internal/store/postgres"
	storesqlite "github.com/filamentgenius/backend/internal/store/sqlite"
)

// NewStore returns a store.Store for the configured driver. Postgres schema
// bootstrap runs synchronously so callers see a usable store or an error.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "memory":
		log.Debug().Msg("using in-memory store")
		return storemem.New(), nil

	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store at %s: %w", cfg.SQLitePath, err)
		}
		log.Debug().Str("path", cfg.SQLitePath).Msg("using sqlite store")
		return st, nil

	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		bootstrapCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := storepg.Bootstrap(bootstrapCtx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap postgres schema: %w", err)
		}
		log.Debug().Msg("using postgres store")
		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
