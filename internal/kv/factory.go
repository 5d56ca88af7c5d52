package kv

import (
	"context"
	"fmt"

	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/config"
	"github.com/JuanBMMontesinos/GoogleAIStudio-Big2Fit/internal/logging"
)

// Open returns the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.DBPath, logger)
	case config.StoreFile:
		return NewFileStore(cfg.DataFile, logger)
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix, logger)
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN, logger)
	}
	return nil, fmt.Errorf("unsupported store backend %q", cfg.Store)
}
