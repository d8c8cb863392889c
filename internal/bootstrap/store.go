package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/database"
	"github.com/vistalabs/vista/internal/database/memory"
	"github.com/vistalabs/vista/internal/database/migrations"
	"github.com/vistalabs/vista/internal/database/postgres"
	"github.com/vistalabs/vista/internal/database/sqlite"
	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/repository"
)

// Store is what every backend provides to the services, the HTTP layer and
// the backup job.
type Store interface {
	repository.Store
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// InitializeStore opens the backend selected by STORE_DRIVER. For postgres it
// connects the pool and applies migrations first. The caller must Close it.
func InitializeStore(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		store = memory.NewStore()
	case config.StoreDriverSQLite:
		store, err = sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		if err := migrations.UpPool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedApplyMigrations, err)
		}
		slog.Info(LogMsgMigrationsApplied)
		store = postgres.NewStore(pool)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStoreDriver, cfg.StoreDriver)
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return store, nil
}
