package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/config"
)

// SyncCatalogSeed loads SEED_PATH and creates the entries the store lacks.
// Entries that already exist are left as they are, so restarts are safe.
func SyncCatalogSeed(ctx context.Context, cfg *config.Config, svc catalog.Service) error {
	if cfg.SeedPath == "" {
		slog.Debug(LogMsgSeedSkipped)
		return nil
	}

	slog.Info(LogMsgApplyingSeed, "path", cfg.SeedPath)
	seed, err := catalog.LoadSeed(cfg.SeedPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadSeed, err)
	}
	if _, err := catalog.ApplySeed(ctx, svc, seed); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedApplySeed, err)
	}
	return nil
}
