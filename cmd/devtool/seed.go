package main

import (
	"context"

	"github.com/vistalabs/vista/internal/bootstrap"
	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/config"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Apply a catalog seed file to the configured store"
}

func (c *SeedCommand) Run(args []string) error {
	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return err
	}
	path := cfg.SeedPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return usageError(c, "<seed.json> (or set SEED_PATH)")
	}

	seed, err := catalog.LoadSeed(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	PrintInfo("Seeding %s store from %s...", cfg.StoreDriver, path)
	res, err := catalog.ApplySeed(ctx, catalog.NewService(store, nil), seed)
	if err != nil {
		return err
	}
	PrintSuccess("Seed applied: %d inserted, %d already present", res.Inserted, res.Skipped)
	return nil
}
