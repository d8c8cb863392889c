// @title Vista API
// @version 1.0
// @description Manufacturing inventory: catalog, production simulation and stock consumption.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vistalabs/vista/internal/bootstrap"
	"github.com/vistalabs/vista/internal/catalog"
	"github.com/vistalabs/vista/internal/concurrency"
	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/handler"
	"github.com/vistalabs/vista/internal/idempotency"
	"github.com/vistalabs/vista/internal/production"
	"github.com/vistalabs/vista/internal/server"
	"github.com/vistalabs/vista/internal/sse"

	_ "github.com/vistalabs/vista/docs"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		// Config.Load already succeeded, so a missing schema version is not fatal
		slog.Warn("Environment schema check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = store.Close()
		return err
	}
	var hub *sse.Hub
	if cfg.EventStreamEnabled {
		hub = sse.NewHub()
		hub.Start()
	}
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: events.Bus, Config: cfg, Hub: hub}); err != nil {
		_ = store.Close()
		return err
	}

	catalogService := catalog.NewService(store, events.Publisher)
	productionService := production.NewService(store, events.Publisher, concurrency.NewLockManager(), cfg.DefaultProductionMode)

	if err := bootstrap.SyncCatalogSeed(ctx, cfg, catalogService); err != nil {
		_ = store.Close()
		return err
	}

	workers, err := bootstrap.InitializeWorkers(ctx, cfg, store)
	if err != nil {
		_ = store.Close()
		return err
	}

	var backupRunner handler.BackupRunner
	if workers.Backup != nil {
		backupRunner = workers.Backup
	}

	handler.InitValidator()
	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		StoreDriver:    cfg.StoreDriver,
	}, server.Deps{
		Store:       store,
		Catalog:     catalogService,
		Production:  productionService,
		Backup:      backupRunner,
		Idempotency: idempotency.NewCache(cfg.IdempotencyCacheSize, cfg.IdempotencyTTL),
		Events:      hub,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Events:             hub,
		Workers:            workers,
		ResilientPublisher: events.Publisher,
		Store:              store,
	})
	return serveErr
}
