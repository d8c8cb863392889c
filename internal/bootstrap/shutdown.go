package bootstrap

import (
	"context"
	"log/slog"

	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/server"
	"github.com/vistalabs/vista/internal/sse"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Events             *sse.Hub
	Workers            *Workers
	ResilientPublisher *event.ResilientPublisher
	Store              Store
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. Event stream hub (ends open streams so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Background workers (let a running backup finish)
// 4. Event publisher (dead-letter pending retries)
// 5. Store
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Events != nil {
		components.Events.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Workers != nil {
		slog.Info(LogMsgShuttingDownWorkers)
		components.Workers.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Store != nil {
		if err := components.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
