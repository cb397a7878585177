package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PantryBook_Go/internal/scheduler"
	"github.com/osse101/PantryBook_Go/internal/server"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/sse"
	"github.com/osse101/PantryBook_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Registry  *session.Registry
	Hub       *sse.Hub
}

// GracefulShutdown stops the application in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler, then worker pool (cancel queued jobs)
// 3. Sessions (close editors and tell event streams the session ended)
// 4. Event hub (release any remaining streams)
//
// Nil components are skipped. Errors are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.Pool != nil {
		slog.Info(LogMsgStoppingWorkers)
		components.Pool.Stop()
	}

	if components.Registry != nil {
		slog.Info(LogMsgClosingSessions, "count", components.Registry.Len())
		components.Registry.Close()
	}

	if components.Hub != nil {
		slog.Info(LogMsgStoppingHub)
		components.Hub.Stop()
	}

	slog.Info(LogMsgServerStopped)
}
