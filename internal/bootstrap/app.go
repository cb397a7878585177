// Package bootstrap wires the session server together from configuration.
package bootstrap

import (
	"time"

	"github.com/osse101/PantryBook_Go/internal/api"
	"github.com/osse101/PantryBook_Go/internal/catalog"
	"github.com/osse101/PantryBook_Go/internal/config"
	"github.com/osse101/PantryBook_Go/internal/handler"
	"github.com/osse101/PantryBook_Go/internal/recipe"
	"github.com/osse101/PantryBook_Go/internal/scheduler"
	"github.com/osse101/PantryBook_Go/internal/server"
	"github.com/osse101/PantryBook_Go/internal/session"
	"github.com/osse101/PantryBook_Go/internal/sse"
	"github.com/osse101/PantryBook_Go/internal/worker"
)

// App holds the running components
type App struct {
	Server    *server.Server
	Hub       *sse.Hub
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Registry  *session.Registry
	Catalog   *catalog.CachedSource
}

// NewApp builds every component from cfg and starts the background ones.
// The HTTP server is not started.
func NewApp(cfg *config.Config) *App {
	client := api.NewAPIClient(cfg.APIBaseURL, api.StaticToken(cfg.APIToken),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRetries(cfg.HTTPMaxRetries, BackendRetryDelay),
	)
	cachedCatalog := catalog.NewCachedSource(client, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)

	hub := sse.NewHub()
	hub.Start()

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(JobNameCatalogWarm, catalogWarmInterval(cfg.CatalogCacheTTL), &worker.CatalogWarmJob{Catalog: cachedCatalog})

	registry := session.NewRegistry(session.Deps{
		Catalog:   cachedCatalog,
		Recipes:   client,
		Nutrition: client,
		Lists:     client,
		Hub:       hub,
		Policy:    recipe.Policy{RequireNutrition: cfg.RequireNutrition},
	}, cfg.SessionCacheSize, cfg.SessionTTL)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Version:        cfg.Version,
		Sessions:       handler.NewSessionHandlers(registry, pool),
		Hub:            hub,
		Ready: map[string]handler.HealthChecker{
			ReadinessCatalog: cachedCatalog,
			ReadinessJobs:    pool,
		},
	})

	return &App{
		Server:    srv,
		Hub:       hub,
		Pool:      pool,
		Scheduler: sched,
		Registry:  registry,
		Catalog:   cachedCatalog,
	}
}

// catalogWarmInterval refreshes the cached catalog shortly before it expires
func catalogWarmInterval(ttl time.Duration) time.Duration {
	if ttl < MinCatalogWarmInterval {
		return 0
	}
	return ttl * 4 / 5
}

// ShutdownComponents returns the components in the form GracefulShutdown expects
func (a *App) ShutdownComponents() ShutdownComponents {
	return ShutdownComponents{
		Server:    a.Server,
		Scheduler: a.Scheduler,
		Pool:      a.Pool,
		Registry:  a.Registry,
		Hub:       a.Hub,
	}
}
