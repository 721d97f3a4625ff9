package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockscope/config"
	"github.com/guttosm/stockscope/internal/api"
	"github.com/guttosm/stockscope/internal/logger"
	"github.com/guttosm/stockscope/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the Provider Client and Fan-out Coordinator from cfg.Providers.
//   - Connects to PostgreSQL and migrates it when the watchlist is enabled.
//   - Creates the service and HTTP handler layers.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Parameters:
//   - cfg (config.Config): the validated configuration.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	var (
		repo    storage.WatchlistRepository
		dbPing  func(ctx context.Context) error
		cleanup = func() {}
	)

	if cfg.Watchlist.Enabled {
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if cfg.Watchlist.AutoMigrate {
			if err := migrator(db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
			}
		}

		repo = storage.NewWatchlistRepository(db)
		dbPing = repo.Ping
		cleanup = func() {
			_ = db.Close()
		}
	} else {
		logger.L().Info().Msg("watchlist disabled; no database connection")
	}

	svc := NewServices(NewGatherer(cfg.Providers), repo, time.Now)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitPerMin: cfg.Server.RateLimitPerMin,
		RequestTimeout:  cfg.Server.RequestTimeout,
	})

	// Register health and readiness probes
	api.NewHealthHandler(dbPing).Register(router)

	return router, cleanup, nil
}
