package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockscope/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig carries the inbound limits applied by NewRouter.
type RouterConfig struct {
	RateLimitPerMin int
	RequestTimeout  time.Duration
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter).
//   - Adds the request deadline (RouterConfig.RequestTimeout).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The HTTP handler with business logic.
//   - cfg (RouterConfig): inbound rate limit and timeout.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimitPerMin),
	)

	// ─── Timeout ──────────────────────────────────
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/dividends", handler.GetDividends)
		v1.GET("/eps-growth", handler.GetEPSGrowth)
		v1.GET("/metrics", handler.GetMetrics)
		v1.GET("/financials", handler.GetFinancials)
		v1.GET("/ddm", handler.GetDDM)
		v1.GET("/dcf", handler.GetDCF)
		v1.GET("/fear-greed", handler.GetFearGreed)

		v1.GET("/watchlist", handler.ListWatchlist)
		v1.POST("/watchlist", handler.AddWatchlist)
		v1.DELETE("/watchlist/:symbol", handler.RemoveWatchlist)
	}

	return router
}
