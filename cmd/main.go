package main

//
//  @title           stockscope API
//  @version         1.0
//  @description     Stock research backend reconciling FMP, Finnhub, Alpha Vantage and CNN data.
//  @termsOfService  https://github.com/guttosm/stockscope
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockscope
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        research
//  @tag.description Dividends, EPS growth, derived metrics, statements and sentiment
//
//  @tag.name        valuation
//  @tag.description Dividend discount and discounted cash flow models
//
//  @tag.name        watchlist
//  @tag.description Persisted symbol watchlist (optional)
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stockscope/config"
	_ "github.com/guttosm/stockscope/docs" // swagger docs
	"github.com/guttosm/stockscope/internal/app"
	"github.com/guttosm/stockscope/internal/logger"
	"github.com/guttosm/stockscope/internal/service"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runReport computes the derived metrics for one symbol and writes them as
// indented JSON to out. It goes through the same service as GET /metrics.
func runReport(ctx context.Context, svc service.MetricsService, symbol string, out io.Writer) error {
	resp, err := svc.GetMetrics(ctx, symbol, nil)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// main is the entry point of the stockscope application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API (default).
//   - report: Runs the metrics pipeline once for --symbol and prints the JSON.
//
// Flags:
//   - --mode:   Execution mode ("api" or "report"). Default: "api".
//   - --symbol: Ticker for report mode.
//   - --port:   Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	cfg, err := config.Load()

	// Initialize JSON logger
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid configuration")
	}
	if missing := cfg.UnkeyedProviders(); len(missing) > 0 {
		logger.L().Warn().Strs("keys", missing).Msg("provider API keys not set; those providers will be reported as unconfigured")
	}

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or report")
	symbol := flag.String("symbol", "", "Ticker for report mode")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "report":
		logger.L().Info().Str("symbol", *symbol).Msg("running report")

		reportCtx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout)
		defer cancel()

		svc := service.NewMetricsService(app.NewGatherer(cfg.Providers), time.Now)
		if err := runReport(reportCtx, svc, *symbol, os.Stdout); err != nil {
			logger.L().Fatal().Err(err).Msg("report failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
