package app

import (
	"time"

	"github.com/guttosm/stockscope/config"
	"github.com/guttosm/stockscope/internal/api"
	"github.com/guttosm/stockscope/internal/fanout"
	"github.com/guttosm/stockscope/internal/logger"
	"github.com/guttosm/stockscope/internal/provider"
	"github.com/guttosm/stockscope/internal/service"
	"github.com/guttosm/stockscope/internal/storage"
)

// NewGatherer builds the Provider Client and the Fan-out Coordinator over it.
func NewGatherer(cfg config.ProvidersConfig) fanout.Gatherer {
	client := provider.NewClientFromConfig(cfg, provider.WithLogger(logger.Component("provider")))
	return fanout.NewCoordinator(client, cfg.MaxParallel)
}

// NewServices wires every endpoint service over one gatherer.
//
// Parameters:
//   - g: the fan-out used by all research services.
//   - repo: the watchlist store; nil disables the watchlist endpoints.
//   - now: the clock used for year boundaries and projections.
func NewServices(g fanout.Gatherer, repo storage.WatchlistRepository, now func() time.Time) api.Services {
	return api.Services{
		Dividends:  service.NewDividendService(g, now),
		Earnings:   service.NewEarningsService(g, now),
		Metrics:    service.NewMetricsService(g, now),
		Financials: service.NewFinancialsService(g),
		Valuation:  service.NewValuationService(g, now),
		Sentiment:  service.NewSentimentService(g),
		Watchlist:  service.NewWatchlistService(repo),
	}
}
