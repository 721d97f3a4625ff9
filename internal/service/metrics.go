package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/stockscope/internal/calc"
	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/fanout"
	"github.com/guttosm/stockscope/internal/normalize"
	"github.com/guttosm/stockscope/internal/provider"
)

// MetricsService assembles the flat derived-metrics record of a symbol.
type MetricsService interface {
	GetMetrics(ctx context.Context, symbol string, targetYear *int) (*dto.MetricsResponse, error)
}

type metricsService struct {
	gatherer fanout.Gatherer
	now      func() time.Time
}

// NewMetricsService creates a MetricsService. A nil now uses time.Now.
func NewMetricsService(g fanout.Gatherer, now func() time.Time) MetricsService {
	return &metricsService{gatherer: g, now: clock(now)}
}

// Positions in the metrics batch.
const (
	mFMPQuote = iota
	mFinnhubQuote
	mAVQuote
	mFMPIncome
	mAVIncome
	mFinnhubReported
	mFinnhubMetric
	mAVOverview
	mFMPEstimates
	mFMPDividends
	mCallCount
)

func revenueOf(r models.FinancialPeriodRecord) *float64 { return r.Revenue }

// GetMetrics gathers price, the latest annual statement, metrics APIs,
// analyst estimates and dividends in one batch and derives margins,
// multiples and growth.
//
// Behavior:
//   - price: FMP quote → Finnhub quote → Alpha Vantage global quote.
//   - statements: FMP → Alpha Vantage → Finnhub, annual records only.
//   - targetYear defaults to the year after the latest statement.
//   - 404 only when neither a price nor a statement nor a metrics payload came back.
func (s *metricsService) GetMetrics(ctx context.Context, symbol string, targetYear *int) (*dto.MetricsResponse, error) {
	ticker, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}
	sym := string(ticker)
	now := s.now()

	calls := make([]provider.Call, mCallCount)
	calls[mFMPQuote] = provider.FMPQuote(sym)
	calls[mFinnhubQuote] = provider.FinnhubQuote(sym)
	calls[mAVQuote] = provider.AVGlobalQuote(sym)
	calls[mFMPIncome] = provider.FMPIncomeStatement(sym, models.PeriodAnnual, incomeStatementLimit)
	calls[mAVIncome] = provider.AVIncomeStatement(sym)
	calls[mFinnhubReported] = provider.FinnhubFinancialsReported(sym, models.PeriodAnnual)
	calls[mFinnhubMetric] = provider.FinnhubMetric(sym)
	calls[mAVOverview] = provider.AVOverview(sym)
	calls[mFMPEstimates] = provider.FMPAnalystEstimates(sym)
	calls[mFMPDividends] = provider.FMPDividends(sym)

	results := s.gatherer.Gather(ctx, calls)
	var fs failureSet

	price, priceSource := priceFrom(results[mFMPQuote:mAVQuote+1], &fs)

	var records []models.FinancialPeriodRecord
	for _, idx := range []int{mFMPIncome, mAVIncome, mFinnhubReported} {
		r := results[idx]
		if !r.OK() {
			fs.result(r)
			continue
		}
		recs := normalize.FilterPeriodType(normalize.Periods(r.Payload, normalize.IncomeHints(r.Provider, models.PeriodAnnual)), models.PeriodAnnual)
		if len(recs) == 0 {
			fs.noData(r, "No income statement data in response")
			continue
		}
		records = recs
		break
	}

	finnhubMetric := payloadOf(results[mFinnhubMetric], &fs)
	overview := payloadOf(results[mAVOverview], &fs)
	estimates := analystEstimates(results[mFMPEstimates], &fs)

	if price == nil && records == nil && finnhubMetric == nil && overview == nil {
		serviceLog().Info().Str("symbol", sym).Strs("reasons", fs.reasons()).Msg("metrics unavailable")
		return nil, fs.unavailable(fmt.Sprintf("No market data available for %s", sym))
	}

	resp := &dto.MetricsResponse{
		Symbol:      sym,
		Price:       price,
		PriceSource: ptrString(priceSource),
	}

	annualEPS := calc.LatestByYear(records, epsOf)
	target := now.Year() + 1
	if len(records) > 0 {
		latest := records[len(records)-1]
		resp.FiscalYear = ptrInt(latest.Year())
		resp.Revenue = latest.Revenue
		resp.EPS = latest.EPS
		resp.GrossMargin = calc.GrossMargin(latest)
		resp.OperatingMargin = calc.OperatingMargin(latest)
		resp.NetMargin = calc.NetMargin(latest)
		resp.PERatio = calc.PE(price, latest.EPS)
		if g := calc.AggregateGrowth(calc.LatestByYear(records, revenueOf), 0, 0); g != nil {
			resp.RevenueGrowth = ptrFloat(g.Rate)
		}
		if g := calc.AggregateGrowth(annualEPS, 0, 0); g != nil {
			resp.EPSGrowth = ptrFloat(g.Rate)
		}
		target = latest.Year() + 1
	}
	if targetYear != nil {
		target = *targetYear
	}

	resp.ForwardPE, resp.ForwardPESource = forwardPE(calc.ForwardPEInput{
		Price:            price,
		TargetYear:       target,
		Estimates:        estimates,
		MetricsForwardPE: firstPresent(normalize.Number(finnhubMetric, "$.metric.forwardPE"), normalize.Number(overview, "$.ForwardPE")),
		AnnualEPS:        annualEPS,
	})

	var fmpMarketCap *float64
	if results[mFMPQuote].OK() {
		fmpMarketCap = normalize.Number(results[mFMPQuote].Payload, "$[0].marketCap")
	}
	resp.MarketCap = firstPresent(
		fmpMarketCap,
		normalize.Number(overview, "$.MarketCapitalization"),
		scale(normalize.Number(finnhubMetric, "$.metric.marketCapitalization"), 1e6),
	)
	resp.Beta = firstPresent(normalize.Number(finnhubMetric, "$.metric.beta"), normalize.Number(overview, "$.Beta"))
	resp.DividendYield = dividendYield(results[mFMPDividends], price, overview, now)

	serviceLog().Debug().
		Str("symbol", sym).
		Str("price_source", priceSource).
		Int("periods", len(records)).
		Int("failed", fs.count()).
		Msg("metrics assembled")

	return resp, nil
}

func forwardPE(in calc.ForwardPEInput) (*float64, *string) {
	v, src := calc.ForwardPE(in)
	return v, ptrString(src)
}

// payloadOf returns the payload of a successful result, recording failures.
func payloadOf(r provider.Result, fs *failureSet) any {
	if !r.OK() {
		fs.result(r)
		return nil
	}
	return r.Payload
}

// dividendYield divides the last complete year's dividends by price, falling
// back to the yield reported by the Alpha Vantage overview.
func dividendYield(r provider.Result, price *float64, overview any, now time.Time) *float64 {
	if r.OK() {
		events := normalize.Dividends(r.Payload, normalize.DividendPaths(r.Provider)...)
		annual := calc.AggregateDividends(events)
		if y, ok := lastYearBefore(annual, now.Year()); ok {
			if dy := calc.DividendYield(ptrFloat(annual[y]), price); dy != nil {
				return dy
			}
		}
	}
	if dy := normalize.Number(overview, "$.DividendYield"); dy != nil && *dy >= 0 {
		return dy
	}
	return nil
}

func firstPresent(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func scale(v *float64, factor float64) *float64 {
	if v == nil {
		return nil
	}
	return ptrFloat(*v * factor)
}
