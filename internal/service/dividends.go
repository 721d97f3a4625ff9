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

// finnhubDividendLookback is how far back the Finnhub dividend range starts.
const finnhubDividendLookback = 10

// DividendService builds the dividend history and growth of a symbol.
type DividendService interface {
	GetDividends(ctx context.Context, symbol string) (*dto.DividendsResponse, error)
}

type dividendService struct {
	gatherer fanout.Gatherer
	now      func() time.Time
}

// NewDividendService creates a DividendService. A nil now uses time.Now.
func NewDividendService(g fanout.Gatherer, now func() time.Time) DividendService {
	return &dividendService{gatherer: g, now: clock(now)}
}

// dividendHistory is the reconciled dividend series of one provider.
type dividendHistory struct {
	Source     string
	Events     []models.DividendEvent
	Annual     models.AnnualAggregate
	Projection calc.Projection
	Growth     *models.GrowthEstimate
	// Latest is the total of the last complete year, nil when none.
	Latest *float64
}

// dividendCalls lists the dividend sources in priority order.
func dividendCalls(symbol string, now time.Time) []provider.Call {
	return []provider.Call{
		provider.FMPDividends(symbol),
		provider.FinnhubDividends(symbol, now.AddDate(-finnhubDividendLookback, 0, 0), now),
		provider.AVDividends(symbol),
	}
}

// dividendsFrom picks the first provider, in call order, with at least one
// valid event inside the trailing window and derives the annual series from it. ok is false when no
// provider produced an event; the reasons are recorded on fs.
func dividendsFrom(results []provider.Result, now time.Time, fs *failureSet) (dividendHistory, bool) {
	for _, r := range results {
		if !r.OK() {
			fs.result(r)
			continue
		}
		events := calc.TrailingWindow(normalize.Dividends(r.Payload, normalize.DividendPaths(r.Provider)...), now)
		if len(events) == 0 {
			fs.noData(r, "No dividend data in response")
			continue
		}

		annual := calc.AggregateDividends(events)
		h := dividendHistory{
			Source:     r.Provider,
			Events:     events,
			Annual:     annual,
			Projection: calc.ProjectCurrentYear(annual, now),
			Growth:     calc.AggregateGrowth(annual, now.Year(), 0),
		}
		if y, ok := lastYearBefore(annual, now.Year()); ok {
			h.Latest = ptrFloat(annual[y])
		}
		return h, true
	}
	return dividendHistory{}, false
}

// GetDividends fans out to FMP, Finnhub and Alpha Vantage and returns the
// history of the first provider with data.
//
// Returns:
//   - *MissingParameterError when symbol is blank.
//   - *UnavailableError when no provider produced a dividend event.
func (s *dividendService) GetDividends(ctx context.Context, symbol string) (*dto.DividendsResponse, error) {
	ticker, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sym := string(ticker)

	results := s.gatherer.Gather(ctx, dividendCalls(sym, now))

	var fs failureSet
	h, ok := dividendsFrom(results, now, &fs)
	if !ok {
		serviceLog().Info().Str("symbol", sym).Strs("reasons", fs.reasons()).Msg("dividends unavailable")
		return nil, fs.unavailable(fmt.Sprintf("No dividend data available for %s", sym))
	}

	serviceLog().Debug().
		Str("symbol", sym).
		Str("source", h.Source).
		Int("events", len(h.Events)).
		Int("failed", fs.count()).
		Msg("dividends assembled")

	return assembleDividends(sym, h), nil
}

func assembleDividends(symbol string, h dividendHistory) *dto.DividendsResponse {
	resp := &dto.DividendsResponse{
		Symbol:               symbol,
		Source:               h.Source,
		HistoricalDividends:  make([]dto.DividendPoint, 0, len(h.Events)),
		AnnualDividends:      make([]dto.AnnualDividend, 0, len(h.Annual)),
		LatestAnnualDividend: h.Latest,
	}
	for _, e := range h.Events {
		resp.HistoricalDividends = append(resp.HistoricalDividends, dto.DividendPoint{
			ExDate: formatDate(e.ExDate),
			Amount: e.AmountPerShare,
		})
	}

	p := h.Projection
	for _, y := range h.Annual.Years() {
		row := dto.AnnualDividend{Year: y, Total: h.Annual[y]}
		if y == p.Year && p.Projected {
			row.Total = p.Value
			row.Projected = true
		}
		resp.AnnualDividends = append(resp.AnnualDividends, row)
	}
	if _, ok := h.Annual[p.Year]; ok {
		resp.CurrentYearPartial = ptrFloat(p.Partial)
		if p.Projected {
			resp.CurrentYearProjected = ptrFloat(p.Value)
		}
	}

	if h.Growth != nil {
		resp.DividendGrowthRate = ptrFloat(h.Growth.Rate)
		resp.GrowthBasisYears = ptrInt(h.Growth.BasisYears)
	}
	return resp
}
