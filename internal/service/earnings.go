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

// incomeStatementLimit is how many annual statements are requested from FMP.
const incomeStatementLimit = 10

// EarningsService builds the EPS history and growth of a symbol.
type EarningsService interface {
	GetEPSGrowth(ctx context.Context, symbol string) (*dto.EPSGrowthResponse, error)
}

type earningsService struct {
	gatherer fanout.Gatherer
	now      func() time.Time
}

// NewEarningsService creates an EarningsService. A nil now uses time.Now.
func NewEarningsService(g fanout.Gatherer, now func() time.Time) EarningsService {
	return &earningsService{gatherer: g, now: clock(now)}
}

// Positions in the eps-growth batch.
const (
	epsFMPIncome = iota
	epsFMPEstimates
	epsFinnhubReported
	epsAVEarnings
)

// epsHints returns the normalization hints for an annual EPS source.
func epsHints(r provider.Result) normalize.Hints {
	if r.Provider == provider.AlphaVantage {
		return normalize.EarningsHints(models.PeriodAnnual)
	}
	return normalize.IncomeHints(r.Provider, models.PeriodAnnual)
}

// annualWithEPS keeps the annual records that carry an EPS figure.
func annualWithEPS(records []models.FinancialPeriodRecord) []models.FinancialPeriodRecord {
	out := make([]models.FinancialPeriodRecord, 0, len(records))
	for _, r := range normalize.FilterPeriodType(records, models.PeriodAnnual) {
		if r.EPS != nil {
			out = append(out, r)
		}
	}
	return out
}

func epsOf(r models.FinancialPeriodRecord) *float64 { return r.EPS }

// GetEPSGrowth fans out to the FMP income statement and analyst estimates,
// Finnhub reported financials and Alpha Vantage earnings.
//
// Behavior:
//   - the EPS series comes from the first of FMP, Finnhub, Alpha Vantage with data.
//   - historical growth is the CAGR over the EPS series.
//   - analyst growth runs from the latest actual EPS to the farthest estimate;
//     an analyst failure (403, empty body) leaves it null and never fails the request.
func (s *earningsService) GetEPSGrowth(ctx context.Context, symbol string) (*dto.EPSGrowthResponse, error) {
	ticker, err := requireSymbol(symbol)
	if err != nil {
		return nil, err
	}
	sym := string(ticker)

	results := s.gatherer.Gather(ctx, []provider.Call{
		epsFMPIncome:       provider.FMPIncomeStatement(sym, models.PeriodAnnual, incomeStatementLimit),
		epsFMPEstimates:    provider.FMPAnalystEstimates(sym),
		epsFinnhubReported: provider.FinnhubFinancialsReported(sym, models.PeriodAnnual),
		epsAVEarnings:      provider.AVEarnings(sym),
	})

	var fs failureSet
	var source string
	var records []models.FinancialPeriodRecord
	for _, idx := range []int{epsFMPIncome, epsFinnhubReported, epsAVEarnings} {
		r := results[idx]
		if !r.OK() {
			fs.result(r)
			continue
		}
		recs := annualWithEPS(normalize.Periods(r.Payload, epsHints(r)))
		if len(recs) == 0 {
			fs.noData(r, "No EPS data in response")
			continue
		}
		source, records = r.Provider, recs
		break
	}
	if records == nil {
		serviceLog().Info().Str("symbol", sym).Strs("reasons", fs.reasons()).Msg("eps unavailable")
		return nil, fs.unavailable(fmt.Sprintf("No EPS data available for %s", sym))
	}

	resp := &dto.EPSGrowthResponse{
		Symbol:  sym,
		Source:  source,
		EPSData: make([]dto.EPSPoint, 0, len(records)),
	}
	for _, r := range records {
		resp.EPSData = append(resp.EPSData, dto.EPSPoint{Year: r.Year(), Date: formatDate(r.PeriodEndDate), EPS: r.EPS})
	}

	annual := calc.LatestByYear(records, epsOf)
	if g := calc.AggregateGrowth(annual, 0, 0); g != nil {
		resp.HistoricalGrowthRate = ptrFloat(g.Rate)
		resp.HistoricalBasisYears = ptrInt(g.BasisYears)
	}

	if est := analystEstimates(results[epsFMPEstimates], &fs); len(est) > 0 {
		resp.AnalystData = analystPoints(est)
		latest := records[len(records)-1]
		if g := calc.AnalystGrowth(latest.Year(), *latest.EPS, est); g != nil {
			resp.AnalystGrowthRate = ptrFloat(g.Rate)
			resp.AnalystBasisYears = ptrInt(g.BasisYears)
		}
	}

	serviceLog().Debug().
		Str("symbol", sym).
		Str("source", source).
		Int("periods", len(records)).
		Bool("analyst", resp.AnalystData != nil).
		Int("failed", fs.count()).
		Msg("eps growth assembled")

	return resp, nil
}

// analystEstimates normalizes an analyst-estimates result; failures and
// empty payloads yield nil.
func analystEstimates(r provider.Result, fs *failureSet) []models.AnalystEstimate {
	if !r.OK() {
		fs.result(r)
		return nil
	}
	est := normalize.Estimates(r.Payload, normalize.PathRoot)
	if len(est) == 0 {
		fs.noData(r, "No analyst estimates in response")
		return nil
	}
	return est
}

func analystPoints(est []models.AnalystEstimate) []dto.AnalystPoint {
	out := make([]dto.AnalystPoint, 0, len(est))
	for _, e := range est {
		out = append(out, dto.AnalystPoint{
			Year:           e.Year(),
			Date:           formatDate(e.Date),
			EPSAvg:         e.EPSAvg,
			EPSHigh:        e.EPSHigh,
			EPSLow:         e.EPSLow,
			RevenueAvg:     e.RevenueAvg,
			NumberAnalysts: e.NumberAnalysts,
		})
	}
	return out
}
