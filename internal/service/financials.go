package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/stockscope/internal/calc"
	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/fanout"
	"github.com/guttosm/stockscope/internal/normalize"
	"github.com/guttosm/stockscope/internal/provider"
)

// financialsLimit is how many statements are requested from FMP.
const financialsLimit = 40

// FinancialsQuery holds the raw query parameters of GET /financials.
type FinancialsQuery struct {
	Symbol   string
	Period   string
	Provider string
	From     string
	To       string
}

// FinancialsService returns a normalized statement series.
type FinancialsService interface {
	GetFinancials(ctx context.Context, q FinancialsQuery) (*dto.FinancialsResponse, error)
}

type financialsService struct {
	gatherer fanout.Gatherer
}

// NewFinancialsService creates a FinancialsService.
func NewFinancialsService(g fanout.Gatherer) FinancialsService {
	return &financialsService{gatherer: g}
}

// providerAliases maps the "provider" query values onto provider names.
var providerAliases = map[string]string{
	"fmp":           provider.FMP,
	"finnhub":       provider.Finnhub,
	"alphavantage":  provider.AlphaVantage,
	"alpha-vantage": provider.AlphaVantage,
	"av":            provider.AlphaVantage,
}

// statementCalls lists the statement sources in priority order.
func statementCalls(symbol string, pt models.PeriodType) []provider.Call {
	return []provider.Call{
		provider.FMPIncomeStatement(symbol, pt, financialsLimit),
		provider.AVIncomeStatement(symbol),
		provider.FinnhubFinancialsReported(symbol, pt),
	}
}

func parseBound(param, raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(raw))
	if err != nil {
		return nil, &InvalidParameterError{Param: param, Reason: "expected YYYY-MM-DD"}
	}
	return &t, nil
}

// GetFinancials validates the query, calls either the requested provider or
// every statement source, and returns the first non-empty series with
// per-record margins.
//
// Returns:
//   - *MissingParameterError when symbol is blank.
//   - *InvalidParameterError for an unknown period, provider or malformed date.
//   - *UnavailableError when no source produced a record of the requested type.
func (s *financialsService) GetFinancials(ctx context.Context, q FinancialsQuery) (*dto.FinancialsResponse, error) {
	ticker, err := requireSymbol(q.Symbol)
	if err != nil {
		return nil, err
	}
	sym := string(ticker)

	pt, ok := models.ParsePeriodType(q.Period)
	if !ok {
		return nil, &InvalidParameterError{Param: "period", Reason: "expected annual or quarterly"}
	}
	from, err := parseBound("from", q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseBound("to", q.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, &InvalidParameterError{Param: "to", Reason: "must not be before from"}
	}

	calls := statementCalls(sym, pt)
	if name := strings.ToLower(strings.TrimSpace(q.Provider)); name != "" {
		want, known := providerAliases[name]
		if !known {
			return nil, &InvalidParameterError{Param: "provider", Reason: "expected fmp, finnhub or alphavantage"}
		}
		var only []provider.Call
		for _, c := range calls {
			if c.Provider == want {
				only = append(only, c)
			}
		}
		calls = only
	}

	results := s.gatherer.Gather(ctx, calls)

	var fs failureSet
	for _, r := range results {
		if !r.OK() {
			fs.result(r)
			continue
		}
		recs := normalize.FilterPeriodType(normalize.Periods(r.Payload, normalize.IncomeHints(r.Provider, pt)), pt)
		if len(recs) == 0 {
			fs.noData(r, fmt.Sprintf("No %s statements in response", pt))
			continue
		}

		resp := &dto.FinancialsResponse{
			Symbol:     sym,
			Source:     r.Provider,
			PeriodType: string(pt),
			Records:    make([]dto.FinancialRecord, 0, len(recs)),
		}
		for _, rec := range recs {
			if from != nil && rec.PeriodEndDate.Before(*from) {
				continue
			}
			if to != nil && rec.PeriodEndDate.After(*to) {
				continue
			}
			resp.Records = append(resp.Records, financialRecord(rec))
		}

		serviceLog().Debug().
			Str("symbol", sym).
			Str("source", r.Provider).
			Str("period", string(pt)).
			Int("records", len(resp.Records)).
			Msg("financials assembled")
		return resp, nil
	}

	return nil, fs.unavailable(fmt.Sprintf("No financial statements available for %s", sym))
}

func financialRecord(r models.FinancialPeriodRecord) dto.FinancialRecord {
	return dto.FinancialRecord{
		PeriodEndDate:      formatDate(r.PeriodEndDate),
		PeriodType:         string(r.PeriodType),
		Year:               r.Year(),
		EPS:                r.EPS,
		Revenue:            r.Revenue,
		CostOfRevenue:      r.CostOfRevenue,
		GrossProfit:        r.GrossProfit,
		NetIncome:          r.NetIncome,
		OperatingIncome:    r.OperatingIncome,
		OperatingCashFlow:  r.OperatingCashFlow,
		CapitalExpenditure: r.CapitalExpenditure,
		FreeCashFlow:       freeCashFlow(r),
		GrossMargin:        calc.GrossMargin(r),
		OperatingMargin:    calc.OperatingMargin(r),
		NetMargin:          calc.NetMargin(r),
	}
}
