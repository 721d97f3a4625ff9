package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/guttosm/stockscope/internal/calc"
	"github.com/guttosm/stockscope/internal/domain/dto"
	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/fanout"
	"github.com/guttosm/stockscope/internal/normalize"
	"github.com/guttosm/stockscope/internal/provider"
)

// Valuation defaults.
const (
	DefaultWACC            = 0.08
	DefaultStableGrowth    = 0.03
	DefaultHighGrowthYears = 5
	DefaultTerminalGrowth  = 0.025
	DefaultDCFYears        = 5
)

// DDMQuery parameterizes GET /ddm; nil fields take the defaults.
type DDMQuery struct {
	Symbol          string
	WACC            *float64
	StableGrowth    *float64
	HighGrowthRate  *float64
	HighGrowthYears *int
}

// DCFQuery parameterizes GET /dcf; nil fields take the defaults.
type DCFQuery struct {
	Symbol         string
	WACC           *float64
	TerminalGrowth *float64
	GrowthRate     *float64
	Years          *int
}

// ValuationService runs the dividend discount and discounted cash flow models.
type ValuationService interface {
	GetDDM(ctx context.Context, q DDMQuery) (*dto.DDMResponse, error)
	GetDCF(ctx context.Context, q DCFQuery) (*dto.DCFResponse, error)
}

type valuationService struct {
	gatherer fanout.Gatherer
	now      func() time.Time
}

// NewValuationService creates a ValuationService. A nil now uses time.Now.
func NewValuationService(g fanout.Gatherer, now func() time.Time) ValuationService {
	return &valuationService{gatherer: g, now: clock(now)}
}

func orFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func orInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// invalidModelInput converts a calc input error into a 400.
func invalidModelInput(err error) error {
	if errors.Is(err, calc.ErrInvalidInput) {
		return &InvalidParameterError{Param: "model", Reason: err.Error()}
	}
	return err
}

func projectionPoints(flows []calc.ProjectedFlow) []dto.ProjectionPoint {
	out := make([]dto.ProjectionPoint, 0, len(flows))
	for _, p := range flows {
		out = append(out, dto.ProjectionPoint{Year: p.Year, Value: p.Value, PresentValue: p.PresentValue})
	}
	return out
}

// GetDDM values a share from its dividend history.
//
// Behavior:
//   - D0 is the total of the last complete dividend year.
//   - highGrowthRate defaults to the historical dividend CAGR (0 when null).
//   - terminal value is 0 when wacc <= stableGrowth.
func (s *valuationService) GetDDM(ctx context.Context, q DDMQuery) (*dto.DDMResponse, error) {
	ticker, err := requireSymbol(q.Symbol)
	if err != nil {
		return nil, err
	}
	sym := string(ticker)
	now := s.now()

	divCalls := dividendCalls(sym, now)
	results := s.gatherer.Gather(ctx, append(divCalls, quoteCalls(sym)...))

	var fs failureSet
	h, ok := dividendsFrom(results[:len(divCalls)], now, &fs)
	if !ok || h.Latest == nil || *h.Latest <= 0 {
		if ok {
			fs.failures = append(fs.failures, provider.NoDataFailure(h.Source, "dividends", "No complete dividend year"))
		}
		return nil, fs.unavailable(fmt.Sprintf("No dividend history to value %s", sym))
	}
	price, _ := priceFrom(results[len(divCalls):], nil)

	growth := 0.0
	if h.Growth != nil {
		growth = h.Growth.Rate
	}
	wacc := orFloat(q.WACC, DefaultWACC)
	stable := orFloat(q.StableGrowth, DefaultStableGrowth)
	highGrowth := orFloat(q.HighGrowthRate, growth)
	years := orInt(q.HighGrowthYears, DefaultHighGrowthYears)

	res, err := calc.DDM(*h.Latest, highGrowth, years, stable, wacc)
	if err != nil {
		return nil, invalidModelInput(err)
	}

	serviceLog().Debug().Str("symbol", sym).Str("source", h.Source).Float64("intrinsic", res.Total).Msg("ddm computed")

	return &dto.DDMResponse{
		Symbol:          sym,
		CurrentDividend: *h.Latest,
		WACC:            wacc,
		StableGrowth:    stable,
		HighGrowthRate:  highGrowth,
		HighGrowthYears: years,
		Projections:     projectionPoints(res.Projections),
		TerminalValue:   res.TerminalValue,
		PVTerminalValue: res.PVTerminal,
		SumPVDividends:  res.SumPresentValue,
		IntrinsicValue:  res.Total,
		Price:           price,
		Upside:          calc.Upside(res.Total, price),
	}, nil
}

// Positions in the dcf batch, before the quote calls.
const (
	dcfFMPCashFlow = iota
	dcfAVCashFlow
	dcfFMPIncome
	dcfAVOverview
	dcfFMPBalance
	dcfCallCount
)

// freeCashFlow returns the reported FCF or operating cash flow minus |capex|.
func freeCashFlow(r models.FinancialPeriodRecord) *float64 {
	if r.FreeCashFlow != nil {
		return r.FreeCashFlow
	}
	if r.OperatingCashFlow != nil && r.CapitalExpenditure != nil {
		return ptrFloat(*r.OperatingCashFlow - math.Abs(*r.CapitalExpenditure))
	}
	return nil
}

// GetDCF runs a two-stage DCF on annual free cash flow.
//
// Behavior:
//   - cash flows: FMP cash-flow statement → Alpha Vantage CASH_FLOW.
//   - growthRate defaults to the historical FCF CAGR (0 when null).
//   - shares: FMP income statement → Alpha Vantage overview; net debt from the
//     FMP balance sheet, not applied when unknown.
func (s *valuationService) GetDCF(ctx context.Context, q DCFQuery) (*dto.DCFResponse, error) {
	ticker, err := requireSymbol(q.Symbol)
	if err != nil {
		return nil, err
	}
	sym := string(ticker)

	calls := make([]provider.Call, dcfCallCount)
	calls[dcfFMPCashFlow] = provider.FMPCashFlow(sym, incomeStatementLimit)
	calls[dcfAVCashFlow] = provider.AVCashFlow(sym)
	calls[dcfFMPIncome] = provider.FMPIncomeStatement(sym, models.PeriodAnnual, 1)
	calls[dcfAVOverview] = provider.AVOverview(sym)
	calls[dcfFMPBalance] = provider.FMPBalanceSheet(sym, 1)
	results := s.gatherer.Gather(ctx, append(calls, quoteCalls(sym)...))

	var fs failureSet
	var source string
	var flows []models.FinancialPeriodRecord
	for _, idx := range []int{dcfFMPCashFlow, dcfAVCashFlow} {
		r := results[idx]
		if !r.OK() {
			fs.result(r)
			continue
		}
		var withFCF []models.FinancialPeriodRecord
		for _, rec := range normalize.Periods(r.Payload, normalize.IncomeHints(r.Provider, models.PeriodAnnual)) {
			if fcf := freeCashFlow(rec); fcf != nil {
				rec.FreeCashFlow = fcf
				withFCF = append(withFCF, rec)
			}
		}
		if len(withFCF) == 0 {
			fs.noData(r, "No cash flow data in response")
			continue
		}
		source, flows = r.Provider, withFCF
		break
	}
	if flows == nil {
		return nil, fs.unavailable(fmt.Sprintf("No cash flow data available for %s", sym))
	}

	fcfSeries := calc.LatestByYear(flows, func(r models.FinancialPeriodRecord) *float64 { return r.FreeCashFlow })
	historical := 0.0
	if g := calc.AggregateGrowth(fcfSeries, 0, 0); g != nil {
		historical = g.Rate
	}
	base := *flows[len(flows)-1].FreeCashFlow

	in := calc.TwoStageInput{
		Base:         base,
		GrowthRate:   orFloat(q.GrowthRate, historical),
		Years:        orInt(q.Years, DefaultDCFYears),
		StableGrowth: orFloat(q.TerminalGrowth, DefaultTerminalGrowth),
		WACC:         orFloat(q.WACC, DefaultWACC),
	}

	var shares *float64
	if r := results[dcfFMPIncome]; r.OK() {
		for _, rec := range normalize.Periods(r.Payload, normalize.IncomeHints(r.Provider, models.PeriodAnnual)) {
			shares = rec.SharesOutstanding
		}
	}
	if shares == nil && results[dcfAVOverview].OK() {
		shares = normalize.Number(results[dcfAVOverview].Payload, "$.SharesOutstanding")
	}
	netDebt := netDebtFrom(results[dcfFMPBalance])

	res, err := calc.DCF(in, netDebt, shares)
	if err != nil {
		return nil, invalidModelInput(err)
	}
	price, _ := priceFrom(results[dcfCallCount:], nil)

	resp := &dto.DCFResponse{
		Symbol:          sym,
		Source:          source,
		BaseFreeCash:    base,
		WACC:            in.WACC,
		TerminalGrowth:  in.StableGrowth,
		GrowthRate:      in.GrowthRate,
		Years:           in.Years,
		Projections:     projectionPoints(res.Projections),
		TerminalValue:   res.TerminalValue,
		PVTerminalValue: res.PVTerminal,
		EnterpriseValue: res.EnterpriseValue,
		NetDebt:         netDebt,
		EquityValue:     res.EquityValue,
		Shares:          shares,
		PerShare:        res.PerShare,
		Price:           price,
	}
	if res.PerShare != nil {
		resp.Upside = calc.Upside(*res.PerShare, price)
	}

	serviceLog().Debug().Str("symbol", sym).Str("source", source).Float64("ev", res.EnterpriseValue).Msg("dcf computed")
	return resp, nil
}

// netDebtFrom reads netDebt, or totalDebt minus cash, from an FMP balance sheet.
func netDebtFrom(r provider.Result) *float64 {
	if !r.OK() {
		return nil
	}
	if nd := normalize.Number(r.Payload, "$[0].netDebt"); nd != nil {
		return nd
	}
	debt := normalize.Number(r.Payload, "$[0].totalDebt")
	cash := normalize.Number(r.Payload, "$[0].cashAndCashEquivalents")
	if debt == nil || cash == nil {
		return nil
	}
	return ptrFloat(*debt - *cash)
}
