package calc

import (
	"math"

	"github.com/guttosm/stockscope/internal/domain/models"
)

// Margin returns numerator / revenue. Both must be present and revenue > 0.
func Margin(numerator, revenue *float64) *float64 {
	if numerator == nil || revenue == nil || *revenue <= 0 {
		return nil
	}
	m := *numerator / *revenue
	return &m
}

// GrossMargin is (revenue - costOfRevenue) / revenue. A reported gross
// profit alone is not enough.
func GrossMargin(r models.FinancialPeriodRecord) *float64 {
	if r.Revenue == nil || r.CostOfRevenue == nil {
		return nil
	}
	gp := *r.Revenue - *r.CostOfRevenue
	return Margin(&gp, r.Revenue)
}

// NetMargin is netIncome / revenue.
func NetMargin(r models.FinancialPeriodRecord) *float64 {
	return Margin(r.NetIncome, r.Revenue)
}

// OperatingMargin is operatingIncome / revenue.
func OperatingMargin(r models.FinancialPeriodRecord) *float64 {
	return Margin(r.OperatingIncome, r.Revenue)
}

// PE is price / eps; requires a positive price and eps > 0.
func PE(price, eps *float64) *float64 {
	if price == nil || eps == nil || *price <= 0 || *eps <= 0 {
		return nil
	}
	pe := *price / *eps
	return &pe
}

// DividendYield is annualDividend / price; requires price > 0.
func DividendYield(annualDividend, price *float64) *float64 {
	if annualDividend == nil || price == nil || *price <= 0 || *annualDividend < 0 {
		return nil
	}
	y := *annualDividend / *price
	return &y
}

// Forward P/E sources, in priority order.
const (
	ForwardPEAnalyst    = "analyst"
	ForwardPEMetrics    = "metrics"
	ForwardPEProjection = "projection"
)

// ForwardPEInput gathers every source a forward P/E may come from.
type ForwardPEInput struct {
	Price      *float64
	TargetYear int
	Estimates  []models.AnalystEstimate
	// MetricsForwardPE is a forward P/E reported by a metrics API.
	MetricsForwardPE *float64
	// AnnualEPS is the historical annual EPS; its last year is the base of the projection.
	AnnualEPS models.AnnualAggregate
}

// ForwardPE resolves a forward P/E for the target fiscal year.
//
// Priority, first non-nil wins:
//  1. price / analyst EPS estimate for TargetYear.
//  2. the metrics-API forward P/E.
//  3. price / EPS projected with the trailing 3-year EPS CAGR, compounded
//     1 or 2 years from the last reported year.
//
// Returns the value and the name of the source used ("" when nil).
func ForwardPE(in ForwardPEInput) (*float64, string) {
	for _, e := range in.Estimates {
		if e.Year() == in.TargetYear {
			if pe := PE(in.Price, e.EPSAvg); pe != nil {
				return pe, ForwardPEAnalyst
			}
			break
		}
	}

	if in.MetricsForwardPE != nil && *in.MetricsForwardPE > 0 {
		v := *in.MetricsForwardPE
		return &v, ForwardPEMetrics
	}

	years := in.AnnualEPS.Years()
	if len(years) < 4 {
		return nil, ""
	}
	last := years[len(years)-1]
	ahead := in.TargetYear - last
	if ahead < 1 || ahead > 2 {
		return nil, ""
	}
	growth := CAGR(in.AnnualEPS[last-3], in.AnnualEPS[last], 3)
	if growth == nil {
		return nil, ""
	}
	projected := in.AnnualEPS[last] * math.Pow(1+*growth, float64(ahead))
	if pe := PE(in.Price, &projected); pe != nil {
		return pe, ForwardPEProjection
	}
	return nil, ""
}
