package normalize

import (
	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/provider"
)

// IncomeHints returns where each provider keeps income-statement style
// records for the requested period type.
func IncomeHints(providerName string, pt models.PeriodType) Hints {
	switch providerName {
	case provider.AlphaVantage:
		if pt == models.PeriodQuarterly {
			return Hints{Paths: []string{PathQuarterlyReports}, PeriodType: pt}
		}
		return Hints{Paths: []string{PathAnnualReports}, PeriodType: pt}
	case provider.Finnhub:
		return Hints{Reported: true, PeriodType: pt}
	default:
		return Hints{Paths: []string{PathRoot, PathHistorical}, PeriodType: pt}
	}
}

// EarningsHints locates Alpha Vantage EARNINGS rows.
func EarningsHints(pt models.PeriodType) Hints {
	if pt == models.PeriodQuarterly {
		return Hints{Paths: []string{PathQuarterlyEarnings}, PeriodType: pt}
	}
	return Hints{Paths: []string{PathAnnualEarnings}, PeriodType: pt}
}

// DividendPaths returns the record locations of a provider's dividend payload.
func DividendPaths(providerName string) []string {
	switch providerName {
	case provider.AlphaVantage:
		return []string{PathData}
	case provider.FMP:
		return []string{PathRoot, PathHistorical}
	default:
		return []string{PathRoot, PathData}
	}
}

// Price paths per provider quote payload.
var PricePaths = map[string][]string{
	provider.FMP:          {"$[0].price", "$.price"},
	provider.Finnhub:      {"$.c"},
	provider.AlphaVantage: {`$["Global Quote"]["05. price"]`},
}

// Quote extracts a positive last price from a quote payload.
func Quote(providerName string, payload any) *float64 {
	p := Number(payload, PricePaths[providerName]...)
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}
