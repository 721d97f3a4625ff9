// Package calc holds the pure derived-metrics functions: growth rates,
// annual aggregation, projections, ratios and discounted-cash-flow models.
//
// Every function returns nil (or a zero result with ok=false) when a
// precondition is not met; none of them panic or perform I/O.
package calc

import (
	"math"

	"github.com/guttosm/stockscope/internal/domain/models"
)

// CAGR returns the compound annual growth rate from v0 to v1 over n periods.
//
// Behavior:
//   - nil when n < 1 or either value is exactly 0.
//   - the magnitude rate is (|v1|/|v0|)^(1/n) - 1.
//   - both positive: the magnitude rate as is.
//   - both negative: negated, so a narrowing loss is positive growth.
//   - sign change: the magnitude rate with the sign of (v1 - v0), so a
//     turnaround to profit is positive and a fall into loss is negative.
func CAGR(v0, v1 float64, n int) *float64 {
	if n < 1 || v0 == 0 || v1 == 0 {
		return nil
	}
	rate := math.Pow(math.Abs(v1)/math.Abs(v0), 1/float64(n)) - 1

	switch {
	case v0 > 0 && v1 > 0:
	case v0 < 0 && v1 < 0:
		rate = -rate
	case v0 < 0:
		rate = math.Abs(rate)
	default:
		rate = -math.Abs(rate)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

// SeriesCAGR computes CAGR between the first and last value of an ordered
// series; n is the number of intervals (len-1).
func SeriesCAGR(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	return CAGR(values[0], values[len(values)-1], len(values)-1)
}

// AggregateGrowth computes a CAGR estimate over the years of an aggregate,
// ignoring any year >= excludeFrom (pass 0 to keep every year). At most the
// last maxYears years are used when maxYears > 0.
func AggregateGrowth(agg models.AnnualAggregate, excludeFrom, maxYears int) *models.GrowthEstimate {
	years := agg.Years()
	if excludeFrom > 0 {
		kept := years[:0:0]
		for _, y := range years {
			if y < excludeFrom {
				kept = append(kept, y)
			}
		}
		years = kept
	}
	if maxYears > 0 && len(years) > maxYears {
		years = years[len(years)-maxYears:]
	}
	if len(years) < 2 {
		return nil
	}

	first, last := years[0], years[len(years)-1]
	rate := CAGR(agg[first], agg[last], last-first)
	if rate == nil {
		return nil
	}
	return &models.GrowthEstimate{Rate: *rate, BasisYears: last - first, Method: models.GrowthCAGR}
}

// AnalystGrowth computes growth from the latest actual annual value to the
// farthest estimate beyond it; n is the fiscal-year distance.
func AnalystGrowth(actualYear int, actual float64, estimates []models.AnalystEstimate) *models.GrowthEstimate {
	var target *models.AnalystEstimate
	for i := range estimates {
		e := estimates[i]
		if e.EPSAvg == nil || e.Year() <= actualYear {
			continue
		}
		if target == nil || e.Year() > target.Year() {
			target = &estimates[i]
		}
	}
	if target == nil {
		return nil
	}
	n := target.Year() - actualYear
	rate := CAGR(actual, *target.EPSAvg, n)
	if rate == nil {
		return nil
	}
	return &models.GrowthEstimate{Rate: *rate, BasisYears: n, Method: models.GrowthAnalyst}
}
