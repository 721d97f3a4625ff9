package calc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/stockscope/internal/domain/models"
)

// WindowYears is the trailing history kept once a series spans more than
// MaxHistoryYears distinct years.
const (
	WindowYears     = 6
	MaxHistoryYears = 7
)

// AggregateDividends sums event amounts per calendar year of the ex-date and
// fills the gaps between the first and last year with 0.
//
// Sums are computed in decimal so four payments of 0.1 total exactly 0.4.
func AggregateDividends(events []models.DividendEvent) models.AnnualAggregate {
	sums := make(map[int]decimal.Decimal)
	for _, e := range events {
		if e.AmountPerShare <= 0 {
			continue
		}
		y := e.ExDate.Year()
		sums[y] = sums[y].Add(decimal.NewFromFloat(e.AmountPerShare))
	}
	return FillGaps(fromDecimals(sums))
}

// AggregateByYear sums a per-record value by calendar year of the period end.
// Records without the value are skipped; gaps are filled with 0.
func AggregateByYear(records []models.FinancialPeriodRecord, value func(models.FinancialPeriodRecord) *float64) models.AnnualAggregate {
	sums := make(map[int]decimal.Decimal)
	for _, r := range records {
		v := value(r)
		if v == nil {
			continue
		}
		y := r.Year()
		sums[y] = sums[y].Add(decimal.NewFromFloat(*v))
	}
	return FillGaps(fromDecimals(sums))
}

func fromDecimals(sums map[int]decimal.Decimal) models.AnnualAggregate {
	out := make(models.AnnualAggregate, len(sums))
	for y, d := range sums {
		out[y] = d.InexactFloat64()
	}
	return out
}

// FillGaps returns a copy with every year strictly between the minimum and
// maximum present, missing years set to 0. It is idempotent.
func FillGaps(agg models.AnnualAggregate) models.AnnualAggregate {
	out := agg.Clone()
	minYear, maxYear, ok := agg.Bounds()
	if !ok {
		return out
	}
	for y := minYear + 1; y < maxYear; y++ {
		if _, present := out[y]; !present {
			out[y] = 0
		}
	}
	return out
}

// TrailingWindow drops events older than Jan 1 of (now.Year() - WindowYears)
// when the series spans more than MaxHistoryYears distinct years. Shorter
// series are returned unchanged.
func TrailingWindow(events []models.DividendEvent, now time.Time) []models.DividendEvent {
	years := make(map[int]struct{})
	for _, e := range events {
		years[e.ExDate.Year()] = struct{}{}
	}
	if len(years) <= MaxHistoryYears {
		return events
	}

	cutoff := time.Date(now.Year()-WindowYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DividendEvent, 0, len(events))
	for _, e := range events {
		if !e.ExDate.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Projection describes the in-progress current year of an aggregate.
type Projection struct {
	Year          int
	Partial       float64
	Value         float64
	AverageGrowth float64
	Projected     bool
}

// ProjectCurrentYear estimates the full-year total of the current year.
//
// Preconditions: the aggregate contains now's year, spans at least 6 distinct
// years and has at least 5 complete years before the current one. The
// average year-over-year growth of the last 5 complete years (4 rates; a rate
// whose base year is 0 is skipped) is applied to the last complete year.
// When a precondition fails the partial total is returned unprojected.
func ProjectCurrentYear(agg models.AnnualAggregate, now time.Time) Projection {
	current := now.Year()
	partial, ok := agg[current]
	p := Projection{Year: current, Partial: partial, Value: partial}
	if !ok {
		return p
	}

	var complete []int
	for _, y := range agg.Years() {
		if y < current {
			complete = append(complete, y)
		}
	}
	if len(agg) < 6 || len(complete) < 5 {
		return p
	}
	window := complete[len(complete)-5:]

	var sum float64
	var n int
	for i := 1; i < len(window); i++ {
		prev := agg[window[i-1]]
		if prev == 0 {
			continue
		}
		sum += (agg[window[i]] - prev) / prev
		n++
	}
	if n == 0 {
		return p
	}

	p.AverageGrowth = sum / float64(n)
	p.Value = agg[window[len(window)-1]] * (1 + p.AverageGrowth)
	p.Projected = true
	return p
}

// LatestByYear keeps, for each calendar year, the value of the latest record
// ending in that year. It is the annual counterpart of AggregateByYear for
// series that are already annual; gaps are filled with 0.
func LatestByYear(records []models.FinancialPeriodRecord, value func(models.FinancialPeriodRecord) *float64) models.AnnualAggregate {
	out := make(models.AnnualAggregate)
	latest := make(map[int]time.Time)
	for _, r := range records {
		v := value(r)
		if v == nil {
			continue
		}
		y := r.Year()
		if seen, ok := latest[y]; ok && !r.PeriodEndDate.After(seen) {
			continue
		}
		latest[y] = r.PeriodEndDate
		out[y] = *v
	}
	return FillGaps(out)
}
