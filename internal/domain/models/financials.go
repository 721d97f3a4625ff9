package models

import (
	"sort"
	"strings"
	"time"
)

// PeriodType distinguishes annual reports from sub-annual ones.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
)

// ParsePeriodType accepts the spellings used by the upstream APIs
// ("annual", "FY", "quarter", "quarterly", "Q") and defaults to annual.
func ParsePeriodType(s string) (PeriodType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "annual", "fy", "year", "yearly":
		return PeriodAnnual, true
	case "quarter", "quarterly", "q":
		return PeriodQuarterly, true
	default:
		return PeriodAnnual, false
	}
}

// Ticker is an upper-case symbol used as the key for every lookup.
type Ticker string

// NormalizeTicker trims and upper-cases a raw symbol parameter.
func NormalizeTicker(raw string) Ticker {
	return Ticker(strings.ToUpper(strings.TrimSpace(raw)))
}

// FinancialPeriodRecord is one reporting period mapped onto the canonical field set.
//
// Every numeric field is optional: nil means the provider did not report it,
// which is never the same thing as zero.
type FinancialPeriodRecord struct {
	PeriodEndDate      time.Time
	PeriodType         PeriodType
	EPS                *float64
	Revenue            *float64
	CostOfRevenue      *float64
	GrossProfit        *float64
	NetIncome          *float64
	OperatingIncome    *float64
	OperatingCashFlow  *float64
	CapitalExpenditure *float64
	FreeCashFlow       *float64
	SharesOutstanding  *float64
}

// Year returns the calendar year of the period end date.
func (r FinancialPeriodRecord) Year() int {
	return r.PeriodEndDate.Year()
}

// SortPeriods orders records from oldest to latest period end.
func SortPeriods(records []FinancialPeriodRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PeriodEndDate.Before(records[j].PeriodEndDate)
	})
}

// DividendEvent is a single cash dividend with a strictly positive amount.
type DividendEvent struct {
	ExDate         time.Time
	AmountPerShare float64
}

// SortDividends orders events from oldest to latest ex-date.
func SortDividends(events []DividendEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].ExDate.Before(events[j].ExDate)
	})
}

// AnalystEstimate is one fiscal-year consensus row.
type AnalystEstimate struct {
	Date           time.Time
	EPSAvg         *float64
	EPSHigh        *float64
	EPSLow         *float64
	RevenueAvg     *float64
	NumberAnalysts *float64
}

// Year returns the fiscal year the estimate targets.
func (e AnalystEstimate) Year() int {
	return e.Date.Year()
}

// SortEstimates orders estimates from nearest to farthest fiscal date.
func SortEstimates(estimates []AnalystEstimate) {
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].Date.Before(estimates[j].Date)
	})
}
