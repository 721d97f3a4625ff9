package models

import "sort"

// AnnualAggregate maps a calendar year to the summed value for that year.
//
// Once filled, every year between the minimum and maximum key is present;
// a 0 entry means "nothing paid that year", not missing data.
type AnnualAggregate map[int]float64

// Years returns the keys in ascending order.
func (a AnnualAggregate) Years() []int {
	years := make([]int, 0, len(a))
	for y := range a {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Bounds returns the minimum and maximum year; ok is false when empty.
func (a AnnualAggregate) Bounds() (minYear, maxYear int, ok bool) {
	if len(a) == 0 {
		return 0, 0, false
	}
	first := true
	for y := range a {
		if first || y < minYear {
			minYear = y
		}
		if first || y > maxYear {
			maxYear = y
		}
		first = false
	}
	return minYear, maxYear, true
}

// Clone returns an independent copy.
func (a AnnualAggregate) Clone() AnnualAggregate {
	out := make(AnnualAggregate, len(a))
	for y, v := range a {
		out[y] = v
	}
	return out
}

// GrowthMethod records how a growth estimate was derived.
type GrowthMethod string

const (
	GrowthCAGR    GrowthMethod = "cagr"
	GrowthAnalyst GrowthMethod = "analyst"
)

// GrowthEstimate is a per-request growth rate with the number of periods it spans.
type GrowthEstimate struct {
	Rate       float64      `json:"rate"`
	BasisYears int          `json:"basisYears"`
	Method     GrowthMethod `json:"method"`
}
