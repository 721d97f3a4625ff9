package normalize

import (
	"strings"
	"time"

	"github.com/guttosm/stockscope/internal/domain/models"
)

// Hints tells the normalizer where a provider keeps its records and which
// period type to assume when a record does not state one.
type Hints struct {
	Paths      []string
	PeriodType models.PeriodType
	Reported   bool // payload is a reported-financials document (see ReportedRows)
}

// Rows extracts the record rows of a payload according to the hints.
func (h Hints) Rows(payload any) []Row {
	if h.Reported {
		return ReportedRows(payload)
	}
	return Records(payload, h.Paths...)
}

// Resolve applies the alias table of one field to a row: the first key alias
// with a numeric value wins, then the first matching label.
func Resolve(row Row, field Field) *float64 {
	rule, ok := FieldAliases[field]
	if !ok {
		return nil
	}
	if f := firstNumber(row.Fields, rule.Keys); f != nil {
		return f
	}
	if len(rule.Labels) == 0 {
		return nil
	}
	for _, item := range row.Labels {
		label := strings.ToLower(item.Label)
		if !containsAny(label, rule.Labels) || containsAny(label, rule.Exclude) {
			continue
		}
		if f := Float(item.Value); f != nil {
			return f
		}
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Period maps one row onto a FinancialPeriodRecord.
//
// Returns false when the row has no parseable period end date or carries no
// canonical value at all.
func Period(row Row, fallback models.PeriodType) (models.FinancialPeriodRecord, bool) {
	end, ok := firstDate(row.Fields, PeriodDateAliases)
	if !ok {
		return models.FinancialPeriodRecord{}, false
	}

	rec := models.FinancialPeriodRecord{
		PeriodEndDate:      end,
		PeriodType:         periodTypeOf(row, fallback),
		EPS:                Resolve(row, FieldEPS),
		Revenue:            Resolve(row, FieldRevenue),
		CostOfRevenue:      Resolve(row, FieldCostOfRevenue),
		GrossProfit:        Resolve(row, FieldGrossProfit),
		NetIncome:          Resolve(row, FieldNetIncome),
		OperatingIncome:    Resolve(row, FieldOperatingIncome),
		OperatingCashFlow:  Resolve(row, FieldOperatingCashFlow),
		CapitalExpenditure: Resolve(row, FieldCapitalExpenditure),
		FreeCashFlow:       Resolve(row, FieldFreeCashFlow),
		SharesOutstanding:  Resolve(row, FieldSharesOutstanding),
	}

	if rec.EPS == nil && rec.Revenue == nil && rec.CostOfRevenue == nil && rec.GrossProfit == nil &&
		rec.NetIncome == nil && rec.OperatingIncome == nil && rec.OperatingCashFlow == nil &&
		rec.CapitalExpenditure == nil && rec.FreeCashFlow == nil {
		return models.FinancialPeriodRecord{}, false
	}
	return rec, true
}

// periodTypeOf reads "period" ("FY", "Q1".."Q4") or Finnhub's numeric
// "quarter" (0 = annual) before falling back to the hint.
func periodTypeOf(row Row, fallback models.PeriodType) models.PeriodType {
	if p := strings.ToLower(firstString(row.Fields, "period")); p != "" {
		switch {
		case p == "fy" || p == "annual":
			return models.PeriodAnnual
		case strings.HasPrefix(p, "q"):
			return models.PeriodQuarterly
		}
	}
	if q, ok := ParseNumber(row.Fields["quarter"]); ok {
		if q == 0 {
			return models.PeriodAnnual
		}
		return models.PeriodQuarterly
	}
	if fallback == "" {
		return models.PeriodAnnual
	}
	return fallback
}

// Periods normalizes a payload into period records ordered by end date.
//
// When the same period end date appears more than once, the first occurrence
// in provider order is kept and later ones are dropped.
func Periods(payload any, hints Hints) []models.FinancialPeriodRecord {
	rows := hints.Rows(payload)
	seen := make(map[time.Time]bool, len(rows))
	out := make([]models.FinancialPeriodRecord, 0, len(rows))
	for _, row := range rows {
		rec, ok := Period(row, hints.PeriodType)
		if !ok || seen[rec.PeriodEndDate] {
			continue
		}
		seen[rec.PeriodEndDate] = true
		out = append(out, rec)
	}
	models.SortPeriods(out)
	return out
}

// FilterPeriodType keeps only records of the given type.
func FilterPeriodType(records []models.FinancialPeriodRecord, pt models.PeriodType) []models.FinancialPeriodRecord {
	out := make([]models.FinancialPeriodRecord, 0, len(records))
	for _, r := range records {
		if r.PeriodType == pt {
			out = append(out, r)
		}
	}
	return out
}

// Dividend maps one row onto a DividendEvent. Rows without an ex-date or
// with a non-positive amount are rejected.
func Dividend(row Row) (models.DividendEvent, bool) {
	ex, ok := firstDate(row.Fields, ExDateAliases)
	if !ok {
		return models.DividendEvent{}, false
	}
	amount := firstNumber(row.Fields, DividendAmountAliases)
	if amount == nil || *amount <= 0 {
		return models.DividendEvent{}, false
	}
	return models.DividendEvent{ExDate: ex, AmountPerShare: *amount}, true
}

// Dividends normalizes a payload into dividend events ordered by ex-date.
// Repeated ex-dates keep their first occurrence.
func Dividends(payload any, paths ...string) []models.DividendEvent {
	rows := Records(payload, paths...)
	seen := make(map[time.Time]bool, len(rows))
	out := make([]models.DividendEvent, 0, len(rows))
	for _, row := range rows {
		ev, ok := Dividend(row)
		if !ok || seen[ev.ExDate] {
			continue
		}
		seen[ev.ExDate] = true
		out = append(out, ev)
	}
	models.SortDividends(out)
	return out
}

// Estimates normalizes analyst consensus rows ordered by fiscal date.
// Rows without a date or without any estimate are dropped.
func Estimates(payload any, paths ...string) []models.AnalystEstimate {
	rows := Records(payload, paths...)
	seen := make(map[time.Time]bool, len(rows))
	out := make([]models.AnalystEstimate, 0, len(rows))
	for _, row := range rows {
		d, ok := firstDate(row.Fields, EstimateDateAliases)
		if !ok || seen[d] {
			continue
		}
		est := models.AnalystEstimate{
			Date:           d,
			EPSAvg:         firstNumber(row.Fields, EstimateEPSAvgAliases),
			EPSHigh:        firstNumber(row.Fields, EstimateEPSHighAliases),
			EPSLow:         firstNumber(row.Fields, EstimateEPSLowAliases),
			RevenueAvg:     firstNumber(row.Fields, EstimateRevenueAliases),
			NumberAnalysts: firstNumber(row.Fields, EstimateAnalystsAliases),
		}
		if est.EPSAvg == nil && est.RevenueAvg == nil {
			continue
		}
		seen[d] = true
		out = append(out, est)
	}
	models.SortEstimates(out)
	return out
}
