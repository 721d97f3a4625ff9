package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/stockscope/internal/domain/models"
	"github.com/guttosm/stockscope/internal/logger"
	"github.com/guttosm/stockscope/internal/provider"
)

// serviceLog is the logger tagged component=service.
func serviceLog() *zerolog.Logger {
	l := logger.Component("service")
	return &l
}

// failureSet accumulates the classified failures of one request, in provider
// order, for the error body of an unavailable response.
type failureSet struct {
	failures []provider.Failure
}

// result records a failed result; successful results are ignored.
func (f *failureSet) result(r provider.Result) {
	if r.Failure != nil {
		f.failures = append(f.failures, *r.Failure)
	}
}

// noData records a 2xx response that normalized to nothing.
func (f *failureSet) noData(r provider.Result, msg string) {
	f.failures = append(f.failures, provider.NoDataFailure(r.Provider, r.Endpoint, msg))
}

// count returns the number of recorded failures.
func (f *failureSet) count() int {
	return len(f.failures)
}

// reasons renders one line per failure, dropping exact duplicates.
func (f *failureSet) reasons() []string {
	seen := make(map[string]bool, len(f.failures))
	out := make([]string, 0, len(f.failures))
	for _, fl := range f.failures {
		r := fl.Reason()
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// unavailable builds the 404 error of a request where nothing usable came back.
func (f *failureSet) unavailable(msg string) *UnavailableError {
	return &UnavailableError{Message: msg, Details: f.reasons()}
}

// clock returns now or time.Now when nil.
func clock(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// lastYearBefore returns the latest year of agg strictly before limit.
func lastYearBefore(agg models.AnnualAggregate, limit int) (int, bool) {
	years := agg.Years()
	for i := len(years) - 1; i >= 0; i-- {
		if years[i] < limit {
			return years[i], true
		}
	}
	return 0, false
}

// quoteCalls are the price sources in priority order.
func quoteCalls(symbol string) []provider.Call {
	return []provider.Call{
		provider.FMPQuote(symbol),
		provider.FinnhubQuote(symbol),
		provider.AVGlobalQuote(symbol),
	}
}
