package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/stockscope/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quarterlyDividends renders an FMP dividends body with four payments
// of 0.75, 0.80, 0.85 and 0.95 per year.
func quarterlyDividends(years ...int) string {
	amounts := []float64{0.75, 0.80, 0.85, 0.95}
	var rows []string
	for _, y := range years {
		for q, a := range amounts {
			rows = append(rows, fmt.Sprintf(`{"date":"%d-%02d-15","adjDividend":%.2f,"dividend":%.2f}`, y, 3*q+2, a, a))
		}
	}
	return "[" + strings.Join(rows, ",") + "]"
}

func TestGetDividends_FourYearsOfQuarterlyPayments(t *testing.T) {
	g := newFakeGatherer().ok(t, provider.FMP, "dividends", quarterlyDividends(2021, 2022, 2023, 2024))
	svc := NewDividendService(g, fixedNow(2025, time.January, 10))

	resp, err := svc.GetDividends(context.Background(), " ko ")
	require.NoError(t, err)

	assert.Equal(t, "KO", resp.Symbol)
	assert.Equal(t, provider.FMP, resp.Source)
	assert.Len(t, resp.HistoricalDividends, 16)
	require.Len(t, resp.AnnualDividends, 4)
	for _, a := range resp.AnnualDividends {
		assert.InDelta(t, 3.35, a.Total, 1e-9, "year %d", a.Year)
		assert.False(t, a.Projected)
	}
	require.NotNil(t, resp.DividendGrowthRate)
	assert.InDelta(t, 0, *resp.DividendGrowthRate, 1e-9)
	assert.Equal(t, 3, *resp.GrowthBasisYears)
	require.NotNil(t, resp.LatestAnnualDividend)
	assert.InDelta(t, 3.35, *resp.LatestAnnualDividend, 1e-9)
	assert.Nil(t, resp.CurrentYearPartial)
	assert.Nil(t, resp.CurrentYearProjected)
}

func TestGetDividends_EightYearsAreTrimmed(t *testing.T) {
	years := []int{2018, 2019, 2020, 2021, 2022, 2023, 2024, 2025}
	g := newFakeGatherer().ok(t, provider.FMP, "dividends", quarterlyDividends(years...))
	svc := NewDividendService(g, fixedNow(2025, time.December, 20))

	resp, err := svc.GetDividends(context.Background(), "KO")
	require.NoError(t, err)

	assert.Less(t, len(resp.HistoricalDividends), 32)
	assert.GreaterOrEqual(t, len(resp.AnnualDividends), 6)
	assert.Less(t, len(resp.AnnualDividends), 8)
}

func TestGetDividends_CurrentYearProjection(t *testing.T) {
	// six complete years plus two payments of the current year
	body := quarterlyDividends(2019, 2020, 2021, 2022, 2023, 2024)
	body = strings.TrimSuffix(body, "]") + `,{"date":"2025-02-15","adjDividend":0.75},{"date":"2025-05-15","adjDividend":0.80}]`
	g := newFakeGatherer().ok(t, provider.FMP, "dividends", body)
	svc := NewDividendService(g, fixedNow(2025, time.June, 30))

	resp, err := svc.GetDividends(context.Background(), "KO")
	require.NoError(t, err)

	require.NotNil(t, resp.CurrentYearPartial)
	assert.InDelta(t, 1.55, *resp.CurrentYearPartial, 1e-9)
	require.NotNil(t, resp.CurrentYearProjected)
	assert.InDelta(t, 3.35, *resp.CurrentYearProjected, 1e-9)

	last := resp.AnnualDividends[len(resp.AnnualDividends)-1]
	assert.Equal(t, 2025, last.Year)
	assert.True(t, last.Projected)

	// growth is measured on complete years only
	require.NotNil(t, resp.DividendGrowthRate)
	assert.InDelta(t, 0, *resp.DividendGrowthRate, 1e-9)
}

func TestGetDividends_FallsBackInProviderOrder(t *testing.T) {
	g := newFakeGatherer().
		fail(provider.FMP, "dividends", provider.RateLimited, 429).
		ok(t, provider.Finnhub, "dividends", `[{"exDate":"2023-03-01","amount":0.5},{"exDate":"2024-03-01","amount":0.6}]`).
		ok(t, provider.AlphaVantage, "dividends", `{"data":[{"ex_dividend_date":"2024-03-01","amount":"9.9"}]}`)
	svc := NewDividendService(g, fixedNow(2025, time.January, 10))

	resp, err := svc.GetDividends(context.Background(), "KO")
	require.NoError(t, err)
	assert.Equal(t, provider.Finnhub, resp.Source)
	assert.Len(t, resp.HistoricalDividends, 2)
	require.NotNil(t, resp.DividendGrowthRate)
	assert.InDelta(t, 0.2, *resp.DividendGrowthRate, 1e-9)
}

func TestGetDividends_StaleHistoryFallsThrough(t *testing.T) {
	stale := quarterlyDividends(2008, 2009, 2010, 2011, 2012, 2013, 2014, 2015)
	t.Run("next provider wins", func(t *testing.T) {
		g := newFakeGatherer().
			ok(t, provider.FMP, "dividends", stale).
			ok(t, provider.Finnhub, "dividends", `[{"exDate":"2023-03-01","amount":0.5},{"exDate":"2024-03-01","amount":0.6}]`)
		svc := NewDividendService(g, fixedNow(2025, time.June, 1))

		resp, err := svc.GetDividends(context.Background(), "KO")
		require.NoError(t, err)
		assert.Equal(t, provider.Finnhub, resp.Source)
		assert.Len(t, resp.HistoricalDividends, 2)
	})

	t.Run("nothing recent anywhere", func(t *testing.T) {
		g := newFakeGatherer().ok(t, provider.FMP, "dividends", stale)
		svc := NewDividendService(g, fixedNow(2025, time.June, 1))

		_, err := svc.GetDividends(context.Background(), "KO")
		var ue *UnavailableError
		require.True(t, errors.As(err, &ue), "got %v", err)
		assert.Equal(t, []string{
			"FMP: No dividend data in response",
			"Finnhub: Not found",
			"Alpha Vantage: Not found",
		}, ue.Details)
	})
}

func TestGetDividends_AllProvidersFail(t *testing.T) {
	g := newFakeGatherer().
		fail(provider.FMP, "dividends", provider.RateLimited, 429).
		ok(t, provider.Finnhub, "dividends", `[]`).
		fail(provider.AlphaVantage, "dividends", provider.Forbidden, 403)
	svc := NewDividendService(g, nil)

	_, err := svc.GetDividends(context.Background(), "ZZZZ")
	var ue *UnavailableError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, "No dividend data available for ZZZZ", ue.Message)
	assert.Equal(t, []string{
		"FMP: Rate limit exceeded",
		"Finnhub: No dividend data in response",
		"Alpha Vantage: Access forbidden",
	}, ue.Details)
}

func TestGetDividends_MissingSymbol(t *testing.T) {
	svc := NewDividendService(newFakeGatherer(), nil)
	_, err := svc.GetDividends(context.Background(), "  ")

	var me *MissingParameterError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "Stock symbol is required", me.Error())
}
