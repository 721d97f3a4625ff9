package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/guttosm/stockscope/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fmpIncomeBody = `[
	{"date":"2024-09-28","period":"FY","revenue":391035000000,"costOfRevenue":210352000000,"netIncome":93736000000,"operatingIncome":123216000000,"eps":6.11,"epsDiluted":6.08,"weightedAverageShsOutDil":15408095000},
	{"date":"2023-09-30","period":"FY","revenue":383285000000,"costOfRevenue":214137000000,"netIncome":96995000000,"operatingIncome":114301000000,"eps":6.16},
	{"date":"2022-09-24","period":"FY","revenue":394328000000,"costOfRevenue":223546000000,"netIncome":99803000000,"operatingIncome":119437000000,"eps":6.15},
	{"date":"2021-09-25","period":"FY","revenue":365817000000,"costOfRevenue":212981000000,"netIncome":94680000000,"operatingIncome":108949000000,"eps":5.67},
	{"date":"2020-09-26","period":"FY","revenue":274515000000,"costOfRevenue":169559000000,"netIncome":57411000000,"operatingIncome":66288000000,"eps":3.31}
]`

func TestGetEPSGrowth_AnalystScenarios(t *testing.T) {
	cases := []struct {
		name        string
		setup       func(t *testing.T, g *fakeGatherer)
		wantAnalyst bool
	}{
		{
			name: "analyst estimates forbidden",
			setup: func(t *testing.T, g *fakeGatherer) {
				g.fail(provider.FMP, "analyst-estimates", provider.Forbidden, 403)
			},
		},
		{
			name: "analyst estimates empty object",
			setup: func(t *testing.T, g *fakeGatherer) {
				g.ok(t, provider.FMP, "analyst-estimates", `{}`)
			},
		},
		{
			name: "analyst estimates present",
			setup: func(t *testing.T, g *fakeGatherer) {
				g.ok(t, provider.FMP, "analyst-estimates", `[
					{"symbol":"AAPL","date":"2026-09-27","epsAvg":8.1,"epsHigh":8.9,"epsLow":7.4,"numAnalystsEps":30},
					{"symbol":"AAPL","date":"2025-09-27","epsAvg":7.2,"numAnalystsEps":32}
				]`)
			},
			wantAnalyst: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newFakeGatherer().ok(t, provider.FMP, "income-statement", fmpIncomeBody)
			tc.setup(t, g)
			svc := NewEarningsService(g, fixedNow(2025, time.March, 1))

			resp, err := svc.GetEPSGrowth(context.Background(), "aapl")
			require.NoError(t, err)

			assert.Equal(t, "AAPL", resp.Symbol)
			assert.Equal(t, provider.FMP, resp.Source)
			require.Len(t, resp.EPSData, 5)
			assert.Equal(t, 2020, resp.EPSData[0].Year)
			assert.InDelta(t, 6.11, *resp.EPSData[4].EPS, 1e-9)

			require.NotNil(t, resp.HistoricalGrowthRate)
			want := math.Pow(6.11/3.31, 1.0/4) - 1
			assert.InDelta(t, want, *resp.HistoricalGrowthRate, 1e-9)
			assert.Equal(t, 4, *resp.HistoricalBasisYears)

			if !tc.wantAnalyst {
				assert.Nil(t, resp.AnalystGrowthRate)
				assert.Nil(t, resp.AnalystData)
				return
			}
			require.Len(t, resp.AnalystData, 2)
			assert.Equal(t, 2025, resp.AnalystData[0].Year)
			require.NotNil(t, resp.AnalystGrowthRate)
			assert.InDelta(t, math.Pow(8.1/6.11, 0.5)-1, *resp.AnalystGrowthRate, 1e-9)
			assert.Equal(t, 2, *resp.AnalystBasisYears)
		})
	}
}

func TestGetEPSGrowth_FallsBackToAlphaVantageEarnings(t *testing.T) {
	g := newFakeGatherer().
		fail(provider.FMP, "income-statement", provider.RateLimited, 429).
		ok(t, provider.Finnhub, "financials-reported", `{"data":[]}`).
		ok(t, provider.AlphaVantage, "earnings", `{"symbol":"IBM","annualEarnings":[
			{"fiscalDateEnding":"2024-12-31","reportedEPS":"10.33"},
			{"fiscalDateEnding":"2023-12-31","reportedEPS":"9.62"}
		]}`)
	svc := NewEarningsService(g, nil)

	resp, err := svc.GetEPSGrowth(context.Background(), "IBM")
	require.NoError(t, err)
	assert.Equal(t, provider.AlphaVantage, resp.Source)
	require.Len(t, resp.EPSData, 2)
	require.NotNil(t, resp.HistoricalGrowthRate)
	assert.InDelta(t, 10.33/9.62-1, *resp.HistoricalGrowthRate, 1e-9)
}

func TestGetEPSGrowth_NoSourceHasEPS(t *testing.T) {
	g := newFakeGatherer().
		ok(t, provider.FMP, "income-statement", `[]`).
		fail(provider.Finnhub, "financials-reported", provider.Timeout, 0)
	svc := NewEarningsService(g, nil)

	_, err := svc.GetEPSGrowth(context.Background(), "NONE")
	var ue *UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Contains(t, ue.Details, "FMP: No EPS data in response")
	assert.Contains(t, ue.Details, "Finnhub: Request timed out")
	assert.Contains(t, ue.Details, "Alpha Vantage: Not found")
}

func TestGetEPSGrowth_MissingSymbol(t *testing.T) {
	g := newFakeGatherer()
	svc := NewEarningsService(g, nil)
	_, err := svc.GetEPSGrowth(context.Background(), "")
	var me *MissingParameterError
	require.True(t, errors.As(err, &me))
	assert.Empty(t, g.calls)
}
