package provider

import (
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/stockscope/config"
	"github.com/guttosm/stockscope/internal/domain/models"
)

// browserUserAgent is sent to CNN, which rejects requests without one.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Sources builds the registry for every configured upstream API.
func Sources(cfg config.ProvidersConfig) []Source {
	return []Source{
		{Name: FMP, BaseURL: cfg.FMP.BaseURL, APIKey: cfg.FMP.APIKey, KeyParam: "apikey", Inspect: inspectFMP},
		{Name: Finnhub, BaseURL: cfg.Finnhub.BaseURL, APIKey: cfg.Finnhub.APIKey, KeyParam: "token", Inspect: inspectFinnhub},
		{Name: AlphaVantage, BaseURL: cfg.AlphaVantage.BaseURL, APIKey: cfg.AlphaVantage.APIKey, KeyParam: "apikey", Inspect: inspectAlphaVantage},
		{Name: CNN, BaseURL: cfg.CNN.BaseURL, Headers: map[string]string{"User-Agent": browserUserAgent}},
	}
}

// NewClientFromConfig wires a Client with the configured sources, timeout and rate.
func NewClientFromConfig(cfg config.ProvidersConfig, opts ...ClientOption) *Client {
	base := []ClientOption{WithTimeout(cfg.Timeout), WithRateLimit(cfg.RatePerSecond)}
	return NewClient(Sources(cfg), append(base, opts...)...)
}

// inspectFMP flags FMP error envelopes returned with status 200.
func inspectFMP(payload any) *Failure {
	if m, ok := payload.(map[string]any); ok {
		if msg, ok := m["Error Message"].(string); ok {
			return &Failure{Kind: Forbidden, Message: msg}
		}
	}
	return nil
}

// inspectFinnhub flags {"error": "..."} bodies.
func inspectFinnhub(payload any) *Failure {
	if m, ok := payload.(map[string]any); ok {
		if msg, ok := m["error"].(string); ok && msg != "" {
			kind := TransportError
			if strings.Contains(strings.ToLower(msg), "access") {
				kind = Forbidden
			}
			return &Failure{Kind: kind, Message: msg}
		}
	}
	return nil
}

// inspectAlphaVantage maps quota notes to RateLimited and
// "Error Message" (unknown symbol or function) to NotFound.
func inspectAlphaVantage(payload any) *Failure {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := m[key].(string); ok {
			return &Failure{Kind: RateLimited, Message: msg}
		}
	}
	if msg, ok := m["Error Message"].(string); ok {
		return &Failure{Kind: NotFound, Message: msg}
	}
	return nil
}

// ─── FMP ───

func FMPDividends(symbol string) Call {
	return Call{Provider: FMP, Endpoint: "dividends", Template: "/stable/dividends",
		Params: map[string]string{"symbol": symbol}}
}

// FMPIncomeStatement requests up to limit income statements for the period type.
func FMPIncomeStatement(symbol string, period models.PeriodType, limit int) Call {
	p := "annual"
	if period == models.PeriodQuarterly {
		p = "quarter"
	}
	return Call{Provider: FMP, Endpoint: "income-statement", Template: "/stable/income-statement",
		Params: map[string]string{"symbol": symbol, "period": p, "limit": strconv.Itoa(limit)}}
}

func FMPAnalystEstimates(symbol string) Call {
	return Call{Provider: FMP, Endpoint: "analyst-estimates", Template: "/stable/analyst-estimates",
		Params: map[string]string{"symbol": symbol, "period": "annual", "page": "0", "limit": "10"}}
}

func FMPQuote(symbol string) Call {
	return Call{Provider: FMP, Endpoint: "quote", Template: "/stable/quote",
		Params: map[string]string{"symbol": symbol}}
}

func FMPCashFlow(symbol string, limit int) Call {
	return Call{Provider: FMP, Endpoint: "cash-flow-statement", Template: "/stable/cash-flow-statement",
		Params: map[string]string{"symbol": symbol, "period": "annual", "limit": strconv.Itoa(limit)}}
}

func FMPBalanceSheet(symbol string, limit int) Call {
	return Call{Provider: FMP, Endpoint: "balance-sheet-statement", Template: "/stable/balance-sheet-statement",
		Params: map[string]string{"symbol": symbol, "period": "annual", "limit": strconv.Itoa(limit)}}
}

// ─── Finnhub ───

// FinnhubDividends requests dividends with ex-dates in [from, to].
func FinnhubDividends(symbol string, from, to time.Time) Call {
	return Call{Provider: Finnhub, Endpoint: "dividends", Template: "/stock/dividend",
		Params: map[string]string{
			"symbol": symbol,
			"from":   from.Format(time.DateOnly),
			"to":     to.Format(time.DateOnly),
		}}
}

func FinnhubFinancialsReported(symbol string, period models.PeriodType) Call {
	freq := "annual"
	if period == models.PeriodQuarterly {
		freq = "quarterly"
	}
	return Call{Provider: Finnhub, Endpoint: "financials-reported", Template: "/stock/financials-reported",
		Params: map[string]string{"symbol": symbol, "freq": freq}}
}

func FinnhubQuote(symbol string) Call {
	return Call{Provider: Finnhub, Endpoint: "quote", Template: "/quote",
		Params: map[string]string{"symbol": symbol}}
}

func FinnhubMetric(symbol string) Call {
	return Call{Provider: Finnhub, Endpoint: "metric", Template: "/stock/metric?metric=all",
		Params: map[string]string{"symbol": symbol}}
}

// ─── Alpha Vantage ───

// AlphaVantageFunction requests one /query function for a symbol.
func AlphaVantageFunction(function, symbol string) Call {
	return Call{Provider: AlphaVantage, Endpoint: strings.ToLower(function), Template: "/query?function=" + function,
		Params: map[string]string{"symbol": symbol}}
}

func AVDividends(symbol string) Call       { return AlphaVantageFunction("DIVIDENDS", symbol) }
func AVIncomeStatement(symbol string) Call { return AlphaVantageFunction("INCOME_STATEMENT", symbol) }
func AVEarnings(symbol string) Call        { return AlphaVantageFunction("EARNINGS", symbol) }
func AVOverview(symbol string) Call        { return AlphaVantageFunction("OVERVIEW", symbol) }
func AVGlobalQuote(symbol string) Call     { return AlphaVantageFunction("GLOBAL_QUOTE", symbol) }
func AVCashFlow(symbol string) Call        { return AlphaVantageFunction("CASH_FLOW", symbol) }

// ─── CNN ───

func CNNFearGreed() Call {
	return Call{Provider: CNN, Endpoint: "fear-greed", Template: "/index/fearandgreed/graphdata"}
}
