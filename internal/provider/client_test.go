package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server, opts ...ClientOption) *Client {
	t.Helper()
	sources := []Source{
		{Name: FMP, BaseURL: srv.URL, APIKey: "secret", KeyParam: "apikey", Inspect: inspectFMP},
		{Name: AlphaVantage, BaseURL: srv.URL, APIKey: "secret", KeyParam: "apikey", Inspect: inspectAlphaVantage},
		{Name: Finnhub, BaseURL: srv.URL, KeyParam: "token"},
		{Name: CNN, BaseURL: srv.URL, Headers: map[string]string{"User-Agent": browserUserAgent}},
	}
	base := []ClientOption{WithRateLimit(0), WithLogger(zerolog.Nop())}
	return NewClient(sources, append(base, opts...)...)
}

func TestFetch_StatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   FailureKind
	}{
		{"forbidden", http.StatusForbidden, `{"message":"premium"}`, Forbidden},
		{"not found", http.StatusNotFound, ``, NotFound},
		{"rate limited", http.StatusTooManyRequests, `slow down`, RateLimited},
		{"server error", http.StatusBadGateway, `upstream down`, TransportError},
		{"malformed", http.StatusOK, `{"broken":`, MalformedBody},
		{"empty body", http.StatusOK, ``, MalformedBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			res := newTestClient(t, srv).Fetch(context.Background(), FMPQuote("AAPL"))
			require.NotNil(t, res.Failure)
			assert.Equal(t, tc.want, res.Failure.Kind)
			assert.Equal(t, FMP, res.Failure.Provider)
			assert.Equal(t, "quote", res.Failure.Endpoint)
			assert.False(t, res.OK())
		})
	}
}

func TestFetch_TransportErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("database on fire"))
	}))
	defer srv.Close()

	res := newTestClient(t, srv).Fetch(context.Background(), FMPQuote("AAPL"))
	require.NotNil(t, res.Failure)
	assert.Equal(t, http.StatusInternalServerError, res.Failure.HTTPStatus)
	assert.Contains(t, res.Failure.Message, "database on fire")
	assert.Contains(t, res.Failure.Reason(), "FMP: HTTP 500")
}

func TestFetch_SuccessDecodesWithNumbers(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/stable/quote", r.URL.Path)
		_, _ = w.Write([]byte(`[{"symbol":"AAPL","price":189.84}]`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv).Fetch(context.Background(), FMPQuote("AAPL"))
	require.True(t, res.OK(), "unexpected failure: %+v", res.Failure)

	rows, ok := res.Payload.([]any)
	require.True(t, ok)
	row := rows[0].(map[string]any)
	assert.Equal(t, json.Number("189.84"), row["price"])
	assert.Contains(t, gotQuery, "apikey=secret")
	assert.Contains(t, gotQuery, "symbol=AAPL")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	call := FMPQuote("AAPL")
	call.Timeout = 20 * time.Millisecond
	res := newTestClient(t, srv).Fetch(context.Background(), call)
	require.NotNil(t, res.Failure)
	assert.Equal(t, Timeout, res.Failure.Kind)
	assert.Equal(t, "FMP: Request timed out", res.Failure.Reason())
}

func TestFetch_UnconfiguredSkipsNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	res := newTestClient(t, srv).Fetch(context.Background(), FinnhubQuote("AAPL"))
	require.NotNil(t, res.Failure)
	assert.Equal(t, Unconfigured, res.Failure.Kind)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))

	res = newTestClient(t, srv).Fetch(context.Background(), Call{Provider: "Nope", Endpoint: "x", Template: "/"})
	require.NotNil(t, res.Failure)
	assert.Equal(t, Unconfigured, res.Failure.Kind)
}

func TestFetch_AlphaVantageEnvelopes(t *testing.T) {
	cases := []struct {
		body string
		want FailureKind
	}{
		{`{"Note":"Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, RateLimited},
		{`{"Information":"daily limit reached"}`, RateLimited},
		{`{"Error Message":"Invalid API call."}`, NotFound},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "DIVIDENDS", r.URL.Query().Get("function"))
			_, _ = w.Write([]byte(tc.body))
		}))

		res := newTestClient(t, srv).Fetch(context.Background(), AVDividends("IBM"))
		srv.Close()

		require.NotNil(t, res.Failure, tc.body)
		assert.Equal(t, tc.want, res.Failure.Kind, tc.body)
		assert.Equal(t, http.StatusOK, res.Failure.HTTPStatus)
	}
}

func TestFetch_FMPErrorEnvelopeIsForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Error Message":"Invalid API KEY."}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv).Fetch(context.Background(), FMPAnalystEstimates("AAPL"))
	require.NotNil(t, res.Failure)
	assert.Equal(t, Forbidden, res.Failure.Kind)
	assert.Equal(t, "FMP: Access forbidden", res.Failure.Reason())
}

func TestFetch_CNNSendsBrowserUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.UserAgent(), "Mozilla/5.0"))
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"fear_and_greed":{"score":52.1}}`))
	}))
	defer srv.Close()

	res := newTestClient(t, srv).Fetch(context.Background(), CNNFearGreed())
	assert.True(t, res.OK())
}

func TestBuildURL(t *testing.T) {
	src := Source{Name: FMP, BaseURL: "https://example.test/", APIKey: "k", KeyParam: "apikey"}

	full, logged, err := buildURL(src, Call{
		Template: "/v3/profile/{symbol}",
		Params:   map[string]string{"symbol": "BRK B", "limit": "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/v3/profile/BRK%20B?apikey=k&limit=5", full)
	assert.Equal(t, "https://example.test/v3/profile/BRK%20B", logged)

	full, _, err = buildURL(src, Call{Template: "/query?function=OVERVIEW", Params: map[string]string{"symbol": "IBM"}})
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/query?apikey=k&function=OVERVIEW&symbol=IBM", full)

	_, _, err = buildURL(src, Call{Template: "/v3/{missing}"})
	assert.Error(t, err)
}

func TestFetch_ErrorsNeverLeakKey(t *testing.T) {
	// Closed server: the dial fails and net/http wraps it in a *url.Error carrying the URL.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient([]Source{{Name: FMP, BaseURL: srv.URL, APIKey: "topsecret", KeyParam: "apikey"}},
		WithRateLimit(0), WithLogger(zerolog.Nop()))
	res := c.Fetch(context.Background(), FMPQuote("AAPL"))
	require.NotNil(t, res.Failure)
	assert.Equal(t, TransportError, res.Failure.Kind)
	assert.NotContains(t, res.Failure.Message, "topsecret")
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "FMP: Rate limit exceeded", Failure{Kind: RateLimited, Provider: FMP, Message: "Note text"}.Reason())
	assert.Equal(t, "Finnhub: No dividend data in response",
		NoDataFailure(Finnhub, "dividends", "No dividend data in response").Reason())
	assert.Equal(t, "Alpha Vantage: API key not configured", Failure{Kind: Unconfigured, Provider: AlphaVantage}.Reason())
}
