package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/guttosm/stockscope/internal/logger"
)

const (
	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit is the outbound requests per second allowed per provider.
	DefaultRateLimit = 5

	maxBodyBytes = 8 << 20
)

// Call describes one upstream GET.
//
// Template is a path (optionally with its own query string) that may contain
// {name} placeholders; each placeholder is replaced by the path-escaped value
// of Params[name]. Remaining params are sent as query parameters.
type Call struct {
	Provider string
	Endpoint string
	Template string
	Params   map[string]string
	Timeout  time.Duration
}

// Fetcher performs a single call. Implementations never return a Go error:
// every failure is classified into the Result.
type Fetcher interface {
	Fetch(ctx context.Context, call Call) Result
}

// Source is one upstream API registered on the Client.
type Source struct {
	Name     string
	BaseURL  string
	APIKey   string
	KeyParam string            // query parameter carrying the key; empty for keyless APIs
	Headers  map[string]string // extra request headers
	// Inspect classifies 2xx bodies that are really errors (quota notes, bad key messages).
	Inspect func(payload any) *Failure
}

type source struct {
	Source
	limiter *rate.Limiter
}

// Client is the Provider Client. It is safe for concurrent use; the only
// state it holds is read-only configuration and per-provider rate limiters.
type Client struct {
	sources    map[string]*source
	httpClient *http.Client
	timeout    time.Duration
	rps        int
	logger     zerolog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the default per-call timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit sets the outbound rate per provider. Zero or less disables limiting.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.rps = requestsPerSecond
	}
}

// WithLogger sets a logger.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Provider Client over the given sources.
func NewClient(sources []Source, opts ...ClientOption) *Client {
	c := &Client{
		sources:    make(map[string]*source, len(sources)),
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		rps:        DefaultRateLimit,
		logger:     logger.Component("provider"),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, s := range sources {
		src := &source{Source: s}
		if c.rps > 0 {
			src.limiter = rate.NewLimiter(rate.Limit(c.rps), c.rps)
		}
		c.sources[s.Name] = src
	}
	return c
}

// Fetch issues the call with a bounded timeout and classifies the outcome.
//
// Classification:
//   - 403 → Forbidden, 404 → NotFound, 429 → RateLimited.
//   - deadline exceeded → Timeout.
//   - other non-2xx or network errors → TransportError with the upstream message.
//   - undecodable body → MalformedBody.
//
// There are no retries at this layer.
func (c *Client) Fetch(ctx context.Context, call Call) Result {
	src, ok := c.sources[call.Provider]
	if !ok {
		return Failed(call.Provider, call.Endpoint, Unconfigured, 0, "unknown provider")
	}
	if src.KeyParam != "" && src.APIKey == "" {
		return Failed(call.Provider, call.Endpoint, Unconfigured, 0, "")
	}

	timeout := call.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if src.limiter != nil {
		if err := src.limiter.Wait(ctx); err != nil {
			return Failed(call.Provider, call.Endpoint, RateLimited, 0, "client-side rate limit wait exceeded deadline")
		}
	}

	reqURL, logURL, err := buildURL(src.Source, call)
	if err != nil {
		return Failed(call.Provider, call.Endpoint, TransportError, 0, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failed(call.Provider, call.Endpoint, TransportError, 0, fmt.Sprintf("failed to create request: %v", stripURL(err)))
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range src.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		res := classifyTransport(call, ctx, err)
		c.logFailure(res, logURL, time.Since(start))
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		res := classifyTransport(call, ctx, err)
		c.logFailure(res, logURL, time.Since(start))
		return res
	}

	if res, failed := classifyStatus(call, resp, body); failed {
		c.logFailure(res, logURL, time.Since(start))
		return res
	}

	payload, err := decode(body)
	if err != nil {
		res := Failed(call.Provider, call.Endpoint, MalformedBody, resp.StatusCode, err.Error())
		c.logFailure(res, logURL, time.Since(start))
		return res
	}

	if src.Inspect != nil {
		if f := src.Inspect(payload); f != nil {
			f.Provider, f.Endpoint, f.HTTPStatus = call.Provider, call.Endpoint, resp.StatusCode
			res := Result{Provider: call.Provider, Endpoint: call.Endpoint, Failure: f}
			c.logFailure(res, logURL, time.Since(start))
			return res
		}
	}

	c.logger.Debug().
		Str("provider", call.Provider).
		Str("endpoint", call.Endpoint).
		Str("url", logURL).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("provider call")

	return Succeeded(call.Provider, call.Endpoint, payload)
}

func (c *Client) logFailure(res Result, logURL string, latency time.Duration) {
	c.logger.Warn().
		Str("provider", res.Provider).
		Str("endpoint", res.Endpoint).
		Str("url", logURL).
		Str("kind", string(res.Failure.Kind)).
		Int("status", res.Failure.HTTPStatus).
		Str("message", res.Failure.Message).
		Int64("latency_ms", latency.Milliseconds()).
		Msg("provider call failed")
}

func classifyStatus(call Call, resp *http.Response, body []byte) (Result, bool) {
	code := resp.StatusCode
	switch {
	case code == http.StatusForbidden:
		return Failed(call.Provider, call.Endpoint, Forbidden, code, snippet(body)), true
	case code == http.StatusNotFound:
		return Failed(call.Provider, call.Endpoint, NotFound, code, snippet(body)), true
	case code == http.StatusTooManyRequests:
		return Failed(call.Provider, call.Endpoint, RateLimited, code, snippet(body)), true
	case code < 200 || code > 299:
		msg := fmt.Sprintf("HTTP %d %s", code, http.StatusText(code))
		if s := snippet(body); s != "" {
			msg += ": " + s
		}
		return Failed(call.Provider, call.Endpoint, TransportError, code, msg), true
	}
	return Result{}, false
}

func classifyTransport(call Call, ctx context.Context, err error) Result {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return Failed(call.Provider, call.Endpoint, Timeout, 0, "")
	}
	return Failed(call.Provider, call.Endpoint, TransportError, 0, stripURL(err).Error())
}

// stripURL unwraps *url.Error so the request URL, which carries the API key,
// never reaches logs or response bodies.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

func decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return payload, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// buildURL expands the template and returns the request URL and a
// key-free variant suitable for logging.
func buildURL(src Source, call Call) (string, string, error) {
	path, rawQuery, _ := strings.Cut(call.Template, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", "", fmt.Errorf("invalid endpoint template %q: %w", call.Template, err)
	}

	used := make(map[string]bool)
	for name, value := range call.Params {
		placeholder := "{" + name + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
			used[name] = true
		}
	}
	if strings.ContainsAny(path, "{}") {
		return "", "", fmt.Errorf("unresolved placeholder in %q", call.Template)
	}
	for name, value := range call.Params {
		if !used[name] {
			query.Set(name, value)
		}
	}

	base := strings.TrimRight(src.BaseURL, "/") + path
	logURL := base
	if src.KeyParam != "" {
		query.Set(src.KeyParam, src.APIKey)
	}
	if len(query) == 0 {
		return base, logURL, nil
	}
	return base + "?" + query.Encode(), logURL, nil
}
