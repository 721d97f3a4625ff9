package service

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/stockscope/internal/provider"
)

// fakeGatherer answers calls from a table keyed by "Provider/endpoint".
// Unknown calls fail with NotFound.
type fakeGatherer struct {
	mu      sync.Mutex
	results map[string]provider.Result
	calls   []provider.Call
}

func newFakeGatherer() *fakeGatherer {
	return &fakeGatherer{results: make(map[string]provider.Result)}
}

func key(providerName, endpoint string) string { return providerName + "/" + endpoint }

func (f *fakeGatherer) ok(t *testing.T, providerName, endpoint, body string) *fakeGatherer {
	t.Helper()
	f.results[key(providerName, endpoint)] = provider.Succeeded(providerName, endpoint, decode(t, body))
	return f
}

func (f *fakeGatherer) fail(providerName, endpoint string, kind provider.FailureKind, status int) *fakeGatherer {
	f.results[key(providerName, endpoint)] = provider.Failed(providerName, endpoint, kind, status, "")
	return f
}

func (f *fakeGatherer) Gather(_ context.Context, calls []provider.Call) []provider.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, calls...)

	out := make([]provider.Result, len(calls))
	for i, c := range calls {
		if r, ok := f.results[key(c.Provider, c.Endpoint)]; ok {
			out[i] = r
			continue
		}
		out[i] = provider.Failed(c.Provider, c.Endpoint, provider.NotFound, 404, "")
	}
	return out
}

func (f *fakeGatherer) providersCalled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Provider)
	}
	return out
}

func decode(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return v
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
}
