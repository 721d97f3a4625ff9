// Package fanout issues a batch of provider calls concurrently and joins
// every outcome, successful or not, into a positional result list.
package fanout

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/stockscope/internal/logger"
	"github.com/guttosm/stockscope/internal/provider"
)

// DefaultMaxParallel bounds the number of in-flight calls of one batch.
const DefaultMaxParallel = 8

// Gatherer runs a batch of calls and returns one Result per call.
type Gatherer interface {
	Gather(ctx context.Context, calls []provider.Call) []provider.Result
}

// Coordinator is the Fan-out Coordinator.
type Coordinator struct {
	fetcher     provider.Fetcher
	maxParallel int
}

// NewCoordinator creates a Coordinator over the given fetcher.
//
// Parameters:
//   - fetcher: the Provider Client (or a fake in tests).
//   - maxParallel: in-flight bound per batch; values < 1 fall back to DefaultMaxParallel.
func NewCoordinator(fetcher provider.Fetcher, maxParallel int) *Coordinator {
	if maxParallel < 1 {
		maxParallel = DefaultMaxParallel
	}
	return &Coordinator{fetcher: fetcher, maxParallel: maxParallel}
}

// Gather issues every call concurrently and waits until all have settled.
//
// Behavior:
//   - results[i] is always the outcome of calls[i].
//   - A failed call never cancels its siblings: each goroutine returns nil
//     and records its outcome in its own slot.
//   - A panic inside a fetch is recovered and recorded as a TransportError.
//
// Returns:
//   - []provider.Result: same length and order as calls.
func (c *Coordinator) Gather(ctx context.Context, calls []provider.Call) []provider.Result {
	results := make([]provider.Result, len(calls))
	if len(calls) == 0 {
		return results
	}

	log := logger.Component("fanout")
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(c.maxParallel)

	for i, call := range calls {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Error().
						Str("provider", call.Provider).
						Str("endpoint", call.Endpoint).
						Interface("panic", r).
						Bytes("stack", debug.Stack()).
						Msg("provider call panicked")
					results[i] = provider.Failed(call.Provider, call.Endpoint, provider.TransportError, 0,
						fmt.Sprintf("internal error: %v", r))
				}
			}()
			results[i] = c.fetcher.Fetch(ctx, call)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	log.Debug().
		Int("calls", len(calls)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("batch settled")

	return results
}

// First returns the first successful result among the given indices, in the
// order given. ok is false when every listed result failed.
func First(results []provider.Result, indices ...int) (provider.Result, bool) {
	for _, i := range indices {
		if i >= 0 && i < len(results) && results[i].OK() {
			return results[i], true
		}
	}
	return provider.Result{}, false
}

// Failures collects the classified failures of a result list, in order.
func Failures(results []provider.Result) []provider.Failure {
	var out []provider.Failure
	for _, r := range results {
		if r.Failure != nil {
			out = append(out, *r.Failure)
		}
	}
	return out
}
