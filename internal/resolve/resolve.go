// Package resolve races the enabled providers for a symbol and returns the
// first successful quote. It is the only place failures are classified and
// aggregated; individual provider errors never cross this boundary.
package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"quotefeed/internal/cache"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
)

// SymbolNotFoundError: at least one provider explicitly reported the symbol
// does not exist. Takes priority over ExhaustedError even when the other
// providers failed for transient reasons.
type SymbolNotFoundError struct {
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %s not found in any source", e.Symbol)
}

// ExhaustedError: every provider failed and none reported not-found. Causes
// carries one message per provider for diagnostics.
type ExhaustedError struct {
	Symbol string
	Causes []string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all data sources failed for %s: %s", e.Symbol, strings.Join(e.Causes, "; "))
}

// Resolver answers single-symbol and multi-symbol quote lookups for one
// asset class, cache-aside. The provider list is fixed at construction;
// there is no priority order among providers, whichever finishes first wins.
type Resolver struct {
	Class     quote.AssetClass
	Cache     cache.Cache
	TTL       time.Duration
	Providers []provider.Provider
	// Batch is the optional native multi-symbol endpoint tried before
	// falling back to per-symbol races.
	Batch provider.BatchProvider
	Log   *slog.Logger

	sf singleflight.Group
}

// Resolve returns the current quote for symbol. Concurrent calls for the
// same symbol are coalesced into one race.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = quote.Canonical(symbol)
	// The flight is shared by every coalesced caller, so it must not die
	// with whichever caller happened to start it. The HTTP client timeout
	// still bounds a detached flight.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := r.sf.Do(symbol, func() (any, error) {
		return r.resolve(flightCtx, symbol)
	})
	if err != nil {
		return nil, err
	}
	return v.(*quote.Quote), nil
}

func (r *Resolver) resolve(ctx context.Context, symbol string) (*quote.Quote, error) {
	key := quote.QuoteKey(r.Class, symbol)
	if b, err := r.Cache.Get(ctx, key); err == nil {
		var q quote.Quote
		if err := json.Unmarshal(b, &q); err == nil {
			return &q, nil
		}
		// Corrupt payload: treat as a miss and refetch rather than
		// propagating a decode fault to the caller.
		r.log().Warn("corrupt cached quote, refetching", "key", key, "error", err)
	}
	return r.race(ctx, symbol)
}

// attempt associates one in-flight fetch with its provider name. The table
// of attempts is fixed before the race begins.
type attempt struct {
	provider string
	q        *quote.Quote
	err      error
}

// race launches every provider concurrently and accepts the first success.
// Losing attempts are canceled advisorily; their results land in the
// buffered channel after the race has concluded and are discarded, so they
// can never reach the cache or a caller.
func (r *Resolver) race(ctx context.Context, symbol string) (*quote.Quote, error) {
	if len(r.Providers) == 0 {
		return nil, &ExhaustedError{Symbol: symbol, Causes: []string{"no providers enabled"}}
	}

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan attempt, len(r.Providers))
	for _, p := range r.Providers {
		go func(p provider.Provider) {
			q, err := p.FetchQuote(rctx, symbol)
			results <- attempt{provider: p.Name(), q: q, err: err}
		}(p)
	}

	notFound := false
	causes := make([]string, 0, len(r.Providers))
	for range r.Providers {
		a := <-results
		switch {
		case a.err == nil:
			cancel()
			r.store(ctx, quote.QuoteKey(r.Class, symbol), a.q)
			return a.q, nil
		case provider.IsNotFound(a.err):
			notFound = true
			causes = append(causes, a.provider+": symbol not found")
		default:
			causes = append(causes, fmt.Sprintf("%s: %v", a.provider, a.err))
			r.log().Warn("provider failed", "provider", a.provider, "symbol", symbol, "error", a.err)
		}
	}

	if notFound {
		return nil, &SymbolNotFoundError{Symbol: symbol}
	}
	return nil, &ExhaustedError{Symbol: symbol, Causes: causes}
}

// ResolveBatch returns quotes for as many of the requested symbols as
// possible. It never fails for partial results; unresolvable symbols are
// logged and omitted.
func (r *Resolver) ResolveBatch(ctx context.Context, symbols []string) []*quote.Quote {
	syms := canonicalSet(symbols)
	if len(syms) == 0 {
		return nil
	}

	if r.Batch != nil {
		if quotes, err := r.resolveBulk(ctx, syms); err == nil {
			return quotes
		} else {
			r.log().Warn("bulk fetch failed, falling back to per-symbol races",
				"provider", r.Batch.Name(), "error", err)
		}
	}

	// Fallback: one race per symbol, all outcomes gathered, failures dropped.
	out := make([]*quote.Quote, len(syms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, s := range syms {
		g.Go(func() error {
			q, err := r.Resolve(gctx, s)
			if err != nil {
				r.log().Warn("batch symbol dropped", "symbol", s, "error", err)
				return nil
			}
			out[i] = q
			return nil
		})
	}
	_ = g.Wait()

	quotes := make([]*quote.Quote, 0, len(syms))
	for _, q := range out {
		if q != nil {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// resolveBulk issues exactly one call covering the whole set. It does not
// consult the cache first but populates it per symbol, so subsequent
// single-symbol lookups hit.
func (r *Resolver) resolveBulk(ctx context.Context, syms []string) ([]*quote.Quote, error) {
	m, err := r.Batch.FetchBatch(ctx, syms)
	if err != nil {
		return nil, err
	}
	quotes := make([]*quote.Quote, 0, len(syms))
	for _, s := range syms {
		q, ok := m[s]
		if !ok {
			r.log().Warn("symbol absent from bulk response", "provider", r.Batch.Name(), "symbol", s)
			continue
		}
		r.store(ctx, quote.QuoteKey(r.Class, s), q)
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// store writes a freshly fetched quote to the cache. A write failure is not
// a resolution failure; the quote still goes to the caller.
func (r *Resolver) store(ctx context.Context, key string, q *quote.Quote) {
	b, err := json.Marshal(q)
	if err != nil {
		r.log().Warn("marshal quote for cache", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, b, r.TTL); err != nil {
		r.log().Warn("cache write failed", "key", key, "error", err)
	}
}

func (r *Resolver) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// canonicalSet upper-cases, trims, drops empties and dedupes while
// preserving request order.
func canonicalSet(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		c := quote.Canonical(s)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
