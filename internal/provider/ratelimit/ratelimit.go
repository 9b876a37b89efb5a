// Package ratelimit gates provider calls through a shared token bucket so a
// race across providers cannot blow a single upstream's request budget.
package ratelimit

import (
	"context"

	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
)

// Provider wraps a quote provider with a token bucket. One bucket is shared
// across every decorator for the same upstream.
type Provider struct {
	P  provider.Provider
	TB *TokenBucket
}

func (l *Provider) Name() string { return l.P.Name() }

func (l *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	if l.TB != nil {
		if err := l.TB.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return l.P.FetchQuote(ctx, symbol)
}

// History gates a history provider through the same bucket mechanism.
type History struct {
	Provider
	H provider.HistoryProvider
}

func NewHistory(p provider.HistoryProvider, tb *TokenBucket) *History {
	return &History{Provider: Provider{P: p, TB: tb}, H: p}
}

func (l *History) FetchHistory(ctx context.Context, symbol, rng string) ([]quote.PricePoint, error) {
	if l.TB != nil {
		if err := l.TB.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return l.H.FetchHistory(ctx, symbol, rng)
}

// Batch gates a batch provider. The bulk call costs one token regardless of
// how many symbols it covers, which is how the upstreams meter it.
type Batch struct {
	Provider
	B provider.BatchProvider
}

func NewBatch(p provider.BatchProvider, tb *TokenBucket) *Batch {
	return &Batch{Provider: Provider{P: p, TB: tb}, B: p}
}

func (l *Batch) FetchBatch(ctx context.Context, symbols []string) (map[string]*quote.Quote, error) {
	if l.TB != nil {
		if err := l.TB.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return l.B.FetchBatch(ctx, symbols)
}
