// Package quotes is the facade composing the cache, the race resolver and
// the batch resolver for one asset class.
package quotes

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"quotefeed/internal/cache"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
	"quotefeed/internal/resolve"
)

// Service answers quote, batch and history lookups for one asset class.
// It holds only concurrency-safe state (cache handle, shared HTTP client
// inside the providers, immutable provider list), so one instance can serve
// concurrent requests.
type Service struct {
	class      quote.AssetClass
	cache      cache.Cache
	historyTTL time.Duration
	resolver   *resolve.Resolver
	history    provider.HistoryProvider
	log        *slog.Logger
}

// Quote resolves the current quote for symbol: cache first, then a race
// across the enabled providers. Fails with resolve.SymbolNotFoundError or
// resolve.ExhaustedError.
func (s *Service) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	return s.resolver.Resolve(ctx, symbol)
}

// BatchQuotes resolves as many of the requested symbols as possible. Never
// fails; unresolvable symbols are omitted.
func (s *Service) BatchQuotes(ctx context.Context, symbols []string) []*quote.Quote {
	return s.resolver.ResolveBatch(ctx, symbols)
}

// History returns the price series for (symbol, range), cache-aside. Any
// fetch failure yields an empty series; callers cannot distinguish "no data
// in range" from "fetch failed". The raw range code is part of the cache
// key; unknown codes are mapped to the 1M window by the provider.
func (s *Service) History(ctx context.Context, symbol, rng string) []quote.PricePoint {
	symbol = quote.Canonical(symbol)
	key := quote.HistoryKey(s.class, symbol, rng)

	if b, err := s.cache.Get(ctx, key); err == nil {
		var points []quote.PricePoint
		if err := json.Unmarshal(b, &points); err == nil {
			return points
		}
		s.log.Warn("corrupt cached history, refetching", "key", key, "error", err)
	}

	if s.history == nil {
		return nil
	}
	points, err := s.history.FetchHistory(ctx, symbol, rng)
	if err != nil {
		s.log.Error("history fetch failed", "symbol", symbol, "range", rng, "error", err)
		return nil
	}

	if b, err := json.Marshal(points); err == nil {
		if err := s.cache.Set(ctx, key, b, s.historyTTL); err != nil {
			s.log.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return points
}
