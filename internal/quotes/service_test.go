package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotefeed/internal/cache"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
	"quotefeed/internal/resolve"
)

type stubHistory struct {
	points []quote.PricePoint
	err    error

	mu      sync.Mutex
	calls   int
	lastRng string
	lastSym string
}

func (s *stubHistory) Name() string { return "stub" }

func (s *stubHistory) FetchQuote(context.Context, string) (*quote.Quote, error) {
	return nil, errors.New("not used")
}

func (s *stubHistory) FetchHistory(_ context.Context, symbol, rng string) ([]quote.PricePoint, error) {
	s.mu.Lock()
	s.calls++
	s.lastSym, s.lastRng = symbol, rng
	s.mu.Unlock()
	return s.points, s.err
}

var _ provider.HistoryProvider = (*stubHistory)(nil)

func newService(h provider.HistoryProvider) (*Service, *cache.Memory) {
	mem := cache.NewMemory()
	return &Service{
		class:      quote.Stock,
		cache:      mem,
		historyTTL: 900 * time.Second,
		resolver:   &resolve.Resolver{Class: quote.Stock, Cache: mem, TTL: 90 * time.Second},
		history:    h,
		log:        slog.Default(),
	}, mem
}

func TestHistory_CachesUnderRangeKey(t *testing.T) {
	t.Parallel()

	h := &stubHistory{points: []quote.PricePoint{
		{Timestamp: time.Unix(1700000000, 0).UTC(), Price: 101.5},
		{Timestamp: time.Unix(1700086400, 0).UTC(), Price: 102.0},
	}}
	s, mem := newService(h)

	got := s.History(t.Context(), " aapl ", "1W")
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", h.lastSym)
	assert.Equal(t, "1W", h.lastRng)

	b, err := mem.Get(t.Context(), "stock:history:AAPL:1W")
	require.NoError(t, err)
	var cached []quote.PricePoint
	require.NoError(t, json.Unmarshal(b, &cached))
	assert.Equal(t, got, cached)

	// second call within TTL served from cache
	again := s.History(t.Context(), "AAPL", "1W")
	assert.Equal(t, got, again)
	assert.Equal(t, 1, h.calls)
}

func TestHistory_DistinctRangesAreDistinctEntries(t *testing.T) {
	t.Parallel()

	h := &stubHistory{points: []quote.PricePoint{{Timestamp: time.Unix(1700000000, 0).UTC(), Price: 1}}}
	s, _ := newService(h)

	s.History(t.Context(), "AAPL", "1D")
	s.History(t.Context(), "AAPL", "1Y")
	assert.Equal(t, 2, h.calls, "each range has its own cache entry")
}

func TestHistory_FetchFailureYieldsEmptyAndIsNotCached(t *testing.T) {
	t.Parallel()

	h := &stubHistory{err: errors.New("upstream down")}
	s, mem := newService(h)

	assert.Empty(t, s.History(t.Context(), "AAPL", "1M"))
	_, err := mem.Get(t.Context(), "stock:history:AAPL:1M")
	assert.ErrorIs(t, err, cache.ErrMiss, "failures must not be cached")

	// a retry goes back upstream
	h.err = nil
	h.points = []quote.PricePoint{{Timestamp: time.Unix(1700000000, 0).UTC(), Price: 3}}
	assert.Len(t, s.History(t.Context(), "AAPL", "1M"), 1)
}

func TestHistory_NoProviderConfigured(t *testing.T) {
	t.Parallel()

	s, _ := newService(nil)
	assert.Empty(t, s.History(t.Context(), "AAPL", "1M"))
}

func TestHistory_CorruptCachePayloadIsRefetched(t *testing.T) {
	t.Parallel()

	h := &stubHistory{points: []quote.PricePoint{{Timestamp: time.Unix(1700000000, 0).UTC(), Price: 9}}}
	s, mem := newService(h)
	require.NoError(t, mem.Set(t.Context(), "stock:history:AAPL:1M", []byte("[broken"), time.Minute))

	got := s.History(t.Context(), "AAPL", "1M")
	require.Len(t, got, 1)
	assert.Equal(t, 1, h.calls)

	b, err := mem.Get(t.Context(), "stock:history:AAPL:1M")
	require.NoError(t, err)
	assert.NoError(t, json.Unmarshal(b, &[]quote.PricePoint{}))
}
