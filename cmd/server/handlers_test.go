package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotefeed/internal/cache"
	"quotefeed/internal/config"
	"quotefeed/internal/httpx"
	"quotefeed/internal/quote"
	"quotefeed/internal/quotes"
)

const upstreamMarkets = `[
  {
    "id": "bitcoin",
    "name": "Bitcoin",
    "current_price": 67234.12,
    "price_change_24h": -512.4,
    "price_change_percentage_24h": -0.76,
    "total_volume": 28123456789,
    "market_cap": 1324567890123,
    "market_cap_rank": 1
  }
]`

// newTestMux wires the public routes to a crypto service whose only
// provider is the given fake upstream. Stocks get the same upstream via
// the yahoo shape; tests that exercise stocks provide a chart body.
func newTestMux(t *testing.T, upstream http.HandlerFunc) *http.ServeMux {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.Yahoo = config.Provider{Enabled: true, Endpoint: srv.URL}
	cfg.AlphaVantage = config.Provider{}
	cfg.Polygon = config.Provider{}
	cfg.CoinGecko = config.Provider{Enabled: true, Endpoint: srv.URL}
	cfg.Binance = config.Provider{}
	cfg.CoinMarketCap = config.Provider{}

	log := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	mem := cache.NewMemory()
	hc := httpx.New(5 * time.Second)

	h := &handlers{
		stocks: quotes.NewStock(cfg, mem, hc, log),
		crypto: quotes.NewCrypto(cfg, mem, hc, log),
		log:    log,
	}
	mux := http.NewServeMux()
	h.register(mux)
	return mux
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestQuoteEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamMarkets))
	})

	rec := get(mux, "/api/crypto/BTC/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var q quote.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &q))
	assert.Equal(t, "BTC", q.Symbol)
	assert.Equal(t, 67234.12, q.Price)
	assert.Equal(t, "coingecko", q.Source)
}

func TestQuoteEndpoint_UnknownSymbolIs404(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	rec := get(mux, "/api/crypto/ZZZZZ/quote")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Detail, "ZZZZZ")
}

func TestQuoteEndpoint_AllProvidersDownIs503(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	rec := get(mux, "/api/crypto/BTC/quote")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHistoryEndpoint_FailureIsEmptyArray(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	rec := get(mux, "/api/crypto/BTC/history?range=1W")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestHistoryEndpoint_DefaultRange(t *testing.T) {
	t.Parallel()

	var gotQuery string
	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"prices": [[1700000000000, 36500.5]]}`))
	})

	rec := get(mux, "/api/crypto/BTC/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotQuery, "days=30")

	var points []quote.PricePoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 1)
	assert.Equal(t, 36500.5, points[0].Price)
}

func TestBatchEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamMarkets))
	})

	// ETH is requested but missing upstream: reduced result, still 200.
	rec := get(mux, "/api/crypto/batch?symbols=btc,%20eth")
	require.Equal(t, http.StatusOK, rec.Code)

	var qs []quote.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qs))
	require.Len(t, qs, 1)
	assert.Equal(t, "BTC", qs[0].Symbol)
}

func TestHealthz_ServesJSON(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamMarkets))
	})

	rec := httptest.NewRecorder()
	withJSONHeaders(mux).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestLimitBody(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h := limitBody(inner)

	rec := httptest.NewRecorder()
	big := bytes.Repeat([]byte("a"), 1<<20+1)
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("small"))))
	assert.Equal(t, http.StatusOK, rec.Code)

	// GET bodies pass through uncapped.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", bytes.NewReader(big)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBatchEndpoint_Validation(t *testing.T) {
	t.Parallel()

	mux := newTestMux(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamMarkets))
	})

	rec := get(mux, "/api/crypto/batch?symbols=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(mux, "/api/crypto/batch?symbols=,%20,")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	long := "/api/crypto/batch?symbols=S0"
	for i := 1; i <= 50; i++ {
		long += fmt.Sprintf(",S%d", i)
	}
	rec = get(mux, long)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
