package polygon_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotefeed/internal/httpx"
	"quotefeed/internal/provider"
	"quotefeed/internal/provider/polygon"
)

func newServer(t *testing.T, handler http.HandlerFunc) *polygon.Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return polygon.New(polygon.Config{BaseURL: srv.URL, APIKey: "pk_test"}, httpx.New(5*time.Second))
}

func TestFetchQuote(t *testing.T) {
	t.Parallel()

	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/aggs/ticker/AAPL/prev", r.URL.Path)
		assert.Equal(t, "pk_test", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`{
		  "ticker": "AAPL",
		  "resultsCount": 1,
		  "results": [{"c": 228.02, "o": 226.50, "v": 42355678, "h": 229.0, "l": 226.1}]
		}`))
	})

	q, err := p.FetchQuote(t.Context(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 228.02, q.Price)
	assert.InDelta(t, 1.52, q.Change, 1e-9)
	assert.InDelta(t, 1.52/226.50*100, q.ChangePercent, 1e-9)
	assert.Equal(t, "polygon", q.Source)
}

func TestFetchQuote_NoResultsIsNotFound(t *testing.T) {
	t.Parallel()

	p := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker": "NSTLH", "resultsCount": 0, "results": []}`))
	})

	_, err := p.FetchQuote(t.Context(), "NSTLH")
	assert.True(t, provider.IsNotFound(err))
}
