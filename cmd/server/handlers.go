package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"quotefeed/internal/quote"
	"quotefeed/internal/quotes"
	"quotefeed/internal/resolve"
)

const maxBatchSymbols = 50

type handlers struct {
	stocks *quotes.Service
	crypto *quotes.Service
	log    *slog.Logger
}

func (h *handlers) register(mux *http.ServeMux) {
	// The whole mux sits behind withJSONHeaders, so even health answers JSON.
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/stocks/batch", h.batch(h.stocks))
	mux.HandleFunc("GET /api/stocks/{symbol}/quote", h.quote(h.stocks))
	mux.HandleFunc("GET /api/stocks/{symbol}/history", h.history(h.stocks))

	mux.HandleFunc("GET /api/crypto/batch", h.batch(h.crypto))
	mux.HandleFunc("GET /api/crypto/{symbol}/quote", h.quote(h.crypto))
	mux.HandleFunc("GET /api/crypto/{symbol}/history", h.history(h.crypto))
}

// quote maps the resolver's two terminal failures to distinguishable
// statuses: not-found vs. service-unavailable.
func (h *handlers) quote(svc *quotes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := r.PathValue("symbol")
		q, err := svc.Quote(r.Context(), symbol)
		if err != nil {
			var nf *resolve.SymbolNotFoundError
			if errors.As(err, &nf) {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// history never surfaces errors, only a possibly empty series.
func (h *handlers) history(svc *quotes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := r.PathValue("symbol")
		rng := r.URL.Query().Get("range")
		if rng == "" {
			rng = "1M"
		}
		points := svc.History(r.Context(), symbol, rng)
		if points == nil {
			points = []quote.PricePoint{}
		}
		writeJSON(w, http.StatusOK, points)
	}
}

// batch never surfaces per-symbol failures, only a reduced result set.
func (h *handlers) batch(svc *quotes.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbols := splitCSV(r.URL.Query().Get("symbols"))
		if len(symbols) == 0 {
			writeError(w, http.StatusBadRequest, "no valid symbols provided")
			return
		}
		if len(symbols) > maxBatchSymbols {
			writeError(w, http.StatusBadRequest, "maximum 50 symbols allowed")
			return
		}
		qs := svc.BatchQuotes(r.Context(), symbols)
		if qs == nil {
			qs = []*quote.Quote{}
		}
		writeJSON(w, http.StatusOK, qs)
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
