package provider

import (
	"context"
	"errors"
	"fmt"

	"quotefeed/internal/quote"
)

// Provider is one upstream source of price data. Implementations are
// stateless apart from their HTTP client and safe for concurrent use.
// Symbols are canonical (upper-cased, trimmed) by the time they get here.
type Provider interface {
	Name() string
	FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error)
}

// HistoryProvider is implemented by providers that can serve a price series.
// Unknown range codes map to the 1M window rather than failing.
type HistoryProvider interface {
	Provider
	FetchHistory(ctx context.Context, symbol, rng string) ([]quote.PricePoint, error)
}

// BatchProvider is implemented by providers with a native multi-symbol
// endpoint. FetchBatch returns a partial map keyed by canonical symbol;
// requested symbols absent from the upstream response are simply missing
// from the map, never an error.
type BatchProvider interface {
	Provider
	FetchBatch(ctx context.Context, symbols []string) (map[string]*quote.Quote, error)
}

// NotFoundError means the upstream explicitly reported the symbol does not
// exist. Every other fetch error is classified transient.
type NotFoundError struct {
	Provider string
	Symbol   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: symbol %s not found", e.Provider, e.Symbol)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
