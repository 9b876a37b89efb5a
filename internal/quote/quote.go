package quote

import (
	"strings"
	"time"
)

// AssetClass selects the cache namespace and range table for a service.
type AssetClass string

const (
	Stock  AssetClass = "stock"
	Crypto AssetClass = "crypto"
)

// Quote is the normalized shape returned by all providers. A Quote is
// constructed whole from a single provider response and never mutated;
// a newer fetch supersedes it instead. Optional fields are pointers with
// omitempty so cached payloads stay compact.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	LogoURL       string  `json:"logo_url,omitempty"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        float64 `json:"volume"`

	MarketCap *float64 `json:"market_cap,omitempty"`
	Rank      *int     `json:"rank,omitempty"`
	High52W   *float64 `json:"high_52w,omitempty"`
	Low52W    *float64 `json:"low_52w,omitempty"`

	// Secondary-period changes. Crypto providers fill these from their
	// 7d/30d/1y figures.
	ChangePercentWeek  *float64 `json:"change_percent_week,omitempty"`
	ChangePercentMonth *float64 `json:"change_percent_month,omitempty"`
	ChangePercentYear  *float64 `json:"change_percent_year,omitempty"`

	// All-time-high data (crypto only).
	ATH              *float64 `json:"ath,omitempty"`
	ATHChangePercent *float64 `json:"ath_change_percent,omitempty"`

	// Extended-hours data (equities only).
	PreMarketPrice          *float64 `json:"pre_market_price,omitempty"`
	PreMarketChange         *float64 `json:"pre_market_change,omitempty"`
	PreMarketChangePercent  *float64 `json:"pre_market_change_percent,omitempty"`
	PostMarketPrice         *float64 `json:"post_market_price,omitempty"`
	PostMarketChange        *float64 `json:"post_market_change,omitempty"`
	PostMarketChangePercent *float64 `json:"post_market_change_percent,omitempty"`

	// MarketState is PRE, REGULAR, POST or CLOSED when known.
	MarketState string `json:"market_state,omitempty"`

	// FuturesSymbol is a correlation hint for major indices (ES, NQ, ...).
	FuturesSymbol string `json:"futures_symbol,omitempty"`

	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricePoint is one entry of a history series. Equities carry OHLC and
// volume; crypto carries Price only. Series are chronological ascending.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Open      float64   `json:"open,omitempty"`
	High      float64   `json:"high,omitempty"`
	Low       float64   `json:"low,omitempty"`
	Close     float64   `json:"close,omitempty"`
	Volume    float64   `json:"volume,omitempty"`
}

// Canonical upper-cases and trims a symbol. Every cache key and provider
// call goes through this first.
func Canonical(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// QuoteKey builds the cache key for a current quote.
func QuoteKey(class AssetClass, symbol string) string {
	return string(class) + ":quote:" + symbol
}

// HistoryKey builds the cache key for a (symbol, range) history series.
func HistoryKey(class AssetClass, symbol, rng string) string {
	return string(class) + ":history:" + symbol + ":" + rng
}

// Ptr is a small helper for the optional fields above.
func Ptr[T any](v T) *T { return &v }
