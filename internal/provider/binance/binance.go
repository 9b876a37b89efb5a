// Package binance adapts the Binance 24hr ticker endpoint. No API key, no
// market cap, no secondary periods; it usually wins the race on latency.
package binance

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"quotefeed/internal/httpx"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
	"quotefeed/internal/symbols"
)

type Config struct {
	Name    string
	BaseURL string
}

type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "binance"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.binance.com"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type tickerResponse struct {
	LastPrice          string `json:"lastPrice"`
	PrevClosePrice     string `json:"prevClosePrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	meta := symbols.Crypto(symbol)
	if meta.BinancePair == "" {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}

	v := url.Values{}
	v.Set("symbol", meta.BinancePair)
	u := p.cfg.BaseURL + "/api/v3/ticker/24hr?" + v.Encode()

	var resp tickerResponse
	if err := p.client.GetJSON(ctx, u, nil, &resp); err != nil {
		// Binance answers 400 for unknown trading pairs.
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Code == 400 {
			return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
		}
		return nil, err
	}

	price := parseFloat(resp.LastPrice)
	prev := parseFloat(resp.PrevClosePrice)
	if prev == 0 {
		prev = price
	}

	return &quote.Quote{
		Symbol:        symbol,
		Name:          meta.Name,
		Price:         price,
		Change:        price - prev,
		ChangePercent: parseFloat(resp.PriceChangePercent),
		Volume:        parseFloat(resp.QuoteVolume),
		Source:        p.cfg.Name,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
