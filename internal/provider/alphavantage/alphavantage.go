// Package alphavantage adapts the Alpha Vantage GLOBAL_QUOTE endpoint.
// Key-gated fallback source; sparse fields only.
package alphavantage

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quotefeed/internal/httpx"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
)

type Config struct {
	Name    string
	BaseURL string
	APIKey  string
}

type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "alpha_vantage"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.alphavantage.co"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	v := url.Values{}
	v.Set("function", "GLOBAL_QUOTE")
	v.Set("symbol", symbol)
	v.Set("apikey", p.cfg.APIKey)
	u := p.cfg.BaseURL + "/query?" + v.Encode()

	var resp globalQuoteResponse
	if err := p.client.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	// An unknown symbol comes back as an empty "Global Quote" object.
	if len(resp.GlobalQuote) == 0 {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}

	gq := resp.GlobalQuote
	return &quote.Quote{
		Symbol:        symbol,
		Price:         parseFloat(gq["05. price"]),
		Change:        parseFloat(gq["09. change"]),
		ChangePercent: parseFloat(strings.TrimSuffix(gq["10. change percent"], "%")),
		Volume:        parseFloat(gq["06. volume"]),
		Source:        p.cfg.Name,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
