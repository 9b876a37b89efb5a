// Package polygon adapts the Polygon.io previous-close aggregate endpoint.
// Key-gated fallback source.
package polygon

import (
	"context"
	"net/url"
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
		cfg.Name = "polygon"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.polygon.io"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type prevCloseResponse struct {
	Results []struct {
		Close  float64 `json:"c"`
		Open   float64 `json:"o"`
		Volume float64 `json:"v"`
	} `json:"results"`
}

func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	v := url.Values{}
	v.Set("apiKey", p.cfg.APIKey)
	u := p.cfg.BaseURL + "/v2/aggs/ticker/" + url.PathEscape(symbol) + "/prev?" + v.Encode()

	var resp prevCloseResponse
	if err := p.client.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}

	r := resp.Results[0]
	open := r.Open
	if open == 0 {
		open = r.Close
	}
	change := r.Close - open
	changePct := 0.0
	if open != 0 {
		changePct = change / open * 100
	}

	return &quote.Quote{
		Symbol:        symbol,
		Price:         r.Close,
		Change:        change,
		ChangePercent: changePct,
		Volume:        r.Volume,
		Source:        p.cfg.Name,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}
