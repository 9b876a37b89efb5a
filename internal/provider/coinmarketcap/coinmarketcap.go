// Package coinmarketcap adapts the CoinMarketCap pro API. Requires an API
// key; only constructed when one is configured.
package coinmarketcap

import (
	"context"
	"net/url"
	"time"

	"quotefeed/internal/httpx"
	"quotefeed/internal/provider"
	"quotefeed/internal/quote"
	"quotefeed/internal/symbols"
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
		cfg.Name = "coinmarketcap"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type quotesResponse struct {
	Data map[string]struct {
		Name    string `json:"name"`
		CMCRank *int   `json:"cmc_rank"`
		Quote   map[string]struct {
			Price        float64 `json:"price"`
			PctChange24H float64 `json:"percent_change_24h"`
			Volume24H    float64 `json:"volume_24h"`
			MarketCap    float64 `json:"market_cap"`
		} `json:"quote"`
	} `json:"data"`
}

func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	v := url.Values{}
	v.Set("symbol", symbol)
	v.Set("convert", "USD")
	u := p.cfg.BaseURL + "/v1/cryptocurrency/quotes/latest?" + v.Encode()

	var resp quotesResponse
	headers := map[string]string{"X-CMC_PRO_API_KEY": p.cfg.APIKey}
	if err := p.client.GetJSON(ctx, u, headers, &resp); err != nil {
		return nil, err
	}

	coin, ok := resp.Data[symbol]
	if !ok {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}
	usd := coin.Quote["USD"]

	name := coin.Name
	if name == "" {
		name = symbols.Crypto(symbol).Name
	}
	return &quote.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         usd.Price,
		Change:        usd.Price * (usd.PctChange24H / 100),
		ChangePercent: usd.PctChange24H,
		Volume:        usd.Volume24H,
		MarketCap:     quote.Ptr(usd.MarketCap),
		Rank:          coin.CMCRank,
		Source:        p.cfg.Name,
		UpdatedAt:     time.Now().UTC(),
	}, nil
}
