// Package coingecko adapts the CoinGecko markets API. It is the only crypto
// provider with native batch and history endpoints.
package coingecko

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"context"

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
		cfg.Name = "coingecko"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.coingecko.com/api/v3"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// marketRow is one element of the /coins/markets response.
type marketRow struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Image             string   `json:"image"`
	CurrentPrice      float64  `json:"current_price"`
	PriceChange24H    float64  `json:"price_change_24h"`
	PriceChangePct24H float64  `json:"price_change_percentage_24h"`
	TotalVolume       float64  `json:"total_volume"`
	MarketCap         float64  `json:"market_cap"`
	MarketCapRank     *int     `json:"market_cap_rank"`
	Pct7D             *float64 `json:"price_change_percentage_7d_in_currency"`
	Pct30D            *float64 `json:"price_change_percentage_30d_in_currency"`
	Pct1Y             *float64 `json:"price_change_percentage_1y_in_currency"`
	ATH               *float64 `json:"ath"`
	ATHChangePct      *float64 `json:"ath_change_percentage"`
}

func (p *Provider) marketsURL(ids []string) string {
	v := url.Values{}
	v.Set("vs_currency", "usd")
	v.Set("ids", strings.Join(ids, ","))
	v.Set("order", "market_cap_desc")
	v.Set("sparkline", "false")
	v.Set("price_change_percentage", "24h,7d,30d,1y")
	return p.cfg.BaseURL + "/coins/markets?" + v.Encode()
}

func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	meta := symbols.Crypto(symbol)

	var rows []marketRow
	if err := p.client.GetJSON(ctx, p.marketsURL([]string{meta.CoinGeckoID}), nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}
	return p.toQuote(symbol, meta, rows[0]), nil
}

// FetchBatch issues one markets call covering the whole symbol set and maps
// the response back to canonical symbols via the metadata table. Requested
// symbols absent from the response are missing from the result map.
func (p *Provider) FetchBatch(ctx context.Context, syms []string) (map[string]*quote.Quote, error) {
	symbolByID := make(map[string]string, len(syms))
	ids := make([]string, 0, len(syms))
	for _, s := range syms {
		meta := symbols.Crypto(s)
		symbolByID[meta.CoinGeckoID] = s
		ids = append(ids, meta.CoinGeckoID)
	}

	var rows []marketRow
	if err := p.client.GetJSON(ctx, p.marketsURL(ids), nil, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]*quote.Quote, len(rows))
	for _, row := range rows {
		sym, ok := symbolByID[row.ID]
		if !ok {
			continue
		}
		out[sym] = p.toQuote(sym, symbols.Crypto(sym), row)
	}
	return out, nil
}

func (p *Provider) toQuote(symbol string, meta symbols.Meta, row marketRow) *quote.Quote {
	name := row.Name
	if name == "" {
		name = meta.Name
	}
	return &quote.Quote{
		Symbol:             symbol,
		Name:               name,
		LogoURL:            row.Image,
		Price:              row.CurrentPrice,
		Change:             row.PriceChange24H,
		ChangePercent:      row.PriceChangePct24H,
		Volume:             row.TotalVolume,
		MarketCap:          quote.Ptr(row.MarketCap),
		Rank:               row.MarketCapRank,
		ChangePercentWeek:  row.Pct7D,
		ChangePercentMonth: row.Pct30D,
		ChangePercentYear:  row.Pct1Y,
		ATH:                row.ATH,
		ATHChangePercent:   row.ATHChangePct,
		Source:             p.cfg.Name,
		UpdatedAt:          time.Now().UTC(),
	}
}

// rangeDays maps history range codes to CoinGecko day windows. Unknown
// codes fall back to the 1M window.
var rangeDays = map[string]int{
	"1D": 1,
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"6M": 180,
	"1Y": 365,
}

type chartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

func (p *Provider) FetchHistory(ctx context.Context, symbol, rng string) ([]quote.PricePoint, error) {
	days, ok := rangeDays[rng]
	if !ok {
		days = rangeDays["1M"]
	}
	meta := symbols.Crypto(symbol)

	v := url.Values{}
	v.Set("vs_currency", "usd")
	v.Set("days", fmt.Sprintf("%d", days))
	u := p.cfg.BaseURL + "/coins/" + url.PathEscape(meta.CoinGeckoID) + "/market_chart?" + v.Encode()

	var resp chartResponse
	if err := p.client.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}

	points := make([]quote.PricePoint, 0, len(resp.Prices))
	for _, pr := range resp.Prices {
		points = append(points, quote.PricePoint{
			Timestamp: time.UnixMilli(int64(pr[0])).UTC(),
			Price:     pr[1],
		})
	}
	return points, nil
}
