// Package yahoo adapts the Yahoo Finance v8 chart API. It is the primary
// equity source: no API key and the only one serving history here.
package yahoo

import (
	"context"
	"errors"
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
}

type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "yahoo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Currency            string  `json:"currency"`
		Symbol              string  `json:"symbol"`
		ShortName           string  `json:"shortName"`
		LongName            string  `json:"longName"`
		MarketState         string  `json:"marketState"`
		RegularMarketPrice  float64 `json:"regularMarketPrice"`
		ChartPreviousClose  float64 `json:"chartPreviousClose"`
		PreviousClose       float64 `json:"previousClose"`
		RegularMarketVolume float64 `json:"regularMarketVolume"`
		FiftyTwoWeekHigh    float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow     float64 `json:"fiftyTwoWeekLow"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (p *Provider) chart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
	v := url.Values{}
	v.Set("range", rng)
	v.Set("interval", interval)
	u := p.cfg.BaseURL + "/v8/finance/chart/" + url.PathEscape(symbol) + "?" + v.Encode()

	var resp chartResponse
	if err := p.client.GetJSON(ctx, u, nil, &resp); err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Code == 404 {
			return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
		}
		return nil, err
	}
	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}
	return &resp.Chart.Result[0], nil
}

// FetchQuote pulls one year of dailies so the secondary-period changes can
// be computed from actual trading days alongside the live meta fields.
func (p *Provider) FetchQuote(ctx context.Context, symbol string) (*quote.Quote, error) {
	res, err := p.chart(ctx, symbol, "1y", "1d")
	if err != nil {
		return nil, err
	}
	m := res.Meta
	if m.RegularMarketPrice == 0 {
		return nil, &provider.NotFoundError{Provider: p.cfg.Name, Symbol: symbol}
	}

	price := m.RegularMarketPrice
	prev := m.PreviousClose
	if prev == 0 {
		prev = m.ChartPreviousClose
	}
	if prev == 0 {
		prev = price
	}
	change := price - prev
	changePct := 0.0
	if prev != 0 {
		changePct = change / prev * 100
	}

	name := m.ShortName
	if name == "" {
		name = m.LongName
	}

	q := &quote.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
		Volume:        m.RegularMarketVolume,
		MarketState:   m.MarketState,
		FuturesSymbol: symbols.Futures(symbol),
		Source:        p.cfg.Name,
		UpdatedAt:     time.Now().UTC(),
	}
	if m.FiftyTwoWeekHigh > 0 {
		q.High52W = quote.Ptr(m.FiftyTwoWeekHigh)
	}
	if m.FiftyTwoWeekLow > 0 {
		q.Low52W = quote.Ptr(m.FiftyTwoWeekLow)
	}
	fillPeriodChanges(q, res)
	return q, nil
}

// fillPeriodChanges derives week/month/year percent changes from the daily
// close series: 5, 21 and 252 trading days back, using the oldest close for
// the year when the listing is younger than 252 days but at least ~200.
func fillPeriodChanges(q *quote.Quote, res *chartResult) {
	if len(res.Indicators.Quote) == 0 {
		return
	}
	closes := make([]float64, 0, len(res.Timestamp))
	for _, c := range res.Indicators.Quote[0].Close {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	n := len(closes)
	if n == 0 {
		return
	}
	current := closes[n-1]

	pct := func(past float64) *float64 {
		if past == 0 {
			return nil
		}
		return quote.Ptr((current - past) / past * 100)
	}
	if n >= 5 {
		q.ChangePercentWeek = pct(closes[n-5])
	}
	if n >= 21 {
		q.ChangePercentMonth = pct(closes[n-21])
	}
	switch {
	case n >= 252:
		q.ChangePercentYear = pct(closes[n-252])
	case n >= 200:
		q.ChangePercentYear = pct(closes[0])
	}
}

// rangeParams maps history range codes to Yahoo (range, interval) pairs.
// Unknown codes fall back to the 1M mapping.
var rangeParams = map[string][2]string{
	"1D": {"1d", "5m"},
	"1W": {"5d", "30m"},
	"1M": {"1mo", "1d"},
	"3M": {"3mo", "1d"},
	"6M": {"6mo", "1d"},
	"1Y": {"1y", "1d"},
	"5Y": {"5y", "1wk"},
}

func (p *Provider) FetchHistory(ctx context.Context, symbol, rng string) ([]quote.PricePoint, error) {
	params, ok := rangeParams[rng]
	if !ok {
		params = rangeParams["1M"]
	}
	res, err := p.chart(ctx, symbol, params[0], params[1])
	if err != nil {
		return nil, err
	}
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}
	bars := res.Indicators.Quote[0]

	deref := func(vs []*float64, i int) float64 {
		if i < len(vs) && vs[i] != nil {
			return *vs[i]
		}
		return 0
	}

	points := make([]quote.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		closePx := deref(bars.Close, i)
		if closePx == 0 {
			// Yahoo pads gaps with nulls; skip them.
			continue
		}
		points = append(points, quote.PricePoint{
			Timestamp: time.Unix(ts, 0).UTC(),
			Price:     closePx,
			Open:      deref(bars.Open, i),
			High:      deref(bars.High, i),
			Low:       deref(bars.Low, i),
			Close:     closePx,
			Volume:    deref(bars.Volume, i),
		})
	}
	return points, nil
}
