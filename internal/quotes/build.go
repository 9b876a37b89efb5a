package quotes

import (
	"log/slog"
	"time"

	"quotefeed/internal/cache"
	"quotefeed/internal/config"
	"quotefeed/internal/httpx"
	"quotefeed/internal/provider"
	"quotefeed/internal/provider/alphavantage"
	"quotefeed/internal/provider/binance"
	"quotefeed/internal/provider/coingecko"
	"quotefeed/internal/provider/coinmarketcap"
	"quotefeed/internal/provider/polygon"
	"quotefeed/internal/provider/ratelimit"
	"quotefeed/internal/provider/yahoo"
	"quotefeed/internal/quote"
	"quotefeed/internal/resolve"
)

// Constructors translate the injected config into a fixed provider set.
// Which providers participate is decided here, once; the resolver never
// consults configuration.

// NewStock builds the equity service: Yahoo always (key-free), Alpha
// Vantage and Polygon only when their credentials are configured. Yahoo
// also serves history.
func NewStock(cfg config.Config, c cache.Cache, hc *httpx.Client, log *slog.Logger) *Service {
	var providers []provider.Provider
	var history provider.HistoryProvider

	if cfg.Yahoo.Enabled {
		y := yahoo.New(yahoo.Config{BaseURL: cfg.Yahoo.Endpoint}, hc)
		tb := bucket(cfg.Yahoo)
		providers = append(providers, limited(y, tb))
		history = ratelimit.NewHistory(y, tb)
	}
	if cfg.AlphaVantage.Enabled && cfg.AlphaVantage.APIKey != "" {
		av := alphavantage.New(alphavantage.Config{
			BaseURL: cfg.AlphaVantage.Endpoint,
			APIKey:  cfg.AlphaVantage.APIKey,
		}, hc)
		providers = append(providers, limited(av, bucket(cfg.AlphaVantage)))
	}
	if cfg.Polygon.Enabled && cfg.Polygon.APIKey != "" {
		pg := polygon.New(polygon.Config{
			BaseURL: cfg.Polygon.Endpoint,
			APIKey:  cfg.Polygon.APIKey,
		}, hc)
		providers = append(providers, limited(pg, bucket(cfg.Polygon)))
	}

	return assemble(quote.Stock, cfg, c, providers, nil, history, log)
}

// NewCrypto builds the crypto service: CoinGecko and Binance always
// (key-free), CoinMarketCap only with a credential. CoinGecko serves the
// native batch endpoint and history.
func NewCrypto(cfg config.Config, c cache.Cache, hc *httpx.Client, log *slog.Logger) *Service {
	var providers []provider.Provider
	var batch provider.BatchProvider
	var history provider.HistoryProvider

	if cfg.CoinGecko.Enabled {
		cg := coingecko.New(coingecko.Config{BaseURL: cfg.CoinGecko.Endpoint}, hc)
		tb := bucket(cfg.CoinGecko)
		providers = append(providers, limited(cg, tb))
		batch = ratelimit.NewBatch(cg, tb)
		history = ratelimit.NewHistory(cg, tb)
	}
	if cfg.Binance.Enabled {
		bn := binance.New(binance.Config{BaseURL: cfg.Binance.Endpoint}, hc)
		providers = append(providers, limited(bn, bucket(cfg.Binance)))
	}
	if cfg.CoinMarketCap.Enabled && cfg.CoinMarketCap.APIKey != "" {
		cmc := coinmarketcap.New(coinmarketcap.Config{
			BaseURL: cfg.CoinMarketCap.Endpoint,
			APIKey:  cfg.CoinMarketCap.APIKey,
		}, hc)
		providers = append(providers, limited(cmc, bucket(cfg.CoinMarketCap)))
	}

	return assemble(quote.Crypto, cfg, c, providers, batch, history, log)
}

func assemble(class quote.AssetClass, cfg config.Config, c cache.Cache,
	providers []provider.Provider, batch provider.BatchProvider,
	history provider.HistoryProvider, log *slog.Logger) *Service {

	return &Service{
		class:      class,
		cache:      c,
		historyTTL: time.Duration(cfg.Cache.HistoryTTLSec) * time.Second,
		history:    history,
		log:        log,
		resolver: &resolve.Resolver{
			Class:     class,
			Cache:     c,
			TTL:       time.Duration(cfg.Cache.QuoteTTLSec) * time.Second,
			Providers: providers,
			Batch:     batch,
			Log:       log,
		},
	}
}

// bucket builds one shared token bucket per upstream, or nil when the
// upstream is unmetered.
func bucket(pc config.Provider) *ratelimit.TokenBucket {
	if pc.MaxRequestsPerMinute <= 0 {
		return nil
	}
	return ratelimit.PerMinute(pc.MaxRequestsPerMinute, pc.Burst)
}

func limited(p provider.Provider, tb *ratelimit.TokenBucket) provider.Provider {
	if tb == nil {
		return p
	}
	return &ratelimit.Provider{P: p, TB: tb}
}
