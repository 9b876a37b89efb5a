package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Port              string `json:"port"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	LogLevel          string `json:"log_level"`
}

type Redis struct {
	Enabled  bool   `json:"enabled"`
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

type Cache struct {
	QuoteTTLSec   int `json:"quote_ttl_sec"`
	HistoryTTLSec int `json:"history_ttl_sec"`
}

// Provider is one upstream's block. Key-gated providers count as enabled
// only when an API key is present too.
type Provider struct {
	Enabled              bool   `json:"enabled"`
	APIKey               string `json:"api_key"`
	Endpoint             string `json:"endpoint"`
	MaxRequestsPerMinute int    `json:"max_requests_per_minute"`
	Burst                int    `json:"burst"`
}

type Config struct {
	Server        Server   `json:"server"`
	Redis         Redis    `json:"redis"`
	Cache         Cache    `json:"cache"`
	Yahoo         Provider `json:"yahoo"`
	AlphaVantage  Provider `json:"alpha_vantage"`
	Polygon       Provider `json:"polygon"`
	CoinGecko     Provider `json:"coingecko"`
	Binance       Provider `json:"binance"`
	CoinMarketCap Provider `json:"coinmarketcap"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 30, LogLevel: "info"},
		Redis:  Redis{Enabled: false, Addr: "localhost:6379"},
		Cache:  Cache{QuoteTTLSec: 90, HistoryTTLSec: 900},

		Yahoo:     Provider{Enabled: true, MaxRequestsPerMinute: 100, Burst: 10},
		CoinGecko: Provider{Enabled: true, MaxRequestsPerMinute: 30, Burst: 5},
		Binance:   Provider{Enabled: true},

		// Key-gated fallbacks; stay dormant until a key is configured.
		AlphaVantage:  Provider{Enabled: true, MaxRequestsPerMinute: 5, Burst: 1},
		Polygon:       Provider{Enabled: true, MaxRequestsPerMinute: 5, Burst: 1},
		CoinMarketCap: Provider{Enabled: true, MaxRequestsPerMinute: 30, Burst: 5},
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields
// for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}

	if v := os.Getenv("REDIS_ENABLED"); v != "" {
		cfg.Redis.Enabled = parseBool(v, cfg.Redis.Enabled)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if x := atoi(v); x >= 0 {
			cfg.Redis.DB = x
		}
	}

	if v := os.Getenv("QUOTE_TTL_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Cache.QuoteTTLSec = x
		}
	}
	if v := os.Getenv("HISTORY_TTL_SEC"); v != "" {
		if x := atoi(v); x > 0 {
			cfg.Cache.HistoryTTLSec = x
		}
	}

	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Polygon.APIKey = v
	}
	if v := os.Getenv("COINMARKETCAP_API_KEY"); v != "" {
		cfg.CoinMarketCap.APIKey = v
	}

	if v := os.Getenv("YAHOO_ENDPOINT"); v != "" {
		cfg.Yahoo.Endpoint = v
	}
	if v := os.Getenv("COINGECKO_ENDPOINT"); v != "" {
		cfg.CoinGecko.Endpoint = v
	}
	if v := os.Getenv("BINANCE_ENDPOINT"); v != "" {
		cfg.Binance.Endpoint = v
	}
}

func atoi(s string) int {
	var x int
	fmt.Sscanf(s, "%d", &x)
	return x
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	case "0", "false", "no", "n":
		return false
	}
	return def
}
