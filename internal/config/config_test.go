package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 90, cfg.Cache.QuoteTTLSec)
	assert.Equal(t, 900, cfg.Cache.HistoryTTLSec)
	assert.True(t, cfg.Yahoo.Enabled)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "server": {"port": "9090", "request_timeout_sec": 30, "log_level": "debug"},
	  "cache": {"quote_ttl_sec": 15, "history_ttl_sec": 900},
	  "binance": {"enabled": false},
	  "polygon": {"enabled": true, "api_key": "pk_test", "max_requests_per_minute": 5, "burst": 1}
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 15, cfg.Cache.QuoteTTLSec)
	assert.False(t, cfg.Binance.Enabled)
	assert.Equal(t, "pk_test", cfg.Polygon.APIKey)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("QUOTE_TTL_SEC", "45")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("POLYGON_API_KEY", "pk_env")
	t.Setenv("COINGECKO_ENDPOINT", "http://localhost:9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 45, cfg.Cache.QuoteTTLSec)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled, "setting an address implies enabling redis")
	assert.Equal(t, "pk_env", cfg.Polygon.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.CoinGecko.Endpoint)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("yes", false))
	assert.True(t, parseBool("TRUE", false))
	assert.False(t, parseBool("0", true))
	assert.True(t, parseBool("whatever", true))
	assert.False(t, parseBool("whatever", false))
}
