// fetch is a one-shot CLI for poking the resolver without the server:
// prints the resolved quote (or history/batch) as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"quotefeed/internal/cache"
	"quotefeed/internal/config"
	"quotefeed/internal/httpx"
	"quotefeed/internal/logging"
	"quotefeed/internal/quotes"
)

func main() {
	var class string
	var symbolsCSV string
	var historyRange string
	var timeout int
	var configPath string

	flag.StringVar(&class, "class", getenv("ASSET_CLASS", "stock"), "asset class: stock or crypto")
	flag.StringVar(&symbolsCSV, "symbols", getenv("SYMBOLS", "AAPL"), "comma-separated symbols; more than one triggers a batch lookup")
	flag.StringVar(&historyRange, "history", "", "fetch a history series for this range (1D, 1W, 1M, 3M, 6M, 1Y, 5Y) instead of a quote")
	flag.IntVar(&timeout, "timeout", 30, "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	log := logging.New(cfg.Server.LogLevel)
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	store := cache.NewMemory() // one-shot run, nothing to share

	var svc *quotes.Service
	switch class {
	case "crypto":
		svc = quotes.NewCrypto(cfg, store, httpClient, log)
	case "stock":
		svc = quotes.NewStock(cfg, store, httpClient, log)
	default:
		fmt.Fprintf(os.Stderr, "unknown asset class %q\n", class)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	defer cancel()

	symbols := splitCSV(symbolsCSV)
	switch {
	case len(symbols) == 0:
		fmt.Fprintln(os.Stderr, "no symbols given")
		os.Exit(2)
	case historyRange != "":
		dump(svc.History(ctx, symbols[0], historyRange))
	case len(symbols) > 1:
		dump(svc.BatchQuotes(ctx, symbols))
	default:
		q, err := svc.Quote(ctx, symbols[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		dump(q)
	}
}

func dump(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
