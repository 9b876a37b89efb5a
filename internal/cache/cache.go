// Package cache is the cache-aside byte store consulted before provider
// calls. Entries expire after their TTL and are treated as absent on the
// next read. No eviction beyond TTL expiry.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss reports an absent or expired entry.
var ErrMiss = errors.New("cache: miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
