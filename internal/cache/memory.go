package cache

import (
	"context"
	"sync"
	"time"
)

// entry stores one cached payload with its expiry.
type entry struct {
	expiresAt time.Time
	value     []byte
}

// Memory is an in-process TTL map used when redis is not configured.
// Expired entries are dropped lazily on read and swept opportunistically
// on write.
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry

	// now is swappable for TTL tests.
	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok || m.now().After(e.expiresAt) {
		return nil, ErrMiss
	}
	// copy so callers cannot mutate the cached payload
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.items[key] = entry{expiresAt: now.Add(ttl), value: v}
	// best-effort sweep of whatever is already stale
	for k, e := range m.items {
		if now.After(e.expiresAt) {
			delete(m.items, k)
		}
	}
	m.mu.Unlock()
	return nil
}
