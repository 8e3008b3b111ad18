package cache

import (
	"sync"
	"time"
)

// Clock lets tests control expiry deterministically.
type Clock func() time.Time

// TTL is a concurrency-safe key→value map with per-entry expiry.
// Writes are last-writer-wins; reads never block on anything but the lock.
type TTL[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     Clock
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func NewTTL[V any](ttl time.Duration, clock Clock) *TTL[V] {
	if clock == nil {
		clock = time.Now
	}
	return &TTL[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     clock,
	}
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Sweep drops expired entries. Callers decide when; nothing runs in the
// background so tests stay deterministic.
func (c *TTL[V]) Sweep() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
