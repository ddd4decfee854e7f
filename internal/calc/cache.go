// Package calc wraps the pure calculators with the guards a dashboard needs:
// a TTL cache, never-throw execution, batch evaluation with per-entry
// fallbacks, and call-rate utilities.
package calc

import (
	"sync"
	"time"
)

type cacheEntry struct {
	data      any
	timestamp time.Time
	ttl       time.Duration
}

// Cache is a string-keyed TTL cache. It is always constructed explicitly and
// injected; there is no package-level instance, so tests get isolated caches.
// Staleness is checked lazily on read; nothing sweeps in the background.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached value if present and not past its TTL. An expired
// entry is dropped on the spot.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.ttl > 0 && c.now().Sub(e.timestamp) > e.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a Set may have raced the expiry.
		if cur, ok := c.entries[key]; ok && cur.timestamp.Equal(e.timestamp) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.data, true
}

// Set stores data under key. A ttl of zero or less means the entry never
// expires on its own and lives until Clear.
func (c *Cache) Set(key string, data any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, timestamp: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of live entries, expired or not. Intended for tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrCompute returns the cached value for key or computes, stores, and
// returns it.
func GetOrCompute[T any](c *Cache, key string, ttl time.Duration, compute func() T) T {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	v := compute()
	c.Set(key, v, ttl)
	return v
}
