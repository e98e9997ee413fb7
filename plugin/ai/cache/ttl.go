// Package cache provides a small TTL memoization cache for collaborator
// results. Eviction is opportunistic: expired entries are pruned when the
// cache grows past its capacity, not on a background schedule.
package cache

import (
	"sync"
	"time"
)

const (
	defaultCapacity = 100
	defaultTTL      = 5 * time.Minute
)

// TTLCache is a capacity-bounded cache with per-entry expiry. Thread-safe.
// Duplicate concurrent misses recomputing the same entry are acceptable;
// last write wins.
type TTLCache[V any] struct {
	mu       sync.Mutex
	entries  map[string]ttlEntry[V]
	capacity int
	ttl      time.Duration

	now func() time.Time // overridable in tests
}

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewTTLCache creates a cache with the given capacity and entry TTL.
// Non-positive arguments fall back to 100 entries / 5 minutes.
func NewTTLCache[V any](capacity int, ttl time.Duration) *TTLCache[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TTLCache[V]{
		entries:  make(map[string]ttlEntry[V]),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key with the cache's TTL, pruning expired entries
// first if the cache has outgrown its capacity.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.pruneLocked()
	}
	c.entries[key] = ttlEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// pruneLocked drops expired entries; if none have expired the oldest entries
// are dropped until the cache is back under capacity.
func (c *TTLCache[V]) pruneLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}

	for len(c.entries) >= c.capacity {
		var oldestKey string
		var oldestAt time.Time
		first := true
		for k, e := range c.entries {
			if first || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.expiresAt
				first = false
			}
		}
		delete(c.entries, oldestKey)
	}
}
