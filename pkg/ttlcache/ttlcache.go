package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a mutex-guarded map with a fixed TTL and a hard capacity.
// Expired entries are evicted lazily on access; inserting at capacity evicts
// the entry with the oldest insertion time first. The linear eviction scan is
// fine at the capacities this service runs with (hundreds of items).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]entry[V]
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// New creates a Cache with the given TTL and capacity. A capacity of zero or
// less means unbounded.
func New[K comparable, V any](ttl time.Duration, capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		items:    make(map[K]entry[V]),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.items, key)
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, evicting the oldest entry first when the cache
// is at capacity and key is not already present.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && c.capacity > 0 && len(c.items) >= c.capacity {
		c.evictOldestLocked()
	}
	c.items[key] = entry[V]{value: value, insertedAt: c.now()}
}

// Len returns the number of stored entries, including not-yet-purged expired ones.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache[K, V]) evictOldestLocked() {
	var (
		oldestKey K
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.items {
		if !found || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			found = true
		}
	}
	if found {
		delete(c.items, oldestKey)
	}
}
