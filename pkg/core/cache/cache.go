// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     cache
// Description: Bounded in-memory cache with TTL, used for parsed programs
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	expiration time.Time
	lastUsed   time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiration.IsZero() && now.After(e.expiration)
}

// Cache is a thread-safe in-memory cache with TTL support. Expired entries
// are dropped when they are read or when room is needed.
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration // zero keeps entries until evicted
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 1024,
		TTL:      10 * time.Minute,
	}
}

// New creates a new cache instance
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	return &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.items[key]
	if ok && e.expired(now) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	e.lastUsed = now
	return e.value, true
}

// Set stores a value with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evict(now)
	}

	e := &entry[V]{value: value, lastUsed: now}
	if c.ttl > 0 {
		e.expiration = now.Add(c.ttl)
	}
	c.items[key] = e
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics; hitRate is a percentage
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits, misses = c.hits, c.misses
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// evict drops expired entries, or the least recently used one if none
// expired. Must be called with the lock held.
func (c *Cache[V]) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	removed := false

	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			removed = true
			continue
		}
		if oldestKey == "" || e.lastUsed.Before(oldest) {
			oldestKey, oldest = key, e.lastUsed
		}
	}

	if !removed && oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
