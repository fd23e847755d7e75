// Package cache keeps per-session view state between page requests.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	val     V
	touched time.Time
}

// ViewCache is a keyed store whose entries expire after ttl without a Get or Set. Expired entries
// are dropped on read and by a sweep that runs from Set at most once per ttl.
type ViewCache[V any] struct {
	mu        sync.Mutex
	store     map[string]entry[V]
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewViewCache returns an empty cache. A zero ttl keeps entries until deleted.
func NewViewCache[V any](ttl time.Duration) *ViewCache[V] {
	return &ViewCache[V]{
		store: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *ViewCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	e, ok := c.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.expired(e, now) {
		delete(c.store, key)
		var zero V
		return zero, false
	}
	e.touched = now
	c.store[key] = e
	return e.val, true
}

func (c *ViewCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.store[key] = entry[V]{val: value, touched: now}
	c.sweep(now)
}

func (c *ViewCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

// Len reports the number of held entries, expired or not.
func (c *ViewCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

func (c *ViewCache[V]) expired(e entry[V], now time.Time) bool {
	return c.ttl > 0 && now.Sub(e.touched) > c.ttl
}

// sweep must be called with mu held.
func (c *ViewCache[V]) sweep(now time.Time) {
	if c.ttl <= 0 || now.Sub(c.lastSweep) < c.ttl {
		return
	}
	c.lastSweep = now
	for k, e := range c.store {
		if c.expired(e, now) {
			delete(c.store, k)
		}
	}
}
