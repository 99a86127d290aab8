package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source reports where GetOrFetch found a value.
type Source string

const (
	SourceCache Source = "cache"
	SourceFetch Source = "fetch"
)

type item[V any] struct {
	val       V
	expiresAt time.Time
}

// Cache provides a TTL cache with singleflight coalescing per key.
type Cache[V any] struct {
	mu    sync.RWMutex
	items map[string]item[V]
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{items: make(map[string]item[V]), ttl: ttl, now: time.Now}
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[key]
	if !ok || !c.now().Before(it.expiresAt) {
		var zero V
		return zero, false
	}
	return it.val, true
}

// Set stores val under key for one TTL.
func (c *Cache[V]) Set(key string, val V) {
	c.mu.Lock()
	c.items[key] = item[V]{val: val, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Delete drops key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// GetOrFetch returns a cached value if valid; otherwise it coalesces concurrent
// fetches for the same key using singleflight and stores the result.
// Failed fetches are not cached.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, Source, error) {
	if v, ok := c.Get(key); ok {
		return v, SourceCache, nil
	}

	res, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, "", err
	}
	return res.(V), SourceFetch, nil
}

// Purge removes expired entries and returns how many were dropped.
func (c *Cache[V]) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, it := range c.items {
		if !now.Before(it.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}

// Len returns the number of items in the cache, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
