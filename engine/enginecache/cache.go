// Package enginecache implements a process-wide cache of constructed
// values: a concurrent keyed map whose get-or-insert guarantees the
// factory runs at most once per key, built on golang.org/x/sync's
// singleflight.Group.
package enginecache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache maps a bundle fingerprint to a previously built *T, ensuring a
// given key's factory runs at most once even under concurrent callers.
type Cache[T any] struct {
	sf    singleflight.Group
	mu    sync.RWMutex
	items map[string]*T
}

// New creates an empty Cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{items: make(map[string]*T)}
}

// GetOrCreate returns the cached value for key if present; otherwise
// it calls factory exactly once across all concurrent callers sharing
// key, stores the result, and returns it to every waiter.
func (c *Cache[T]) GetOrCreate(key string, factory func() (*T, error)) (*T, error) {
	c.mu.RLock()
	if v, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		c.mu.RLock()
		if v, ok := c.items[key]; ok {
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		built, err := factory()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.items[key] = built
		c.mu.Unlock()
		return built, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// Size reports the number of entries currently cached.
func (c *Cache[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
