// Package cache provides a thread-safe LRU cache used by backends to keep
// converted resources (image buffers, glyph outlines) between draws.
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the capacity used when New is given a non-positive one.
const DefaultCapacity = 256

// Stats holds cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is an LRU cache bounded by entry count.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*list.Element
	order    *list.List // front is most recently used
	stats    Stats
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.stats.Hits++
		return el.Value.(*entry[K, V]).value, true
	}
	c.stats.Misses++
	var zero V
	return zero, false
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *Cache[K, V]) setLocked(key K, value V) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry[K, V]).key)
		c.stats.Evictions++
	}
}

// GetOrCreate returns the cached value for key, calling create and caching
// its result on a miss. create runs with the cache locked and must not call
// back into the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		c.stats.Hits++
		return el.Value.(*entry[K, V]).value
	}
	c.stats.Misses++
	v := create()
	c.setLocked(key, v)
	return v
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.order.Init()
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
