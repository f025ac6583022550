package cas

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// MemoryStats are the counters of a MemoryCache.
type MemoryStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// MemoryCache is a fixed-capacity, strictly least-recently-used map.
// All methods are safe for concurrent use.
type MemoryCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front is most recent

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type memoryEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewMemoryCache creates a cache holding at most capacity entries.
// A capacity below one is raised to one.
func NewMemoryCache[K comparable, V any](capacity int) *MemoryCache[K, V] {
	capacity = max(capacity, 1)
	return &MemoryCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *MemoryCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		c.hits.Add(1)
		return elem.Value.(*memoryEntry[K, V]).value, true
	}

	c.misses.Add(1)
	var zero V
	return zero, false
}

// Put stores value under key, evicting the least recently used entry when full.
func (c *MemoryCache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*memoryEntry[K, V]).value = value
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
			c.evictions.Add(1)
		}
	}

	c.items[key] = c.order.PushFront(&memoryEntry[K, V]{key: key, value: value})
}

// Remove drops key and reports whether it was present.
func (c *MemoryCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if ok {
		c.removeElement(elem)
	}
	return ok
}

// Clear drops every entry. Counters are kept.
func (c *MemoryCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

// Len returns the number of entries.
func (c *MemoryCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Capacity returns the maximum number of entries.
func (c *MemoryCache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns the hit, miss and eviction counters.
func (c *MemoryCache[K, V]) Stats() MemoryStats {
	return MemoryStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// removeElement must be called with c.mu held.
func (c *MemoryCache[K, V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*memoryEntry[K, V]).key)
}
