package memory

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	size      int
}

// LRUTTL is a threadsafe LRU cache with per-entry TTL and an optional byte
// budget.
type LRUTTL[K comparable, V any] struct {
	mu         sync.Mutex
	ll         *list.List
	items      map[K]*list.Element
	maxEntries int
	maxBytes   int
	totalBytes int
	ttl        time.Duration
}

// NewLRUTTL builds a cache holding at most maxEntries entries (and maxBytes
// bytes when maxBytes > 0) for ttl each.
func NewLRUTTL[K comparable, V any](maxEntries int, maxBytes int, ttl time.Duration) *LRUTTL[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &LRUTTL[K, V]{
		ll:         list.New(),
		items:      make(map[K]*list.Element),
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
		ttl:        ttl,
	}
}

// Get returns the cached value and refreshes its recency. Expired entries
// are dropped on access.
func (c *LRUTTL[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, ok := c.items[key]
	if !ok {
		return zero, false
	}
	ent := ele.Value.(*entry[K, V])
	if time.Now().After(ent.expiresAt) {
		c.removeElement(ele)
		return zero, false
	}
	c.ll.MoveToFront(ele)
	return ent.value, true
}

// Add inserts or replaces a value. size is the entry's contribution to the
// byte budget; pass 0 when the budget is unused.
func (c *LRUTTL[K, V]) Add(key K, value V, size int) {
	if c == nil {
		return
	}
	if size < 0 {
		size = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		c.removeElement(ele)
	}
	ent := &entry[K, V]{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
		size:      size,
	}
	ele := c.ll.PushFront(ent)
	c.items[key] = ele
	c.totalBytes += size

	for c.ll.Len() > c.maxEntries {
		c.removeOldest()
	}
	if c.maxBytes > 0 {
		for c.totalBytes > c.maxBytes && c.ll.Len() > 1 {
			c.removeOldest()
		}
	}
}

// Remove drops the entry for key, if present.
func (c *LRUTTL[K, V]) Remove(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.items[key]; ok {
		c.removeElement(ele)
	}
}

// Len returns the live entry count.
func (c *LRUTTL[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *LRUTTL[K, V]) removeOldest() {
	if ele := c.ll.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRUTTL[K, V]) removeElement(ele *list.Element) {
	ent := ele.Value.(*entry[K, V])
	c.ll.Remove(ele)
	delete(c.items, ent.key)
	c.totalBytes -= ent.size
}
