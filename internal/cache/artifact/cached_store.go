// Package artifact wraps an artifact store with an in-memory LRU+TTL cache
// so repeated document views don't re-read the origin.
package artifact

import (
	"context"
	"sync/atomic"
	"time"

	memcache "flattenrepo/internal/cache/memory"
	artifactrepo "flattenrepo/internal/gateway/repository/artifact"
)

// Store aliases the repository interface so call sites can treat the cached
// wrapper as a drop-in.
type Store = artifactrepo.Store

// CacheConfig bounds the document cache.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
	MaxBytes   int
}

// DefaultCacheConfig suits a single-node gateway.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:        5 * time.Minute,
		MaxEntries: 256,
		MaxBytes:   64 * 1024 * 1024, // 64MiB
	}
}

// MetricsSnapshot is a point-in-time copy of the cache counters.
type MetricsSnapshot struct {
	Hits         uint64
	Misses       uint64
	OriginReads  uint64
	OriginWrites uint64
}

// CachedStore serves Get from memory when possible and keeps the cache
// coherent across Put and Delete.
type CachedStore struct {
	origin Store
	docs   *memcache.LRUTTL[string, []byte]

	hits         atomic.Uint64
	misses       atomic.Uint64
	originReads  atomic.Uint64
	originWrites atomic.Uint64
}

// NewCachedStore wraps origin.
func NewCachedStore(origin Store, cfg CacheConfig) *CachedStore {
	if cfg.MaxEntries <= 0 {
		cfg = DefaultCacheConfig()
	}
	return &CachedStore{
		origin: origin,
		docs:   memcache.NewLRUTTL[string, []byte](cfg.MaxEntries, cfg.MaxBytes, cfg.TTL),
	}
}

func (c *CachedStore) Put(ctx context.Context, taskID string, doc []byte) error {
	c.originWrites.Add(1)
	if err := c.origin.Put(ctx, taskID, doc); err != nil {
		return err
	}
	c.docs.Add(taskID, doc, len(doc))
	return nil
}

func (c *CachedStore) Get(ctx context.Context, taskID string) ([]byte, error) {
	if doc, ok := c.docs.Get(taskID); ok {
		c.hits.Add(1)
		return doc, nil
	}
	c.misses.Add(1)
	c.originReads.Add(1)
	doc, err := c.origin.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	c.docs.Add(taskID, doc, len(doc))
	return doc, nil
}

func (c *CachedStore) Delete(ctx context.Context, taskID string) error {
	c.docs.Remove(taskID)
	return c.origin.Delete(ctx, taskID)
}

// Metrics returns a snapshot of the cache counters.
func (c *CachedStore) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		OriginReads:  c.originReads.Load(),
		OriginWrites: c.originWrites.Load(),
	}
}
