package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// Loader computes the value for input when the key is not cached.
type Loader[I, V any] func(ctx context.Context, input I) (V, error)

// Stats counts how a ReadThroughCache answered its lookups.
type Stats struct {
	Hits   uint64
	Loads  uint64 // loader calls, including bypassed lookups
	Errors uint64 // loader calls that failed; never stored
}

// ReadThroughCache answers from cache when it can and otherwise runs the
// loader, storing successful results. A nil cache bypasses memoization.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache CacheManager[K, V]
	load  Loader[I, V]

	hits   atomic.Uint64
	loads  atomic.Uint64
	errors atomic.Uint64
}

// NewReadThroughCache pairs a cache with the loader that fills it.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load Loader[I, V]) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load}
}

// Get returns the cached value for key, or loads it from input and caches it
// for ttl.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	if r.cache != nil {
		if value, ok := r.cache.Get(ctx, key); ok {
			r.hits.Add(1)
			return value, nil
		}
	}

	r.loads.Add(1)
	value, err := r.load(ctx, input)
	if err != nil {
		r.errors.Add(1)
		return value, err
	}
	if r.cache != nil {
		r.cache.Set(ctx, key, value, ttl)
	}
	return value, nil
}

// Stats returns the lookup counters.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Loads:  r.loads.Load(),
		Errors: r.errors.Load(),
	}
}

// Flush empties the underlying cache. Counters are kept.
func (r *ReadThroughCache[K, V, I]) Flush(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Flush(ctx)
}
