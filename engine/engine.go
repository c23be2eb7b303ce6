package engine

import (
	"context"
	"errors"

	"github.com/krisalay/lfu-cache/logflags"
	"github.com/krisalay/lfu-cache/types"
	"github.com/krisalay/lfu-cache/writepolicy"
	"github.com/sirupsen/logrus"
)

// ErrNoLoader is returned by Load when the cache has no backing store.
var ErrNoLoader = errors.New("no loader configured")

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache around eviction, NOT storage.

It decides:
- How data is loaded on cache miss
- How writes and evictions are propagated to the backing store
- How metrics are recorded

It does NOT:
- Store data
- Handle sharding
- Handle locking
- Decide eviction order
*/
type CacheEngine struct {

	// Loader is how the cache talks to the outside world when it does NOT have the data.
	// This enables "read-through caching". If nil, a miss is final.
	Loader types.Loader

	// WritePolicy decides what the backing store hears about writes and evictions.
	// If nil, cache writes stay only in memory and evicted values are gone.
	WritePolicy writepolicy.WritePolicy

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	Log *logrus.Entry
}

// NewCacheEngine creates a CacheEngine. Any argument may be nil.
func NewCacheEngine(
	loader types.Loader,
	writePolicy writepolicy.WritePolicy,
	metrics types.Metrics,
) *CacheEngine {

	// Ensure metrics is always non-nil
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}

	return &CacheEngine{
		Loader:      loader,
		WritePolicy: writePolicy,
		Metrics:     metrics,
		Log:         logflags.CacheLogger(),
	}
}

// OnWrite is called after a value is stored in the cache.
func (e *CacheEngine) OnWrite(ctx context.Context, key string, value any) {
	if e.WritePolicy != nil {
		e.WritePolicy.OnWrite(ctx, key, value)
	}
}

// OnEvict is called, outside any shard lock, for every entry the cache evicted.
func (e *CacheEngine) OnEvict(ctx context.Context, key string, value any) {
	e.Metrics.Eviction()
	e.Log.WithField("key", key).Debug("evicted")
	if e.WritePolicy != nil {
		e.WritePolicy.OnEvict(ctx, key, value)
	}
}

// OnFlush is called at shutdown for every entry still cached.
func (e *CacheEngine) OnFlush(ctx context.Context, key string, value any) {
	if e.WritePolicy != nil {
		e.WritePolicy.OnFlush(ctx, key, value)
	}
}

/*
Load is used when the cache does NOT have the data.

This usually means:
- A database call
- A network request
*/
func (e *CacheEngine) Load(ctx context.Context, key string) (any, error) {
	if e.Loader == nil {
		return nil, ErrNoLoader
	}
	return e.Loader.Load(ctx, key)
}

// Close shuts the write policy down, flushing pending write-backs.
func (e *CacheEngine) Close() {
	if e.WritePolicy != nil {
		e.WritePolicy.Close()
	}
}
