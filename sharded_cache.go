package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	eng "github.com/krisalay/lfu-cache/engine"
	evict "github.com/krisalay/lfu-cache/eviction"
	"github.com/krisalay/lfu-cache/shard"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned by Get when neither the cache nor the backing
// store has the key.
var ErrNotFound = errors.New("key not found")

/*
ShardedCache is the main cache implementation.
This struct is the orchestrator that connects:
- shards, each an LFU (or LRU) store behind its own lock
- loading on miss
- write policies for written and evicted values
- metrics
*/
type ShardedCache struct {
	// shards are the actual storage units. Each shard is an independent mini-cache.
	shards []*shard.Shard

	// engine contains the "rules" of the cache: loader, write policy, metrics.
	engine *eng.CacheEngine

	// selector decides which shard a key should go to.
	selector shard.Selector

	// capacity is the maximum number of entries in the cache. This is divided across shards.
	capacity int

	// singleflight prevents multiple goroutines from loading the same key from the backing store simultaneously.
	sf singleflight.Group

	closeOnce sync.Once
}

// NewShardedCache creates a cache of at most capacity entries spread over
// the given number of shards. The shard count is clamped to [1, capacity]
// so that every shard can hold at least one entry; capacity 0 gives a
// single shard that stores nothing.
func NewShardedCache(
	shards int,
	capacity int,
	eviction evict.PolicyType,
	engine *eng.CacheEngine,
) *ShardedCache {
	if capacity < 0 {
		panic(fmt.Sprintf("cache: negative capacity %d", capacity))
	}
	shards = max(1, min(shards, capacity))
	if engine == nil {
		engine = eng.NewCacheEngine(nil, nil, nil)
	}

	s := make([]*shard.Shard, shards)
	for i, c := range shard.Split(capacity, shards) {
		// Each shard gets its own eviction policy instance
		s[i] = shard.NewShard(eviction, c)
	}

	return &ShardedCache{
		shards:   s,
		engine:   engine,
		selector: shard.HashSelector{},
		capacity: capacity,
	}
}

/*
Get retrieves a value from the cache.

On a miss the value is loaded from the backing store (once per key no
matter how many goroutines ask) and stored only if the key is still
absent. A Put that lands while the load is in flight wins over the loaded
value, and that newer value is what Get returns. ErrNotFound means the
store does not have the key either.
*/
func (c *ShardedCache) Get(ctx context.Context, key string) (any, error) {
	sh := c.selector.Select(key, c.shards)

	if v, ok := sh.Get(key); ok {
		c.engine.Metrics.Hit()
		return v, nil
	}

	c.engine.Metrics.Miss()
	if c.engine.Loader == nil {
		return nil, ErrNotFound
	}

	val, err, shared := c.sf.Do(key, func() (any, error) {
		v, err := c.engine.Load(ctx, key)
		if err != nil || v == nil {
			return v, err
		}
		c.engine.Metrics.Load()

		actual, evicted := sh.PutIfAbsent(key, v)
		c.evicted(ctx, evicted)
		return actual, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", key, err)
	}
	if val == nil {
		return nil, ErrNotFound
	}
	c.engine.Log.WithField("key", key).WithField("shared", shared).Debug("loaded on miss")
	return val, nil
}

/*
Put stores a value in the cache.

If the key's shard is full and the key is new, one entry is evicted
first. Evicted entries are handed to the write policy after the shard
lock is released.
*/
func (c *ShardedCache) Put(ctx context.Context, key string, value any) error {
	sh := c.selector.Select(key, c.shards)

	c.evicted(ctx, sh.Put(key, value))
	c.engine.OnWrite(ctx, key, value)
	return nil
}

// evicted hands what a shard dropped to the engine, outside the shard lock.
func (c *ShardedCache) evicted(ctx context.Context, entries []shard.Evicted) {
	for _, e := range entries {
		c.engine.OnEvict(ctx, e.Key, e.Value)
	}
}

// Len returns how many entries are cached across all shards.
func (c *ShardedCache) Len() int {
	n := 0
	for _, sh := range c.shards {
		n += sh.Len()
	}
	return n
}

// Cap returns the total capacity.
func (c *ShardedCache) Cap() int { return c.capacity }

/*
Close gracefully shuts down the cache.

Every entry still cached is handed to the write policy first, so a
write-back cache does not lose values that were never evicted. Then the
write policy is closed, which waits for pending writes. Calling Close more
than once is safe; the cache must not be used after Close.
*/
func (c *ShardedCache) Close() {
	c.closeOnce.Do(func() {
		ctx := context.Background()
		for _, sh := range c.shards {
			for _, e := range sh.Entries() {
				c.engine.OnFlush(ctx, e.Key, e.Value)
			}
		}
		c.engine.Close()
	})
}
