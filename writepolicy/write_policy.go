package writepolicy

import "context"

/*
This file defines what a "write policy" is.

The cache only holds a bounded number of entries. When it drops one to
make room, somebody has to decide whether the backing store needs to hear
about it:
- Write-through keeps the store current on every write, so evictions are free
- Write-back only touches the store when an entry leaves the cache,
  by eviction or because the cache is shutting down
*/

/*
WritePolicy is the contract that all write policies must follow.
The sharded cache does not care which policy is used. It simply calls these methods,
never while holding a shard lock.
*/
type WritePolicy interface {

	/*
		OnWrite is called whenever the cache writes a key.
	*/
	OnWrite(ctx context.Context, key string, value any)

	/*
		OnEvict is called with every entry the cache evicted.
	*/
	OnEvict(ctx context.Context, key string, value any)

	/*
		OnFlush is called at shutdown, before Close, with every entry
		still in the cache.
	*/
	OnFlush(ctx context.Context, key string, value any)

	/*
		Close is called when the cache is shutting down.
	*/
	Close()
}
