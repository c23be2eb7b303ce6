package writepolicy

import (
	"context"

	"github.com/krisalay/lfu-cache/logflags"
	"github.com/krisalay/lfu-cache/types"
	"github.com/sirupsen/logrus"
)

/*
This file implements the "write-through" policy.

Whenever the cache writes data, it immediately writes the same data to the backing store.

So the flow is: Cache write → DB write (synchronous)
*/

// WriteThroughPolicy directly forwards every cache write to the backing store.
type WriteThroughPolicy struct {

	// store is the backing store (DB, API, etc.) where data must be persisted immediately.
	store types.Loader

	log *logrus.Entry
}

// NewWriteThroughPolicy creates a new write-through policy.
func NewWriteThroughPolicy(store types.Loader) *WriteThroughPolicy {
	return &WriteThroughPolicy{
		store: store,
		log:   logflags.WritebackLogger().WithField("policy", "write-through"),
	}
}

/*
OnWrite is called whenever the cache writes a key. We immediately write the data to the backing store.
  - This call is synchronous
  - If the backing store is slow, cache writes become slow
*/
func (w *WriteThroughPolicy) OnWrite(ctx context.Context, key string, value any) {
	if err := w.store.Put(ctx, key, value); err != nil {
		w.log.WithError(err).WithField("key", key).Warn("write-through failed")
	}
}

// OnEvict does nothing: the store already has every value the cache ever held.
func (w *WriteThroughPolicy) OnEvict(context.Context, string, any) {}

// OnFlush does nothing for the same reason.
func (w *WriteThroughPolicy) OnFlush(context.Context, string, any) {}

// Close has nothing to clean up.
func (w *WriteThroughPolicy) Close() {}
