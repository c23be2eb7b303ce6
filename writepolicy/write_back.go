package writepolicy

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/krisalay/lfu-cache/logflags"
	"github.com/krisalay/lfu-cache/types"
	"github.com/sirupsen/logrus"
)

// This file implements the "write-back" policy.

// writeReq represents one evicted entry that needs to be sent to the backing store.
type writeReq struct {
	ctx   context.Context
	key   string
	value any
}

/*
WriteBackPolicy persists entries asynchronously once they leave the cache:
when they are evicted, or when the cache flushes everything it still holds
at shutdown.

An evicted value may be the only copy left, so nothing is ever dropped.
When the queue is full the caller waits for the worker.
*/
type WriteBackPolicy struct {

	// store is the backing store (DB, API, etc.)
	store types.Loader

	// ch is a buffered channel that holds pending write requests.
	// Buffering lets bursts of evictions go through without waiting on the store.
	ch chan writeReq

	// wg is used to wait for the worker to finish during shutdown.
	wg sync.WaitGroup

	closeOnce sync.Once

	// waits counts enqueues that found the queue full.
	waits atomic.Int64

	log *logrus.Entry
}

// NewWriteBackPolicy creates a new write-back policy with a queue of buffer entries.
func NewWriteBackPolicy(store types.Loader, buffer int) *WriteBackPolicy {
	w := &WriteBackPolicy{
		store: store,
		ch:    make(chan writeReq, buffer),
		log:   logflags.WritebackLogger().WithField("policy", "write-back"),
	}

	// Start one background worker
	w.wg.Add(1)
	go w.worker()

	return w
}

// OnWrite does nothing: the value lives in the cache until it is evicted.
func (w *WriteBackPolicy) OnWrite(context.Context, string, any) {}

// OnEvict queues the evicted entry for the worker, waiting for room if
// the queue is full.
func (w *WriteBackPolicy) OnEvict(ctx context.Context, key string, value any) {
	w.enqueue(writeReq{ctx: context.WithoutCancel(ctx), key: key, value: value})
}

// OnFlush queues an entry the cache still holds at shutdown.
func (w *WriteBackPolicy) OnFlush(ctx context.Context, key string, value any) {
	w.enqueue(writeReq{ctx: context.WithoutCancel(ctx), key: key, value: value})
}

func (w *WriteBackPolicy) enqueue(req writeReq) {
	select {
	case w.ch <- req:
		return
	default:
	}

	// Backpressure: the store is behind, so the writer slows down with it.
	w.waits.Add(1)
	w.log.WithField("key", req.key).Debug("write-back queue full, waiting")
	w.ch <- req
}

// Waits returns how many writes had to wait for room in the queue.
func (w *WriteBackPolicy) Waits() int64 {
	return w.waits.Load()
}

// worker drains the queue into the backing store.
func (w *WriteBackPolicy) worker() {
	defer w.wg.Done()

	for req := range w.ch {
		if err := w.store.Put(req.ctx, req.key, req.value); err != nil {
			w.log.WithError(err).WithField("key", req.key).Error("write-back failed")
			continue
		}
		w.log.WithField("key", req.key).Debug("written back")
	}
}

/*
Close shuts down the write-back policy gracefully.
------------------
1. Close the channel (no more writes accepted)
2. Wait for the worker to finish processing queued writes

Without this, pending writes could be lost when the application shuts down.
Calling Close more than once is safe. OnEvict and OnFlush must not be called after Close.
*/
func (w *WriteBackPolicy) Close() {
	w.closeOnce.Do(func() {
		close(w.ch)
		w.wg.Wait()
	})
}
