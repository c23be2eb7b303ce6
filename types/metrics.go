package types

import "sync/atomic"

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle. The cache will call these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when the cache successfully returns a value.
	Hit()

	// Miss is called when the cache does NOT find a key in memory.
	Miss()

	// Load is called when a miss was served by the backing store.
	Load()

	// Eviction is called when a key is removed because the cache is full and needs space.
	Eviction()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

If someone does not care about metrics, the cache still works without
nil checks everywhere.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()      {}
func (NoopMetrics) Miss()     {}
func (NoopMetrics) Load()     {}
func (NoopMetrics) Eviction() {}

// Counters is a Metrics implementation backed by atomic counters.
// It is safe to share across shards and goroutines.
type Counters struct {
	hits      atomic.Int64
	misses    atomic.Int64
	loads     atomic.Int64
	evictions atomic.Int64
}

func (c *Counters) Hit()      { c.hits.Add(1) }
func (c *Counters) Miss()     { c.misses.Add(1) }
func (c *Counters) Load()     { c.loads.Add(1) }
func (c *Counters) Eviction() { c.evictions.Add(1) }

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Hits      int64
	Misses    int64
	Loads     int64
	Evictions int64
}

// HitRatio is hits / (hits + misses), or 0 before any lookup.
func (s Snapshot) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Loads:     c.loads.Load(),
		Evictions: c.evictions.Load(),
	}
}
