package shard

import (
	"sync"

	"github.com/krisalay/lfu-cache/eviction"
)

/*
This file defines what a "Shard" is. A shard is a small, independent piece of the cache.
Instead of having: One big cache and one big lock
We split the cache into many shards. Each shard:
- Holds some portion of the data
- Has its own eviction policy and capacity
- Has its own lock

Every operation on a shard takes the lock, reads included: a read bumps
the frequency and recency of the key, so it is a write to the policy.
*/

// Evicted is one entry a shard dropped to make room, or a copy of a
// stored entry handed out by Entries.
type Evicted struct {
	Key   string
	Value any
}

type Shard struct {
	mu sync.Mutex

	// policy stores the entries and decides what to evict.
	policy eviction.Policy

	// pending collects what the policy evicted during the current Put.
	// It is only touched under mu.
	pending []Evicted

	capacity int
}

func NewShard(t eviction.PolicyType, capacity int) *Shard {
	s := &Shard{capacity: capacity}
	s.policy = eviction.NewEvictionPolicy(t, capacity, func(key string, value any) {
		s.pending = append(s.pending, Evicted{Key: key, Value: value})
	})
	return s
}

// Get looks up key and records the access.
func (s *Shard) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Get(key)
}

// Put stores value and returns whatever was evicted to make room, so the
// caller can act on it after the lock is released.
func (s *Shard) Put(key string, value any) []Evicted {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.policy.Put(key, value)
	return s.takePending()
}

// PutIfAbsent stores value only if key is not present and returns the
// value the shard holds for key afterwards, plus anything evicted.
func (s *Shard) PutIfAbsent(key string, value any) (any, []Evicted) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actual, _ := s.policy.PutIfAbsent(key, value)
	return actual, s.takePending()
}

// Entries returns a copy of every stored entry.
func (s *Shard) Entries() []Evicted {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Evicted, 0, s.policy.Len())
	s.policy.Range(func(key string, value any) bool {
		out = append(out, Evicted{Key: key, Value: value})
		return true
	})
	return out
}

func (s *Shard) takePending() []Evicted {
	if len(s.pending) == 0 {
		return nil
	}
	out := s.pending
	s.pending = nil
	return out
}

func (s *Shard) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy.Len()
}

// Cap returns the most entries this shard will hold.
func (s *Shard) Cap() int { return s.capacity }
