package eviction

/*
This file defines how a shard stores its entries and decides what to drop when it runs out of space.
*/

/*
Policy is the interface that every bounded store behind a shard must follow.

The sharded cache does NOT care how eviction works internally.
It only calls these methods, always under the shard lock.
*/
type Policy interface {

	// Get returns the value for a key and records the access.
	//
	// Recording the access is what makes a policy a policy:
	// - LFU bumps the key's frequency
	// - LRU marks the key as most recently used
	Get(key string) (any, bool)

	// Put stores a value.
	//
	// If the store is full and the key is new, the policy evicts one
	// entry first and reports it through the EvictFunc it was built with.
	Put(key string, value any)

	// PutIfAbsent stores a value only if the key is not stored yet and
	// returns whatever the store holds for the key afterwards.
	//
	// Finding the key already present does not count as an access.
	// This is how values loaded from the backing store go in: they must
	// never replace a newer value written while the load was in flight.
	PutIfAbsent(key string, value any) (actual any, inserted bool)

	// Range visits every stored entry without recording accesses,
	// stopping when fn returns false.
	Range(fn func(key string, value any) bool)

	// Len returns how many entries are stored.
	Len() int
}

// EvictFunc receives every entry a policy drops to make room.
type EvictFunc func(key string, value any)

// PolicyType is a simple identifier for supported eviction strategies.
type PolicyType string

const (
	// LFU (Least Frequently Used): Evicts the key that has been accessed the fewest times.
	// Among keys with the same count, the one touched longest ago goes first.
	// This works well when:
	// - Some keys are consistently hot
	// - Some keys are rarely used
	LFU PolicyType = "LFU"

	// LRU (Least Recently Used): Evicts the key that has NOT been accessed for the longest time.
	// Kept as a baseline to compare hit ratios against.
	LRU PolicyType = "LRU"
)

// NewEvictionPolicy is a small factory function.
// Given a PolicyType, it creates the correct eviction policy holding at most capacity entries.
// onEvict may be nil.
func NewEvictionPolicy(t PolicyType, capacity int, onEvict EvictFunc) Policy {
	switch t {
	case LFU:
		return newLFU(capacity, onEvict)
	case LRU:
		return newLRU(capacity, onEvict)
	default:
		panic("unknown eviction policy")
	}
}

// ParsePolicyType accepts the policy names used in configuration files and flags.
func ParsePolicyType(s string) (PolicyType, bool) {
	switch PolicyType(s) {
	case LFU, "lfu":
		return LFU, true
	case LRU, "lru":
		return LRU, true
	}
	return "", false
}
