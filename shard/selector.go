package shard

import "hash/fnv"

/*
This file decides HOW a cache key is assigned to a shard.
A key must always land on the same shard, otherwise a Get could miss an
entry that a Put stored elsewhere.
*/

// Selector is the interface that decides which shard should handle a given key.
type Selector interface {
	Select(string, []*Shard) *Shard
}

// HashSelector spreads keys over shards with FNV-1a.
type HashSelector struct{}

// hash converts a string key into a number. FNV is a fast, non-cryptographic hash commonly used in systems like this.
func hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// Select chooses the shard for a given key.
func (HashSelector) Select(key string, shards []*Shard) *Shard {
	return shards[hash(key)%uint32(len(shards))]
}

// Split divides capacity over n shards. The first capacity%n shards get
// one extra slot so the shard capacities add up to capacity exactly.
func Split(capacity, n int) []int {
	out := make([]int, n)
	base, rem := capacity/n, capacity%n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
