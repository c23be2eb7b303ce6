package lfu

import (
	"fmt"
	"slices"
)

// Cache is a fixed-capacity LFU cache with LRU tie-break.
// The zero value is not usable; construct one with New.
type Cache[K comparable, V any] struct {
	capacity int

	// minFreq is the smallest frequency with a non-empty bucket.
	// It is meaningless while the cache is empty.
	minFreq int

	entries *arena[K, V]
	keys    keyIndex[K]
	freqs   freqIndex[K, V]

	onEvict func(key K, value V)
}

// Option configures a Cache at construction.
type Option[K comparable, V any] func(*Cache[K, V])

// WithEvictFunc registers fn to be called with every entry evicted to make
// room for a new key. fn runs synchronously at the end of the Put that
// caused the eviction, once the cache is consistent again.
func WithEvictFunc[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// New creates a cache holding at most capacity entries.
// A capacity of 0 creates a cache that never stores anything.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *Cache[K, V] {
	if capacity < 0 {
		panic(fmt.Sprintf("lfu: negative capacity %d", capacity))
	}
	a := newArena[K, V](capacity)
	c := &Cache[K, V]{
		capacity: capacity,
		entries:  a,
		keys:     newKeyIndex[K](capacity),
		freqs:    newFreqIndex(a),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/*
Get returns the value stored for key and counts the lookup as a use:
the entry's frequency goes up by one and it becomes the most recent
entry of its new frequency.

ok is false on a miss. A miss changes nothing.
*/
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	h, ok := c.keys.get(key)
	if !ok {
		return value, false
	}
	c.touch(h)
	return c.entries.at(h).value, true
}

/*
Put stores value under key.

  - capacity 0: no-op
  - existing key: the value is overwritten and the write counts as a use,
    exactly like a Get
  - new key on a full cache: the least recently touched entry of the
    lowest frequency is evicted first
  - a new entry starts at frequency 1, which becomes the minimum
*/
func (c *Cache[K, V]) Put(key K, value V) {
	if c.capacity == 0 {
		return
	}

	if h, ok := c.keys.get(key); ok {
		c.entries.at(h).value = value
		c.touch(h)
		return
	}

	var (
		evictedKey   K
		evictedValue V
		evicted      bool
	)
	if c.keys.len() >= c.capacity {
		evictedKey, evictedValue = c.evict()
		evicted = true
	}

	h := c.entries.alloc()
	n := c.entries.at(h)
	n.key = key
	n.value = value
	n.freq = 1
	c.keys.put(key, h)
	c.freqs.getOrCreate(1).insertRecent(h)
	c.minFreq = 1

	if evicted && c.onEvict != nil {
		c.onEvict(evictedKey, evictedValue)
	}
}

// PutIfAbsent stores value only if key is not cached yet. It returns the
// value the cache holds for key afterwards and whether it was inserted.
// Finding key already present is not a use: nothing changes.
// On a zero-capacity cache it returns value, false.
func (c *Cache[K, V]) PutIfAbsent(key K, value V) (actual V, inserted bool) {
	if h, ok := c.keys.get(key); ok {
		return c.entries.at(h).value, false
	}
	if c.capacity == 0 {
		return value, false
	}
	c.Put(key, value)
	return value, true
}

// Range calls fn for every cached entry until fn returns false. Entries
// are visited from the lowest frequency up, least recent first within a
// frequency. Visiting is not a use. fn must not call Get or Put.
func (c *Cache[K, V]) Range(fn func(key K, value V) bool) {
	freqs := make([]int, 0, c.freqs.len())
	for freq := range c.freqs.buckets {
		freqs = append(freqs, freq)
	}
	slices.Sort(freqs)

	for _, freq := range freqs {
		b := c.freqs.get(freq)
		for h := c.entries.at(b.head).next; h != b.tail; h = c.entries.at(h).next {
			n := c.entries.at(h)
			if !fn(n.key, n.value) {
				return
			}
		}
	}
}

// touch moves the entry at h from its bucket to the bucket of the next
// frequency, as its most recent member.
func (c *Cache[K, V]) touch(h handle) {
	freq := c.entries.at(h).freq

	b := c.freqs.get(freq)
	b.remove(h)
	if b.len() == 0 {
		c.freqs.remove(freq)
		// Frequencies only grow one step at a time, so nothing below
		// freq+1 can exist once the minimum bucket is gone.
		if c.minFreq == freq {
			c.minFreq++
		}
	}

	freq++
	c.entries.at(h).freq = freq
	c.freqs.getOrCreate(freq).insertRecent(h)
}

// evict removes the least recent entry of the minimum-frequency bucket
// and returns what it held.
func (c *Cache[K, V]) evict() (K, V) {
	b := c.freqs.get(c.minFreq)
	h, ok := b.leastRecent()
	if !ok {
		panic(fmt.Sprintf("lfu: empty bucket indexed at minimum frequency %d", c.minFreq))
	}
	b.remove(h)
	if b.len() == 0 {
		c.freqs.remove(c.minFreq)
	}

	n := c.entries.at(h)
	key, value := n.key, n.value
	c.keys.remove(key)
	c.entries.release(h)
	return key, value
}

// Contains reports whether key is cached without counting it as a use.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.keys.contains(key)
}

// Frequency returns how many times key has been used, without counting
// this call as a use.
func (c *Cache[K, V]) Frequency(key K) (int, bool) {
	h, ok := c.keys.get(key)
	if !ok {
		return 0, false
	}
	return c.entries.at(h).freq, true
}

// MinFrequency returns the frequency eviction would draw from, or 0 when
// the cache is empty.
func (c *Cache[K, V]) MinFrequency() int {
	if c.keys.len() == 0 {
		return 0
	}
	return c.minFreq
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int { return c.keys.len() }

// Cap returns the capacity the cache was created with.
func (c *Cache[K, V]) Cap() int { return c.capacity }
