package lfu

// freqIndex maps a frequency to its bucket. A frequency is present only
// while its bucket is non-empty.
type freqIndex[K comparable, V any] struct {
	arena   *arena[K, V]
	buckets map[int]*bucket[K, V]
}

func newFreqIndex[K comparable, V any](a *arena[K, V]) freqIndex[K, V] {
	return freqIndex[K, V]{arena: a, buckets: make(map[int]*bucket[K, V])}
}

// get returns the bucket for freq. A missing bucket here means the
// bookkeeping is broken, so it panics instead of returning nil.
func (f freqIndex[K, V]) get(freq int) *bucket[K, V] {
	b, ok := f.buckets[freq]
	if !ok {
		panic("lfu: no bucket for a frequency that must have one")
	}
	return b
}

func (f freqIndex[K, V]) getOrCreate(freq int) *bucket[K, V] {
	if b, ok := f.buckets[freq]; ok {
		return b
	}
	b := newBucket(f.arena)
	f.buckets[freq] = b
	return b
}

// remove drops an empty bucket and frees its sentinels.
func (f freqIndex[K, V]) remove(freq int) {
	b, ok := f.buckets[freq]
	if !ok {
		return
	}
	b.drop()
	delete(f.buckets, freq)
}

func (f freqIndex[K, V]) contains(freq int) bool {
	_, ok := f.buckets[freq]
	return ok
}

func (f freqIndex[K, V]) len() int { return len(f.buckets) }

// keyIndex maps a key to the arena slot of its entry. It never owns the
// entry; the bucket the entry is linked into does.
type keyIndex[K comparable] struct {
	slots map[K]handle
}

func newKeyIndex[K comparable](capacity int) keyIndex[K] {
	return keyIndex[K]{slots: make(map[K]handle, capacity)}
}

func (k keyIndex[K]) get(key K) (handle, bool) {
	h, ok := k.slots[key]
	return h, ok
}

func (k keyIndex[K]) put(key K, h handle) { k.slots[key] = h }

func (k keyIndex[K]) remove(key K) { delete(k.slots, key) }

func (k keyIndex[K]) contains(key K) bool {
	_, ok := k.slots[key]
	return ok
}

func (k keyIndex[K]) len() int { return len(k.slots) }
