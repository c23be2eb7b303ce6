package lfu

// bucket is the recency-ordered list of all entries sharing one frequency.
//
// head and tail are sentinel slots, so inserting and removing never have
// to special-case an empty or single-element list:
//
//	head <-> least recent <-> ... <-> most recent <-> tail
type bucket[K comparable, V any] struct {
	arena *arena[K, V]
	head  handle
	tail  handle
	size  int
}

func newBucket[K comparable, V any](a *arena[K, V]) *bucket[K, V] {
	head := a.alloc()
	tail := a.alloc()
	a.at(head).next = tail
	a.at(tail).prev = head
	return &bucket[K, V]{arena: a, head: head, tail: tail}
}

// insertRecent appends h just before the tail sentinel.
func (b *bucket[K, V]) insertRecent(h handle) {
	n := b.arena.at(h)
	t := b.arena.at(b.tail)
	n.prev = t.prev
	n.next = b.tail
	b.arena.at(t.prev).next = h
	t.prev = h
	b.size++
}

// remove unlinks h. h must belong to this bucket.
func (b *bucket[K, V]) remove(h handle) {
	if h == b.head || h == b.tail {
		panic("lfu: removing a bucket sentinel")
	}
	if b.size == 0 {
		panic("lfu: removing from an empty bucket")
	}
	n := b.arena.at(h)
	b.arena.at(n.prev).next = n.next
	b.arena.at(n.next).prev = n.prev
	n.prev, n.next = nilHandle, nilHandle
	b.size--
}

// leastRecent returns the entry next to the head sentinel without
// removing it. ok is false when the bucket is empty.
func (b *bucket[K, V]) leastRecent() (h handle, ok bool) {
	if b.size == 0 {
		return nilHandle, false
	}
	return b.arena.at(b.head).next, true
}

func (b *bucket[K, V]) len() int { return b.size }

// drop hands the sentinel slots back to the arena. The bucket must be empty.
func (b *bucket[K, V]) drop() {
	if b.size != 0 {
		panic("lfu: dropping a non-empty bucket")
	}
	b.arena.release(b.head)
	b.arena.release(b.tail)
	b.head, b.tail = nilHandle, nilHandle
}
