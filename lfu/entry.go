package lfu

// handle addresses one slot of the arena.
type handle int32

// nilHandle marks "no slot". It is only ever stored in the links of a
// free slot, never inside a live bucket.
const nilHandle handle = -1

// node is one arena slot. It is either a cached entry or a bucket
// sentinel (head/tail). Sentinels never carry a key, value or frequency.
type node[K comparable, V any] struct {
	key   K
	value V

	// freq is how many times the entry was touched. It starts at 1.
	freq int

	prev handle
	next handle
}

// arena owns every node of a Cache. Freed slots are recycled so that the
// backing slice never grows past what the live entries and buckets need.
type arena[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
}

func newArena[K comparable, V any](capacity int) *arena[K, V] {
	// every live entry plus a head and tail for each non-empty bucket
	return &arena[K, V]{nodes: make([]node[K, V], 0, 3*capacity)}
}

// alloc returns a zeroed, unlinked slot.
// Pointers obtained through at() before a call to alloc may be stale.
func (a *arena[K, V]) alloc() handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		return h
	}
	a.nodes = append(a.nodes, node[K, V]{prev: nilHandle, next: nilHandle})
	return handle(len(a.nodes) - 1)
}

// release zeroes the slot so it does not keep the key or value alive.
func (a *arena[K, V]) release(h handle) {
	a.nodes[h] = node[K, V]{prev: nilHandle, next: nilHandle}
	a.free = append(a.free, h)
}

func (a *arena[K, V]) at(h handle) *node[K, V] {
	return &a.nodes[h]
}

// live is the number of slots currently handed out.
func (a *arena[K, V]) live() int {
	return len(a.nodes) - len(a.free)
}
