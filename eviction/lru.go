// This file implements LRU eviction.

package eviction

import (
	"fmt"

	"github.com/hashicorp/golang-lru/simplelru"
)

// lru wraps simplelru. simplelru refuses a zero size, so a zero capacity
// policy keeps list == nil and drops every write.
type lru struct {
	list *simplelru.LRU
}

func newLRU(capacity int, onEvict EvictFunc) *lru {
	if capacity <= 0 {
		return &lru{}
	}

	var cb simplelru.EvictCallback
	if onEvict != nil {
		cb = func(key, value interface{}) {
			onEvict(key.(string), value)
		}
	}

	l, err := simplelru.NewLRU(capacity, cb)
	if err != nil {
		panic(fmt.Sprintf("eviction: building LRU: %v", err))
	}
	return &lru{list: l}
}

// Get marks the key as most recently used.
func (l *lru) Get(k string) (any, bool) {
	if l.list == nil {
		return nil, false
	}
	return l.list.Get(k)
}

// Put adds or refreshes a key. When the list is full simplelru drops the
// tail and calls the evict callback.
func (l *lru) Put(k string, v any) {
	if l.list == nil {
		return
	}
	l.list.Add(k, v)
}

// PutIfAbsent uses Peek so that finding the key does not refresh it.
func (l *lru) PutIfAbsent(k string, v any) (any, bool) {
	if l.list == nil {
		return v, false
	}
	if old, ok := l.list.Peek(k); ok {
		return old, false
	}
	l.list.Add(k, v)
	return v, true
}

// Range visits entries from the least to the most recently used.
func (l *lru) Range(fn func(string, any) bool) {
	if l.list == nil {
		return
	}
	for _, k := range l.list.Keys() {
		v, ok := l.list.Peek(k)
		if !ok {
			continue
		}
		if !fn(k.(string), v) {
			return
		}
	}
}

func (l *lru) Len() int {
	if l.list == nil {
		return 0
	}
	return l.list.Len()
}
