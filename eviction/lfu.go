// This file implements LFU eviction on top of the lfu engine.

package eviction

import "github.com/krisalay/lfu-cache/lfu"

type lfuPolicy struct {
	cache *lfu.Cache[string, any]
}

func newLFU(capacity int, onEvict EvictFunc) *lfuPolicy {
	var opts []lfu.Option[string, any]
	if onEvict != nil {
		opts = append(opts, lfu.WithEvictFunc[string, any](onEvict))
	}
	return &lfuPolicy{cache: lfu.New[string, any](capacity, opts...)}
}

func (l *lfuPolicy) Get(k string) (any, bool) { return l.cache.Get(k) }

// Put overwrites count as a use, the same as a Get.
func (l *lfuPolicy) Put(k string, v any) { l.cache.Put(k, v) }

func (l *lfuPolicy) PutIfAbsent(k string, v any) (any, bool) { return l.cache.PutIfAbsent(k, v) }

func (l *lfuPolicy) Range(fn func(string, any) bool) { l.cache.Range(fn) }

func (l *lfuPolicy) Len() int { return l.cache.Len() }
