package cmds

import (
	"context"
	"fmt"
	"sync"

	"github.com/krisalay/lfu-cache/config"
	"github.com/krisalay/lfu-cache/engine"
	"github.com/krisalay/lfu-cache/types"
	"github.com/krisalay/lfu-cache/writepolicy"
)

// memoryStore is the backing store used by demo and bench.
// With synthesize set, it answers every Load with a value derived from the key.
type memoryStore struct {
	mu         sync.RWMutex
	data       map[string]any
	synthesize bool
}

func newMemoryStore(synthesize bool) *memoryStore {
	return &memoryStore{data: make(map[string]any), synthesize: synthesize}
}

func (s *memoryStore) Load(ctx context.Context, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	if s.synthesize {
		return "value-of-" + key, nil
	}
	return nil, nil
}

func (s *memoryStore) Put(ctx context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// newEngine wires store and metrics to the write policy named in c.
func newEngine(c *config.Config, store types.Loader, metrics types.Metrics) (*engine.CacheEngine, error) {
	var wp writepolicy.WritePolicy
	switch c.WritePolicy {
	case config.WriteNone:
	case config.WriteThrough:
		wp = writepolicy.NewWriteThroughPolicy(store)
	case config.WriteBack:
		wp = writepolicy.NewWriteBackPolicy(store, c.WriteBackBuffer)
	default:
		return nil, fmt.Errorf("unknown write policy %q", c.WritePolicy)
	}
	return engine.NewCacheEngine(store, wp, metrics), nil
}
