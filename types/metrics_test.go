package types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersConcurrent(t *testing.T) {
	var c Counters
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Hit()
				c.Miss()
			}
			c.Load()
			c.Eviction()
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	assert.Equal(t, Snapshot{Hits: 800, Misses: 800, Loads: 8, Evictions: 8}, s)
	assert.InDelta(t, 0.5, s.HitRatio(), 1e-9)
	assert.Zero(t, Snapshot{}.HitRatio())
}

var _ Metrics = NoopMetrics{}
var _ Metrics = (*Counters)(nil)
