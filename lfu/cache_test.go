package lfu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireHit(t *testing.T, c *Cache[int, int], key, want int) {
	t.Helper()
	v, ok := c.Get(key)
	require.True(t, ok, "expected %d to be cached", key)
	require.Equal(t, want, v)
}

func requireMiss(t *testing.T, c *Cache[int, int], key int) {
	t.Helper()
	_, ok := c.Get(key)
	require.False(t, ok, "expected %d to be a miss", key)
}

func TestScenario(t *testing.T) {
	c := New[int, int](2)

	c.Put(1, 1)
	c.Put(2, 2)
	checkInvariants(t, c)

	requireHit(t, c, 1, 1)
	c.Put(3, 3) // evicts 2
	checkInvariants(t, c)
	requireMiss(t, c, 2)

	requireHit(t, c, 3, 3)
	c.Put(4, 4) // both at frequency 2, 1 was touched before 3
	checkInvariants(t, c)

	requireMiss(t, c, 1)
	requireHit(t, c, 3, 3)
	requireHit(t, c, 4, 4)
	checkInvariants(t, c)
}

func TestZeroCapacity(t *testing.T) {
	c := New[string, string](0)
	for i := 0; i < 3; i++ {
		c.Put("k", "v")
	}
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.MinFrequency())
	checkInvariants(t, c)
}

func TestNegativeCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { New[int, int](-1) })
}

func TestRoundTrip(t *testing.T) {
	c := New[string, []byte](1)
	c.Put("a", []byte("alpha"))
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("alpha"), v)

	c.Put("b", nil)
	v, ok = c.Get("b")
	require.True(t, ok, "a nil value is still a hit")
	assert.Nil(t, v)
}

func TestMissLeavesStateUntouched(t *testing.T) {
	c := New[int, int](2)
	c.Put(1, 10)
	c.Put(2, 20)
	c.Get(2)

	for i := 0; i < 3; i++ {
		requireMiss(t, c, 99)
	}
	f1, _ := c.Frequency(1)
	f2, _ := c.Frequency(2)
	assert.Equal(t, 1, f1)
	assert.Equal(t, 2, f2)
	assert.Equal(t, 1, c.MinFrequency())
	assert.Equal(t, 2, c.Len())

	c.Put(3, 30) // evicts 1
	for i := 0; i < 3; i++ {
		requireMiss(t, c, 1)
	}
	checkInvariants(t, c)
}

func TestFrequencyCountsGetsAndOverwrites(t *testing.T) {
	c := New[string, int](3)
	c.Put("a", 1)

	f, ok := c.Frequency("a")
	require.True(t, ok)
	require.Equal(t, 1, f)

	c.Get("a")
	f, _ = c.Frequency("a")
	require.Equal(t, 2, f)

	c.Put("a", 2)
	f, _ = c.Frequency("a")
	require.Equal(t, 3, f, "overwriting a value counts as a use")

	v, _ := c.Get("a")
	require.Equal(t, 2, v)

	_, ok = c.Frequency("missing")
	require.False(t, ok)
	assert.False(t, c.Contains("missing"))
	assert.True(t, c.Contains("a"))
}

func TestOverwriteProtectsFromEviction(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 1)
	c.Put("a", 2) // a now frequency 2

	c.Put("c", 1) // b is the only entry at frequency 1
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
}

func TestEvictionTieBreakIsRecency(t *testing.T) {
	c := New[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// All at frequency 2, touched in the order c, a, b.
	c.Get("c")
	c.Get("a")
	c.Get("b")

	var evicted []string
	c.onEvict = func(k string, _ int) { evicted = append(evicted, k) }

	c.Put("d", 4) // d is the only entry at frequency 1 afterwards
	c.Put("e", 5) // evicts d, the sole minimum
	require.Equal(t, []string{"c", "d"}, evicted)
	checkInvariants(t, c)
}

func TestEvictFunc(t *testing.T) {
	type kv struct {
		k string
		v int
	}
	var evicted []kv
	var sawLen int
	var c *Cache[string, int]
	c = New(2, WithEvictFunc(func(k string, v int) {
		sawLen = c.Len()
		evicted = append(evicted, kv{k, v})
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10) // no eviction on overwrite
	require.Empty(t, evicted)

	c.Put("c", 3)
	require.Equal(t, []kv{{"b", 2}}, evicted)
	assert.Equal(t, 2, sawLen, "callback runs after the new entry is in place")
}

func TestPutIfAbsent(t *testing.T) {
	var evicted []string
	c := New(2, WithEvictFunc(func(k string, _ int) { evicted = append(evicted, k) }))

	v, inserted := c.PutIfAbsent("a", 1)
	require.True(t, inserted)
	require.Equal(t, 1, v)

	c.Put("a", 2) // frequency 2
	v, inserted = c.PutIfAbsent("a", 99)
	require.False(t, inserted)
	require.Equal(t, 2, v, "the cached value wins")
	f, _ := c.Frequency("a")
	require.Equal(t, 2, f, "finding the key is not a use")

	c.Put("b", 1)
	_, inserted = c.PutIfAbsent("c", 3) // evicts b
	require.True(t, inserted)
	require.Equal(t, []string{"b"}, evicted)
	checkInvariants(t, c)

	z := New[string, int](0)
	v, inserted = z.PutIfAbsent("a", 1)
	assert.False(t, inserted)
	assert.Equal(t, 1, v)
	assert.Equal(t, 0, z.Len())
}

func TestRange(t *testing.T) {
	c := New[string, int](4)
	c.Range(func(string, int) bool {
		t.Fatal("empty cache has nothing to visit")
		return false
	})

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")
	c.Get("a")
	c.Get("c")

	var keys []string
	c.Range(func(k string, v int) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []string{"b", "c", "a"}, keys)

	f, _ := c.Frequency("b")
	assert.Equal(t, 1, f, "visiting is not a use")

	keys = nil
	c.Range(func(k string, _ int) bool {
		keys = append(keys, k)
		return len(keys) < 2
	})
	assert.Equal(t, []string{"b", "c"}, keys)
	checkInvariants(t, c)
}

func TestMinFrequencyAdvances(t *testing.T) {
	c := New[int, int](2)
	c.Put(1, 1)
	c.Put(2, 2)
	require.Equal(t, 1, c.MinFrequency())

	c.Get(1)
	require.Equal(t, 1, c.MinFrequency())
	c.Get(2)
	require.Equal(t, 2, c.MinFrequency())
	c.Get(2)
	require.Equal(t, 2, c.MinFrequency())
	c.Get(1)
	require.Equal(t, 3, c.MinFrequency())
	checkInvariants(t, c)
}

func TestArenaStaysBounded(t *testing.T) {
	const capacity = 8
	c := New[int, int](capacity)
	for i := 0; i < 10000; i++ {
		c.Put(i%50, i)
		c.Get(i % 7)
	}
	assert.LessOrEqual(t, len(c.entries.nodes), 3*capacity)
	checkInvariants(t, c)
}

// model is a deliberately naive LFU with recency tie-break used to check
// the engine against random workloads.
type model struct {
	capacity int
	clock    int
	items    map[int]*modelItem
}

type modelItem struct {
	value   int
	freq    int
	touched int
}

func (m *model) get(k int) (int, bool) {
	it, ok := m.items[k]
	if !ok {
		return 0, false
	}
	m.clock++
	it.freq++
	it.touched = m.clock
	return it.value, true
}

func (m *model) put(k, v int) (evicted int, ok bool) {
	if m.capacity == 0 {
		return 0, false
	}
	m.clock++
	if it, found := m.items[k]; found {
		it.value = v
		it.freq++
		it.touched = m.clock
		return 0, false
	}
	if len(m.items) >= m.capacity {
		var victim *modelItem
		for key, it := range m.items {
			if victim == nil || it.freq < victim.freq ||
				(it.freq == victim.freq && it.touched < victim.touched) {
				victim, evicted = it, key
			}
		}
		delete(m.items, evicted)
		ok = true
	}
	m.items[k] = &modelItem{value: v, freq: 1, touched: m.clock}
	return evicted, ok
}

func TestMatchesReferenceModel(t *testing.T) {
	for _, capacity := range []int{0, 1, 2, 5, 16} {
		rng := rand.New(rand.NewSource(int64(capacity) + 1))
		m := &model{capacity: capacity, items: map[int]*modelItem{}}

		var gotEvicted []int
		c := New(capacity, WithEvictFunc(func(k, _ int) { gotEvicted = append(gotEvicted, k) }))
		var wantEvicted []int

		for i := 0; i < 5000; i++ {
			k := rng.Intn(3*capacity + 2)
			if rng.Intn(3) == 0 {
				v := rng.Int()
				c.Put(k, v)
				if e, ok := m.put(k, v); ok {
					wantEvicted = append(wantEvicted, e)
				}
			} else {
				got, gotOK := c.Get(k)
				want, wantOK := m.get(k)
				require.Equal(t, wantOK, gotOK, "capacity %d op %d key %d", capacity, i, k)
				require.Equal(t, want, got)
			}

			if it, ok := m.items[k]; ok {
				f, _ := c.Frequency(k)
				require.Equal(t, it.freq, f)
			}
			require.Equal(t, len(m.items), c.Len())
			if i%97 == 0 {
				checkInvariants(t, c)
			}
		}
		require.Equal(t, wantEvicted, gotEvicted, "capacity %d", capacity)
		checkInvariants(t, c)
	}
}

func BenchmarkPut(b *testing.B) {
	c := New[int, int](1024)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Put(i%4096, i)
	}
}

func BenchmarkGetHit(b *testing.B) {
	c := New[int, int](1024)
	for i := 0; i < 1024; i++ {
		c.Put(i, i)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(i % 1024)
	}
}
