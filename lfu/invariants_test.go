package lfu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants walks every bucket and verifies the structural rules the
// engine relies on.
func checkInvariants[K comparable, V any](t *testing.T, c *Cache[K, V]) {
	t.Helper()

	require.LessOrEqual(t, c.keys.len(), c.capacity, "key index exceeds capacity")

	seen := 0
	minFreq := 0
	for freq, b := range c.freqs.buckets {
		require.Positive(t, b.len(), "empty bucket %d left in the frequency index", freq)
		if minFreq == 0 || freq < minFreq {
			minFreq = freq
		}

		count := 0
		prev := b.head
		for h := c.entries.at(b.head).next; h != b.tail; h = c.entries.at(h).next {
			n := c.entries.at(h)
			require.Equal(t, prev, n.prev, "broken back link in bucket %d", freq)
			require.Equal(t, freq, n.freq, "entry in bucket %d has frequency %d", freq, n.freq)

			idx, ok := c.keys.get(n.key)
			require.True(t, ok, "linked entry %v missing from the key index", n.key)
			require.Equal(t, h, idx)

			prev = h
			count++
			require.LessOrEqual(t, count, c.capacity, "cycle in bucket %d", freq)
		}
		require.Equal(t, prev, c.entries.at(b.tail).prev)
		require.Equal(t, b.len(), count, "bucket %d size does not match its links", freq)
		seen += count
	}

	require.Equal(t, c.keys.len(), seen, "key index and buckets disagree")
	if seen > 0 {
		require.Equal(t, minFreq, c.minFreq, "stale minimum frequency")
		require.True(t, c.freqs.contains(c.minFreq))
	}
	require.Equal(t, seen+2*c.freqs.len(), c.entries.live(), "arena leaks slots")
}
