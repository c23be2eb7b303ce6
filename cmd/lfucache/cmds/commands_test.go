package cmds

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := New()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute(), out.String())
	return out.String()
}

func TestScenarioCommand(t *testing.T) {
	out := execute(t, "scenario")

	assert.Contains(t, out, "get(1) -> 1 (frequency 2)")
	assert.Contains(t, out, "evicted 2=2")
	assert.Contains(t, out, "get(2) -> miss")
	assert.Contains(t, out, "evicted 1=1")
	assert.Contains(t, out, "get(1) -> miss")
	assert.Contains(t, out, "get(4) -> 4 (frequency 2)")
	assert.Contains(t, out, "len=2 min-frequency=2")
}

func TestDemoCommand(t *testing.T) {
	out := execute(t, "demo", "--capacity", "8", "--shards", "1")

	assert.Contains(t, out, "EVICTION POLICY : LFU")
	assert.Contains(t, out, "GET a = alpha")
	assert.Contains(t, out, "GET a after flood = alpha (err=<nil>, reloaded=false)")
	assert.Contains(t, out, "key not found")
}

func TestBenchCommand(t *testing.T) {
	out := execute(t, "bench", "--capacity", "64", "--keys", "1000", "--ops", "2000", "--goroutines", "2")

	assert.Contains(t, out, "LFU  hit ratio")
	assert.Contains(t, out, "LRU  hit ratio")
}

func TestConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfucache.yml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 3\nshards: 1\neviction: LRU\nwrite-policy: none\n"), 0o644))

	out := execute(t, "demo", "--config", path, "--eviction", "LFU")
	assert.Contains(t, out, "EVICTION POLICY : LFU")
	assert.Contains(t, out, "CAPACITY        : 3 keys")
	assert.Contains(t, out, "WRITE POLICY    : none")
}

func TestInvalidConfigFails(t *testing.T) {
	root := New()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"demo", "--eviction", "FIFO"})
	assert.Error(t, root.Execute())
}
