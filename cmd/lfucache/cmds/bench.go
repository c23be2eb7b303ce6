package cmds

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	cache "github.com/krisalay/lfu-cache"
	"github.com/krisalay/lfu-cache/config"
	"github.com/krisalay/lfu-cache/eviction"
	"github.com/krisalay/lfu-cache/logflags"
	"github.com/krisalay/lfu-cache/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type benchOptions struct {
	keys       int
	ops        int
	goroutines int
	skew       float64
	seed       int64
}

func newBenchCommand() *cobra.Command {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare LFU and LRU hit ratios on a Zipf-distributed workload.",
		Long: `Runs the same read-through workload against an LFU and an LRU cache of
the configured size. Keys follow a Zipf distribution, so a small set of keys
gets most of the traffic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), cmd.OutOrStdout(), cfg, opts)
		},
	}
	addCacheFlags(cmd)
	cmd.Flags().IntVar(&opts.keys, "keys", 100000, "Size of the key space.")
	cmd.Flags().IntVar(&opts.ops, "ops", 200000, "Lookups per goroutine.")
	cmd.Flags().IntVar(&opts.goroutines, "goroutines", 8, "Concurrent clients.")
	cmd.Flags().Float64Var(&opts.skew, "skew", 1.1, "Zipf exponent, must be > 1.")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Random seed.")
	return cmd
}

type benchResult struct {
	policy   eviction.PolicyType
	stats    types.Snapshot
	duration time.Duration
}

func runBench(ctx context.Context, w io.Writer, c *config.Config, opts benchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.skew <= 1 || opts.keys < 1 || opts.ops < 0 || opts.goroutines < 1 {
		return fmt.Errorf("invalid bench options: %+v", opts)
	}

	fmt.Fprintln(w, "================ CACHE LOAD BENCHMARK =================")
	fmt.Fprintln(w, "Shards       :", c.Shards)
	fmt.Fprintln(w, "Capacity     :", c.Capacity)
	fmt.Fprintln(w, "Key space    :", opts.keys)
	fmt.Fprintln(w, "Goroutines   :", opts.goroutines)
	fmt.Fprintln(w, "Ops/Goroutine:", opts.ops)
	fmt.Fprintln(w, "Zipf skew    :", opts.skew)

	var results []benchResult
	for _, policy := range []eviction.PolicyType{eviction.LFU, eviction.LRU} {
		r, err := benchPolicy(ctx, c, policy, opts)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	fmt.Fprintln(w, "\n================ RESULTS =================")
	for _, r := range results {
		total := r.stats.Hits + r.stats.Misses
		fmt.Fprintf(w, "%-4s hit ratio %.4f  evictions %-8d  %.0f ops/sec\n",
			r.policy, r.stats.HitRatio(), r.stats.Evictions, float64(total)/r.duration.Seconds())
	}
	return nil
}

func benchPolicy(ctx context.Context, c *config.Config, policy eviction.PolicyType, opts benchOptions) (benchResult, error) {
	log := logflags.CmdLogger().WithField("policy", policy)

	metrics := &types.Counters{}
	engine, err := newEngine(c, newMemoryStore(true), metrics)
	if err != nil {
		return benchResult{}, err
	}
	lc := cache.NewShardedCache(c.Shards, c.Capacity, policy, engine)
	defer lc.Close()

	log.Info("running")
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.goroutines; i++ {
		// every goroutine replays its own deterministic stream
		rng := rand.New(rand.NewSource(opts.seed + int64(i)))
		zipf := rand.NewZipf(rng, opts.skew, 1, uint64(opts.keys-1))
		g.Go(func() error {
			for j := 0; j < opts.ops; j++ {
				if j%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				key := fmt.Sprintf("key-%d", zipf.Uint64())
				if _, err := lc.Get(gctx, key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return benchResult{}, fmt.Errorf("bench %s: %w", policy, err)
	}

	r := benchResult{policy: policy, stats: metrics.Snapshot(), duration: time.Since(start)}
	log.WithField("hit-ratio", r.stats.HitRatio()).Info("done")
	return r, nil
}
