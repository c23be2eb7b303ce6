package cmds

import (
	"fmt"
	"io"

	"github.com/krisalay/lfu-cache/lfu"
	"github.com/spf13/cobra"
)

func newScenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Replay the capacity-2 walkthrough on the bare LFU engine.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runScenario(cmd.OutOrStdout())
			return nil
		},
	}
}

func runScenario(w io.Writer) {
	c := lfu.New(2, lfu.WithEvictFunc(func(k, v int) {
		fmt.Fprintf(w, "    evicted %d=%d\n", k, v)
	}))

	put := func(k, v int) {
		fmt.Fprintf(w, "put(%d, %d)\n", k, v)
		c.Put(k, v)
	}
	get := func(k int) {
		if v, ok := c.Get(k); ok {
			f, _ := c.Frequency(k)
			fmt.Fprintf(w, "get(%d) -> %d (frequency %d)\n", k, v, f)
			return
		}
		fmt.Fprintf(w, "get(%d) -> miss\n", k)
	}

	put(1, 1)
	put(2, 2)
	get(1)
	put(3, 3)
	get(2)
	get(3)
	put(4, 4)
	get(1)
	get(3)
	get(4)
	fmt.Fprintf(w, "len=%d min-frequency=%d\n", c.Len(), c.MinFrequency())
}
