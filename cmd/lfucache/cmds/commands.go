package cmds

import (
	"github.com/krisalay/lfu-cache/config"
	"github.com/krisalay/lfu-cache/logflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// configPath is the YAML file read by every subcommand.
	configPath string
	// logFlag and logLevel override the config file when set.
	logFlag  bool
	logLevel string

	// cfg is loaded in PersistentPreRunE.
	cfg *config.Config
)

const longDesc = `lfucache exercises a fixed-capacity LFU cache.

Entries are evicted least-frequently-used first; among entries with the
same use count the least recently touched one goes first.`

// New returns an initialized command tree.
func New() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "lfucache",
		Short:         "Fixed-capacity LFU cache playground.",
		Long:          longDesc,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd.Flags())
		},
	}

	rootCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file.")
	rootCommand.PersistentFlags().BoolVar(&logFlag, "log", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error).")

	rootCommand.AddCommand(newScenarioCommand())
	rootCommand.AddCommand(newDemoCommand())
	rootCommand.AddCommand(newBenchCommand())

	return rootCommand
}

// setup loads the configuration and applies flag overrides on top of it.
func setup(flags *pflag.FlagSet) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	if flags.Changed("log") {
		cfg.Log = logFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("capacity") {
		cfg.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("shards") {
		cfg.Shards, _ = flags.GetInt("shards")
	}
	if flags.Changed("eviction") {
		cfg.Eviction, _ = flags.GetString("eviction")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return logflags.Setup(cfg.Log, cfg.LogLevel)
}

// addCacheFlags registers the flags that shape a cache on cmd.
func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().Int("capacity", 0, "Total cache capacity (overrides the config file).")
	cmd.Flags().Int("shards", 0, "Number of shards (overrides the config file).")
	cmd.Flags().String("eviction", "", "Eviction policy, LFU or LRU (overrides the config file).")
}
