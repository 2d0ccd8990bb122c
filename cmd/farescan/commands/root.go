package commands

import (
	"context"
	"farescan/internal/config"
	"farescan/lib/telemetry"
	"farescan/lib/util/serviceutil"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	verbose    *bool
)

var rootCmd = &cobra.Command{
	Use:   "farescan",
	Short: "farescan collects round-trip fares from LATAM result pages into a CSV.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	configPath = rootCmd.PersistentFlags().String("config", "config.json5", "The config file, config.local.json5 next to it overrides it.")
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		serviceutil.Exit(1)
	}
}

// loadConfig reads and validates the config, flags given on the command
// line take precedence over it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("out") {
		cfg.Output, _ = cmd.Flags().GetString("out")
	}
	if cmd.Flags().Changed("archive") {
		cfg.Archive, _ = cmd.Flags().GetString("archive")
	}
	if cmd.Flags().Changed("driver") {
		cfg.Browser.Driver, _ = cmd.Flags().GetString("driver")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	err = cfg.Validate()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
