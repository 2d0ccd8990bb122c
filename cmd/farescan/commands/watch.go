package commands

import (
	"farescan/internal/components/chrono"
	"farescan/internal/components/telemetry"
	"farescan/lib/util/serviceutil"
	"log/slog"

	"github.com/spf13/cobra"
)

var watchSchedule *string

func init() {
	watchSchedule = watchCmd.Flags().String("cron", "0 */6 * * *", "The schedule to scrape on, in the configured timezone.")
	watchCmd.Flags().String("out", "", "The CSV file to write, overrides the config.")
	watchCmd.Flags().String("archive", "", "A sqlite file to also save every run to, overrides the config.")
	watchCmd.Flags().String("driver", "", "The browser driver to use: chrome or http.")
	watchCmd.Flags().Int("workers", 0, "How many result pages to scrape at once.")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--cron <schedule>]",
	Short: "Runs a complete scrape on a schedule until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		clock, err := chrono.NewStandardImpl(cfg.Timezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		ctx := cmd.Context()
		cron := chrono.NewStandardCron(clock, telemetry.SlogAPI{})
		err = cron.Cron(*watchSchedule, func() {
			_, err := runScrape(ctx, cfg, clock)
			if err != nil {
				slog.Error("scheduled scrape failed", "err", err.Error())
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid schedule", err)
		}
		slog.Info("waiting for schedule", "cron", *watchSchedule, "timezone", clock.Location().String())

		<-ctx.Done()
		slog.Info("stopping, waiting for a running scrape to finish")
		cron.Stop()
	},
}
