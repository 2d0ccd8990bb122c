package commands

import (
	"farescan/internal/components/chrono"
	"farescan/lib/telemetry"
	"farescan/lib/util/serviceutil"
	"time"

	"github.com/spf13/cobra"
)

var scrapeShow *int

func init() {
	scrapeCmd.Flags().String("out", "", "The CSV file to write, overrides the config.")
	scrapeCmd.Flags().String("archive", "", "A sqlite file to also save the run to, overrides the config.")
	scrapeCmd.Flags().String("driver", "", "The browser driver to use: chrome or http.")
	scrapeCmd.Flags().Int("workers", 0, "How many result pages to scrape at once.")
	scrapeShow = scrapeCmd.Flags().Int("show", 0, "Print the N cheapest fares once done.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <path/to/output.csv>] [--archive <path/to/archive.db>] [--driver chrome|http]",
	Short: "Scrapes every configured search and writes the fares sorted by price.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		clock, err := chrono.NewStandardImpl(cfg.Timezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		telemetry.InstrumentPerfStats(cmd.Context(), time.Second*10)

		table, err := runScrape(cmd.Context(), cfg, clock)
		if err != nil {
			serviceutil.Fatal("failed to scrape", err)
		}
		if *scrapeShow > 0 {
			renderFares(table, *scrapeShow)
		}
	},
}
