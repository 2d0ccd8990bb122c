package commands

import (
	"errors"
	"farescan/internal/archive"
	"farescan/internal/fares"
	"farescan/internal/report"
	"farescan/internal/search"
	"farescan/lib/util/serviceutil"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	showLimit    *int
	showFile     *string
	showArchive  *string
	showCheapest *bool
)

func init() {
	showLimit = showCmd.Flags().Int("limit", 10, "How many fares to print, 0 prints all of them.")
	showFile = showCmd.Flags().String("file", "", "The CSV file to read, defaults to the configured output.")
	showArchive = showCmd.Flags().String("archive", "", "Read the latest run from this archive instead of a CSV.")
	showCheapest = showCmd.Flags().Bool("cheapest", false, "With --archive, the cheapest fares across every run.")
	rootCmd.AddCommand(showCmd)
}

func rowsToTable(rows []report.Row) fares.Table {
	table := make(fares.Table, len(rows))
	for i, r := range rows {
		table[i] = fares.Fare{
			Flight: fares.Flight{
				ID:            r.ID,
				DepartureTime: r.DepartureTime,
				ArrivalTime:   r.ArrivalTime,
				Duration:      r.Duration,
				Directness:    r.Directness,
			},
			DepartureDate: r.DepartureDate,
			ReturnDate:    r.ReturnDate,
			AirportCodes:  r.AirportCodes,
			Amount:        r.Amount,
		}
	}
	return table
}

var showCmd = &cobra.Command{
	Use:   "show [--limit <n>] [--file <path/to/output.csv> | --archive <path/to/archive.db>]",
	Short: "Prints the cheapest fares of the last scrape.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		if *showArchive != "" {
			store, err := archive.Open(*showArchive)
			if err != nil {
				serviceutil.Fatal("failed to open archive", err)
			}
			defer store.Close()

			if *showCheapest {
				table, err := store.Cheapest(cmd.Context(), search.AirportCodes(cfg.Origin, cfg.Destination), *showLimit)
				if err != nil {
					serviceutil.Fatal("failed to read archive", err)
				}
				renderFares(table, *showLimit)
				return
			}

			run, table, err := store.Latest(cmd.Context())
			if errors.Is(err, archive.ErrNoRuns) {
				slog.Info("the archive is empty", "archive", *showArchive)
				return
			}
			if err != nil {
				serviceutil.Fatal("failed to read archive", err)
			}
			slog.Info(
				"latest run",
				"started", run.StartedAt.Format("2006-01-02 15:04"),
				"searches", run.Searches,
				"failed", run.Failed,
				"fares", len(table),
			)
			renderFares(table, *showLimit)
			return
		}

		path := cfg.Output
		if *showFile != "" {
			path = *showFile
		}
		rows, err := report.ReadCSV(path)
		if err != nil {
			serviceutil.Fatal("failed to read fares", err)
		}
		renderFares(rowsToTable(rows), *showLimit)
	},
}
