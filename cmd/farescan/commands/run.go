package commands

import (
	"context"
	"farescan/internal/archive"
	"farescan/internal/browser"
	"farescan/internal/components/chrono"
	"farescan/internal/components/telemetry"
	"farescan/internal/config"
	"farescan/internal/fares"
	"farescan/internal/report"
	"farescan/internal/scrapers/latam"
	"farescan/internal/search"
	"fmt"
	"log/slog"
	"time"
)

func newLauncher(cfg config.Config, tel telemetry.API) browser.Launcher {
	if cfg.Browser.Driver == config.DriverHTTP {
		return browser.NewHTTPLauncher(browser.HTTPOptions{}, telemetry.NewScopedAPI("http", tel))
	}
	return browser.NewChromeLauncher(browser.ChromeOptions{
		ExecPath: cfg.Browser.ChromePath,
		Headless: !cfg.Browser.ShowWindow,
	})
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(search.DateLayout)
	}
	return out
}

// runScrape is a whole run: generate the searches, scrape them, write the
// sorted table and archive it if configured.
func runScrape(ctx context.Context, cfg config.Config, clock chrono.API) (fares.Table, error) {
	renderTimeout, err := cfg.RenderTimeoutDuration()
	if err != nil {
		return nil, err
	}
	plan, err := search.Generate(cfg.SearchParams())
	if err != nil {
		return nil, err
	}
	slog.Info(
		"generated searches",
		"route", search.AirportCodes(cfg.Origin, cfg.Destination),
		"searches", len(plan.Requests),
		"workers", cfg.Workers,
		"driver", cfg.Browser.Driver,
	)
	slog.Debug("return dates", "dates", formatDates(plan.ReturnDates))

	tel := telemetry.SlogAPI{}
	scraper := latam.NewScraper(newLauncher(cfg, tel), renderTimeout, tel)
	aggregator := fares.NewAggregator(scraper, fares.AggregatorOptions{
		Workers:           cfg.Workers,
		LaunchesPerSecond: cfg.Browser.Pacing(),
	}, telemetry.NewScopedAPI("fares", tel))

	startedAt := clock.Now()
	result := aggregator.Run(ctx, plan.Requests)
	finishedAt := clock.Now()

	table := result.Fares
	fares.Normalize(table)
	report.Sort(table)

	path, err := report.WriteCSV(cfg.Output, table)
	if err != nil {
		return nil, err
	}
	slog.Info(
		"scrape finished",
		"fares", len(table),
		"failed", result.Failed,
		"timed_out", result.TimedOut,
		"partial", result.Partial,
		"took", finishedAt.Sub(startedAt).Round(time.Second).String(),
	)

	if cfg.Archive == "" {
		return table, nil
	}
	store, err := archive.Open(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()
	runID, err := store.Save(ctx, archive.Run{
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Origin:      cfg.Origin,
		Destination: cfg.Destination,
		Searches:    len(plan.Requests),
		Failed:      result.Failed,
		OutputPath:  path,
	}, table)
	if err != nil {
		return nil, fmt.Errorf("archive run: %w", err)
	}
	slog.Info("archived run", "archive", cfg.Archive, "run", runID)

	return table, nil
}
