package fares

import (
	"context"
	"farescan/internal/components/assert"
	"farescan/internal/components/telemetry"
	"farescan/internal/search"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	report_aggregator_task   = "aggregator.task"
	report_aggregator_fares  = "aggregator.fares"
	report_aggregator_failed = "aggregator.failed-tasks"
)

// DefaultWorkers is how many results pages are scraped at once.
const DefaultWorkers = 6

type AggregatorOptions struct {
	// Workers bounds how many tasks run at the same time.
	Workers int
	// LaunchesPerSecond paces how fast new sessions start, 0 disables pacing.
	LaunchesPerSecond float64
}

// Aggregator scrapes every search on a bounded pool and merges the results.
// A failing task never stops its siblings, it only contributes no fares.
type Aggregator struct {
	scraper Scraper
	workers int
	limiter *rate.Limiter
	tel     telemetry.API
}

func NewAggregator(scraper Scraper, options AggregatorOptions, tel telemetry.API) Aggregator {
	assert.NotNil(scraper)
	assert.NotNil(tel)

	workers := options.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var limiter *rate.Limiter
	if options.LaunchesPerSecond > 0 {
		burst := max(1, int(options.LaunchesPerSecond))
		limiter = rate.NewLimiter(rate.Limit(options.LaunchesPerSecond), burst)
	}

	return Aggregator{
		scraper: scraper,
		workers: workers,
		limiter: limiter,
		tel:     tel,
	}
}

type taskResult struct {
	url    string
	status Status
	fares  []Fare
	err    error
}

// Result is the merged table of a run along with how its tasks went.
type Result struct {
	Fares    Table
	Failed   int
	TimedOut int
	Partial  int
}

// Run scrapes every request and returns the concatenation of their fares.
// Fares of a single request keep their page order, requests are merged in
// completion order.
func (a Aggregator) Run(ctx context.Context, reqs []search.Request) Result {
	ctx, span := tracer.Start(ctx, "Aggregator.Run", trace.WithAttributes(
		attribute.Int("requests", len(reqs)),
		attribute.Int("workers", a.workers),
	))
	defer span.End()

	results := make(chan taskResult, len(reqs))

	var g errgroup.Group
	g.SetLimit(a.workers)
	for _, req := range reqs {
		req := req
		g.Go(func() error {
			status, fares, err := a.runTask(ctx, req)
			results <- taskResult{url: req.URL, status: status, fares: fares, err: err}
			// returning nil keeps the group from reporting a failure for
			// the whole run, failures are accounted for in the result
			return nil
		})
	}
	g.Wait()
	close(results)

	result := Result{Fares: Table{}}
	for res := range results {
		if res.err != nil {
			result.Failed++
			a.tel.ReportBroken(report_aggregator_task, res.err, res.url)
			continue
		}
		switch res.status {
		case TimedOut:
			result.TimedOut++
		case Partial:
			result.Partial++
		}
		result.Fares = append(result.Fares, res.fares...)
	}

	a.tel.ReportCount(report_aggregator_fares, int64(len(result.Fares)))
	a.tel.ReportCount(report_aggregator_failed, int64(result.Failed))
	a.tel.ReportDebug("aggregation finished", len(reqs), len(result.Fares), result.Failed)
	span.SetAttributes(
		attribute.Int("fares", len(result.Fares)),
		attribute.Int("failed", result.Failed),
		attribute.Int("timed_out", result.TimedOut),
	)

	return result
}

func (a Aggregator) runTask(ctx context.Context, req search.Request) (status Status, fares []Fare, err error) {
	ctx, span := tracer.Start(ctx, "Aggregator.task", trace.WithAttributes(
		attribute.String("url", req.URL),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			fares = nil
			err = fmt.Errorf("scrape panicked: %v", r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "scrape task failed")
			taskCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		}
	}()

	if a.limiter != nil {
		err := a.limiter.Wait(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("wait for launch slot: %w", err)
		}
	}

	outcome, err := a.scraper.Scrape(ctx, req.URL)
	if err != nil {
		return 0, nil, fmt.Errorf("an error occurred while scraping: %w", err)
	}

	taskCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome.Status.String())))
	flightCounter.Add(ctx, int64(len(outcome.Flights)))
	span.SetAttributes(
		attribute.String("outcome", outcome.Status.String()),
		attribute.Int("flights", len(outcome.Flights)),
	)

	switch outcome.Status {
	case OK:
	case Partial:
		a.tel.ReportWarning(report_aggregator_task, "keeping partial results", req.URL, len(outcome.Flights))
	case TimedOut:
		a.tel.ReportWarning(report_aggregator_task, "results never rendered", req.URL)
		return TimedOut, nil, nil
	}

	return outcome.Status, Enrich(req, outcome.Flights), nil
}
