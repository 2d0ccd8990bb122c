package latam

import (
	"context"
	"errors"
	"farescan/internal/browser"
	"farescan/internal/components/assert"
	"farescan/internal/components/telemetry"
	"farescan/internal/fares"
	"fmt"
	"time"
)

const (
	report_scraper_render  = "scraper.render"
	report_scraper_extract = "scraper.extract"
	report_scraper_close   = "scraper.close"
)

// DefaultRenderTimeout is how long a results page gets to show its first card.
const DefaultRenderTimeout = 20 * time.Second

// Scraper reads a LATAM results page, every call gets its own session.
type Scraper struct {
	launcher      browser.Launcher
	renderTimeout time.Duration
	tel           telemetry.API
}

func NewScraper(launcher browser.Launcher, renderTimeout time.Duration, tel telemetry.API) Scraper {
	assert.NotNil(launcher)
	assert.NotNil(tel)
	if renderTimeout <= 0 {
		renderTimeout = DefaultRenderTimeout
	}
	return Scraper{
		launcher:      launcher,
		renderTimeout: renderTimeout,
		tel:           telemetry.NewScopedAPI("latam", tel),
	}
}

func (s Scraper) Scrape(ctx context.Context, url string) (fares.Outcome, error) {
	session, err := s.launcher.Launch(ctx)
	if err != nil {
		return fares.Outcome{}, fmt.Errorf("launch session: %w", err)
	}
	defer func() {
		err := session.Close()
		if err != nil {
			s.tel.ReportWarning(report_scraper_close, err, url)
		}
	}()
	s.tel.ReportDebug("session launched", url)

	err = session.Navigate(ctx, url)
	if err != nil {
		return fares.Outcome{}, err
	}

	err = session.WaitForSelector(ctx, ResultsEntries, s.renderTimeout)
	if errors.Is(err, browser.ErrTimeout) {
		s.tel.ReportWarning(report_scraper_render, "loading took too much time", url, s.renderTimeout.String())
		return fares.Outcome{Status: fares.TimedOut}, nil
	}
	if err != nil {
		return fares.Outcome{}, fmt.Errorf("wait for results: %w", err)
	}
	s.tel.ReportDebug("page is ready", url)

	entries, err := session.ExtractChildren(ctx, ResultsList)
	if errors.Is(err, browser.ErrNotFound) {
		s.tel.ReportWarning(report_scraper_extract, err, url)
		return fares.Outcome{Status: fares.Partial, Flights: []fares.Flight{}}, nil
	}
	if err != nil {
		return fares.Outcome{}, fmt.Errorf("extract results: %w", err)
	}

	flights, err := Extract(entries)
	if err != nil {
		s.tel.ReportWarning(report_scraper_extract, err, url, len(flights))
		return fares.Outcome{Status: fares.Partial, Flights: flights}, nil
	}

	s.tel.ReportDebug("results extracted", url, entries.Length(), len(flights))
	return fares.Outcome{Status: fares.OK, Flights: flights}, nil
}
