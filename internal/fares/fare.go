package fares

import (
	"context"
	"farescan/internal/search"
)

// Flight is a single result card as read off a results page, ID is the
// position among the accepted cards of that page starting from 0.
type Flight struct {
	ID            int
	DepartureTime string
	ArrivalTime   string
	Duration      string
	// RawPrice holds only digits and separators, ex. "1.234,56".
	RawPrice   string
	Directness string
}

type Status int

const (
	// OK means every result card was read.
	OK Status = iota
	// TimedOut means the results never rendered, there are no flights.
	TimedOut
	// Partial means a card was missing a field, the flights read before it are kept.
	Partial
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case TimedOut:
		return "timed_out"
	case Partial:
		return "partial"
	}
	return "unknown"
}

// Outcome is what scraping a single results page produced.
type Outcome struct {
	Status  Status
	Flights []Flight
}

// Scraper reads one results page. Failures of the task itself (the session
// could not start, the page could not load) are returned as an error.
type Scraper interface {
	Scrape(ctx context.Context, url string) (Outcome, error)
}

// Fare is a Flight tagged with the search it came from.
type Fare struct {
	Flight
	// DepartureDate and ReturnDate are YYYY-MM-DD, empty if the search url
	// did not carry them.
	DepartureDate string
	ReturnDate    string
	AirportCodes  string
	Amount        Amount
}

// Table is every fare of a run, in aggregation order until sorted.
type Table []Fare

// Enrich tags the flights of a search with its dates and route.
func Enrich(req search.Request, flights []Flight) []Fare {
	if len(flights) == 0 {
		return nil
	}
	// a url that does not parse just leaves the dates empty
	outbound, inbound, _ := search.ParseURL(req.URL)
	codes := req.AirportCodes()

	out := make([]Fare, len(flights))
	for i, f := range flights {
		out[i] = Fare{
			Flight:        f,
			DepartureDate: outbound,
			ReturnDate:    inbound,
			AirportCodes:  codes,
		}
	}
	return out
}
