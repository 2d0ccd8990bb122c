// Package search expands departure dates into the round-trip searches that
// get scraped, one results page url per departure/return pair.
package search

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DateLayout is the layout departure dates are configured in (DD/MM/YYYY).
const DateLayout = "02/01/2006"

// DefaultBaseURL is the LATAM (Brazil, Portuguese) results page.
const DefaultBaseURL = "https://www.latamairlines.com/br/pt/oferta-voos?"

// DefaultReturnOffsets are the trip lengths, in days, searched for every departure.
var DefaultReturnOffsets = []int{13, 14, 15}

// Request is a single round-trip search.
type Request struct {
	Departure   time.Time
	Return      time.Time
	Origin      string
	Destination string
	URL         string
}

// AirportCodes is the ORIGIN_DESTINATION tag attached to every fare of the search.
func (r Request) AirportCodes() string {
	return AirportCodes(r.Origin, r.Destination)
}

func AirportCodes(origin, destination string) string {
	return fmt.Sprintf("%s_%s", strings.ToUpper(origin), strings.ToUpper(destination))
}

type Params struct {
	BaseURL       string
	Origin        string
	Destination   string
	Departures    []string
	ReturnOffsets []int
}

// Plan is the ordered list of searches for a set of params along with every
// return date computed, in the same order.
type Plan struct {
	Requests    []Request
	ReturnDates []time.Time
}

// ParseDates parses DD/MM/YYYY strings, the first malformed one fails the whole list.
func ParseDates(dates []string) ([]time.Time, error) {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		t, err := time.Parse(DateLayout, strings.TrimSpace(d))
		if err != nil {
			return nil, fmt.Errorf("invalid departure date %q (expected DD/MM/YYYY): %w", d, err)
		}
		out[i] = t
	}
	return out, nil
}

// ReturnDates returns departure + offset days for every offset, in order.
func ReturnDates(departure time.Time, offsets []int) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, offset := range offsets {
		out[i] = departure.AddDate(0, 0, offset)
	}
	return out
}

// Generate produces one request per (departure, return) pair, departures in
// the given order and returns in offset order. Only date parsing can fail.
func Generate(p Params) (Plan, error) {
	departures, err := ParseDates(p.Departures)
	if err != nil {
		return Plan{}, err
	}
	offsets := p.ReturnOffsets
	if len(offsets) == 0 {
		offsets = DefaultReturnOffsets
	}
	base := p.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	var plan Plan
	for _, departure := range departures {
		returns := ReturnDates(departure, offsets)
		plan.ReturnDates = append(plan.ReturnDates, returns...)
		for _, ret := range returns {
			plan.Requests = append(plan.Requests, Request{
				Departure:   departure,
				Return:      ret,
				Origin:      p.Origin,
				Destination: p.Destination,
				URL:         BuildURL(base, departure, ret, p.Origin, p.Destination),
			})
		}
	}
	return plan, nil
}

// Timestamp renders a date the way the results page expects it in the query,
// noon UTC of that day.
func Timestamp(date time.Time) string {
	return date.Format("2006-01-02") + "T12:00:00.000Z"
}

// BuildURL appends the search query to base. Keys are encoded in sorted order
// so the same search always maps to the same url.
func BuildURL(base string, departure, ret time.Time, origin, destination string) string {
	query := url.Values{}
	query.Set("origin", strings.ToUpper(origin))
	query.Set("destination", strings.ToUpper(destination))
	query.Set("outbound", Timestamp(departure))
	query.Set("inbound", Timestamp(ret))
	query.Set("adt", "1")
	query.Set("chd", "0")
	query.Set("inf", "0")
	query.Set("trip", "RT")
	query.Set("cabin", "Economy")
	query.Set("redemption", "false")
	query.Set("sort", "RECOMMENDED")

	base = strings.TrimRight(base, "?&")
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + query.Encode()
}

// ParseURL recovers the date portion (text before "T") of the outbound and
// inbound parameters. A parameter that is absent comes back empty.
func ParseURL(raw string) (outbound, inbound string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	query := u.Query()
	return DatePortion(query.Get("outbound")), DatePortion(query.Get("inbound")), nil
}

// DatePortion returns everything before the first "T" of a timestamp.
func DatePortion(timestamp string) string {
	date, _, _ := strings.Cut(timestamp, "T")
	return date
}
