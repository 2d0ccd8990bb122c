package latam

import (
	"farescan/internal/browser"
	"farescan/internal/fares"
	"farescan/lib/htmlutil"
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

var nonPriceChars = regexp.MustCompile(`[^0-9.,]`)

// CleanPrice keeps only digits and separators, ex. "R$ 1.234,56" -> "1.234,56".
func CleanPrice(text string) string {
	return nonPriceChars.ReplaceAllString(text, "")
}

func requireText(entry *goquery.Selection, selector string) (string, error) {
	match := entry.Find(selector)
	if match.Length() == 0 {
		return "", fmt.Errorf("%w: %s", browser.ErrNotFound, selector)
	}
	return htmlutil.Text(match), nil
}

// Extract reads the result cards in order. A card with fewer than two times
// is not a flight and is skipped without using up an id. A card missing any
// other field stops extraction, the flights read so far are returned along
// with an error wrapping browser.ErrNotFound.
func Extract(entries *goquery.Selection) ([]fares.Flight, error) {
	flights := []fares.Flight{}
	for i := range entries.Nodes {
		entry := entries.Eq(i)

		hours := entry.Find(hourSelector)
		if hours.Length() < 2 {
			continue
		}

		duration, err := requireText(entry, durationSelector)
		if err != nil {
			return flights, fmt.Errorf("entry %d: %w", i, err)
		}
		price, err := requireText(entry, amountSelector)
		if err != nil {
			return flights, fmt.Errorf("entry %d: %w", i, err)
		}
		directness, err := requireText(entry, directnessSelector)
		if err != nil {
			return flights, fmt.Errorf("entry %d: %w", i, err)
		}

		flights = append(flights, fares.Flight{
			ID:            len(flights),
			DepartureTime: htmlutil.Text(hours.Eq(0)),
			ArrivalTime:   htmlutil.Text(hours.Eq(1)),
			Duration:      duration,
			RawPrice:      CleanPrice(price),
			Directness:    directness,
		})
	}
	return flights, nil
}
