package report_test

import (
	"context"
	"farescan/internal/browser"
	"farescan/internal/components/telemetry"
	"farescan/internal/fares"
	"farescan/internal/report"
	"farescan/internal/scrapers/latam"
	"farescan/internal/search"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type card struct {
	price string
}

func renderPage(cards ...card) string {
	var b strings.Builder
	b.WriteString(`<html><body><ol aria-label="Voos disponíveis.">`)
	for i, c := range cards {
		departure, arrival, duration, directness := "08:00", "20:00", "12 h", "Direto"
		if i == 1 {
			departure, arrival, duration, directness = "10:00", "22:30", "12 h 30 min", "1 parada"
		}
		fmt.Fprintf(&b, `<li>
			<span class="TextHourFlight">%s</span>
			<span class="TextHourFlight">%s</span>
			<div class="flight-duration"><span>Duração</span><span>%s</span></div>
			<div class="TextAmount">%s</div>
			<div class="ContainerFooterCard"><a><span>%s</span></a></div>
		</li>`, departure, arrival, duration, c.price, directness)
	}
	b.WriteString(`</ol></body></html>`)
	return b.String()
}

func TestPipeline(t *testing.T) {
	pages := map[string]string{
		"2025-09-13/2025-09-26": renderPage(card{"R$ 2.500,00"}, card{"R$ 1.999,90"}),
		"2025-09-13/2025-09-27": renderPage(card{"R$ 3.100,50"}, card{"Esgotado"}),
		"2025-09-14/2025-09-27": renderPage(card{"R$ 899,00"}, card{"R$ 4.000,00"}),
		"2025-09-14/2025-09-28": renderPage(card{"R$ 1.234,56"}, card{"R$ 2.750,10"}),
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := search.DatePortion(query.Get("outbound")) + "/" + search.DatePortion(query.Get("inbound"))
		page, ok := pages[key]
		if !ok {
			// never renders the results list
			fmt.Fprint(w, `<html><body><div class="loading"></div></body></html>`)
			return
		}
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	plan, err := search.Generate(search.Params{
		BaseURL:     server.URL + "/br/pt/oferta-voos?",
		Origin:      "GRU",
		Destination: "FCO",
		Departures:  []string{"13/09/2025", "14/09/2025"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Requests, 6)

	rec := &telemetry.Recorder{}
	launcher := browser.NewHTTPLauncher(browser.HTTPOptions{PollInterval: 10 * time.Millisecond}, rec)
	scraper := latam.NewScraper(launcher, 50*time.Millisecond, rec)
	aggregator := fares.NewAggregator(scraper, fares.AggregatorOptions{Workers: 6}, rec)

	result := aggregator.Run(context.Background(), plan.Requests)
	require.Equal(t, 2, result.TimedOut)
	require.Zero(t, result.Failed)
	table := result.Fares
	require.Len(t, table, 8)
	fares.Normalize(table)
	report.Sort(table)

	path := filepath.Join(t.TempDir(), "Flights", "aggregated_flights.csv")
	_, err = report.WriteCSV(path, table)
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, ""+
		"id,departure_time,arrival_time,duration,numeric_amount,is_direct,departure_date_formatted,return_date_formatted,airport_codes\n"+
		"0,08:00,20:00,12 h,899,Direto,2025-09-14,2025-09-27,GRU_FCO\n"+
		"0,08:00,20:00,12 h,1234.56,Direto,2025-09-14,2025-09-28,GRU_FCO\n"+
		"1,10:00,22:30,12 h 30 min,1999.9,1 parada,2025-09-13,2025-09-26,GRU_FCO\n"+
		"0,08:00,20:00,12 h,2500,Direto,2025-09-13,2025-09-26,GRU_FCO\n"+
		"1,10:00,22:30,12 h 30 min,2750.1,1 parada,2025-09-14,2025-09-28,GRU_FCO\n"+
		"0,08:00,20:00,12 h,3100.5,Direto,2025-09-13,2025-09-27,GRU_FCO\n"+
		"1,10:00,22:30,12 h 30 min,4000,1 parada,2025-09-14,2025-09-27,GRU_FCO\n"+
		"1,10:00,22:30,12 h 30 min,,1 parada,2025-09-13,2025-09-27,GRU_FCO\n",
		string(written),
	)

	require.Len(t, rec.Filter(telemetry.LevelWarning, "scraper.render"), 2)
}
