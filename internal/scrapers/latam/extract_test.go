package latam

import (
	"farescan/internal/browser"
	"farescan/internal/fares"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T) string {
	t.Helper()
	content, err := os.ReadFile("testdata/results.html")
	require.NoError(t, err)
	return string(content)
}

func TestExtractFixture(t *testing.T) {
	entries, err := browser.ChildrenOf(readFixture(t), ResultsList)
	require.NoError(t, err)
	require.Equal(t, 4, entries.Length())

	flights, err := Extract(entries)
	require.NoError(t, err)

	expected := []fares.Flight{
		{
			ID:            0,
			DepartureTime: "08:15",
			ArrivalTime:   "01:20",
			Duration:      "12 h 5 min",
			RawPrice:      "4.512,37",
			Directness:    "Direto",
		},
		{
			ID:            1,
			DepartureTime: "22:40",
			ArrivalTime:   "18:05",
			Duration:      "15 h 25 min",
			RawPrice:      "3.899,00",
			Directness:    "1 parada",
		},
	}
	if diff := cmp.Diff(expected, flights); diff != "" {
		t.Fatalf("unexpected flights (-want +got):\n%s", diff)
	}
}

func card(hours ...string) string {
	out := "<li>"
	for _, h := range hours {
		out += `<span class="x-HourFlight">` + h + `</span>`
	}
	out += `<div class="flight-duration"><span>Duração</span><span>11 h</span></div>`
	out += `<div class="a-TextAmount">R$ 100,00</div>`
	out += `<div class="b-ContainerFooterCard"><a><span>Direto</span></a></div>`
	return out + "</li>"
}

func list(cards ...string) string {
	out := `<ol aria-label="Voos disponíveis.">`
	for _, c := range cards {
		out += c
	}
	return out + "</ol>"
}

func TestExtractSkipRule(t *testing.T) {
	cases := []struct {
		name    string
		hours   []string
		records int
	}{
		{"no times", nil, 0},
		{"one time", []string{"08:00"}, 0},
		{"two times", []string{"08:00", "19:00"}, 1},
		{"three times", []string{"08:00", "19:00", "+1"}, 1},
	}
	for _, test := range cases {
		entries, err := browser.ChildrenOf(list(card(test.hours...)), ResultsList)
		require.NoError(t, err, test.name)

		flights, err := Extract(entries)
		require.NoError(t, err, test.name)
		require.Len(t, flights, test.records, test.name)
		if test.records > 0 {
			require.Equal(t, "08:00", flights[0].DepartureTime, test.name)
			require.Equal(t, "19:00", flights[0].ArrivalTime, test.name)
		}
	}
}

func TestExtractIdsSkipMalformed(t *testing.T) {
	entries, err := browser.ChildrenOf(list(
		card("01:00"),
		card("02:00", "03:00"),
		card(),
		card("04:00", "05:00"),
	), ResultsList)
	require.NoError(t, err)

	flights, err := Extract(entries)
	require.NoError(t, err)
	require.Len(t, flights, 2)
	require.Equal(t, 0, flights[0].ID)
	require.Equal(t, "02:00", flights[0].DepartureTime)
	require.Equal(t, 1, flights[1].ID)
	require.Equal(t, "04:00", flights[1].DepartureTime)
}

func TestExtractIgnoresNonEntries(t *testing.T) {
	banner := `<div class="promo"><span class="x-HourFlight">10:00</span><span class="x-HourFlight">11:00</span></div>`
	entries, err := browser.ChildrenOf(list(banner, card("02:00", "03:00")), ResultsList)
	require.NoError(t, err)

	flights, err := Extract(entries)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	require.Equal(t, 0, flights[0].ID)
	require.Equal(t, "02:00", flights[0].DepartureTime)
}

func TestExtractMissingField(t *testing.T) {
	broken := `<li><span class="x-HourFlight">06:00</span><span class="x-HourFlight">07:00</span>` +
		`<div class="a-TextAmount">R$ 1,00</div></li>`
	entries, err := browser.ChildrenOf(list(card("02:00", "03:00"), broken, card("04:00", "05:00")), ResultsList)
	require.NoError(t, err)

	flights, err := Extract(entries)
	require.ErrorIs(t, err, browser.ErrNotFound)
	require.Len(t, flights, 1)
	require.Equal(t, "02:00", flights[0].DepartureTime)
}

func TestCleanPrice(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"R$ 1.234,56", "1.234,56"},
		{"R$ 89,90 por adulto", "89,90"},
		{"BRL 12.345", "12.345"},
		{"Esgotado", ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanPrice(test.in))
	}
}
