package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &Recorder{}
	tel := NewScopedAPI("latam", NewScopedAPI("scraper", rec))

	tel.ReportBroken("scraper.scrape", "a")
	tel.ReportWarning("scraper.extract")
	tel.ReportDebug("page is ready", 1)
	tel.ReportCount("flights", 4)

	reports := rec.Reports()
	require.Len(t, reports, 4)

	cases := []struct {
		level Level
		id    string
	}{
		{LevelBroken, "scraper: latam: scraper.scrape"},
		{LevelWarning, "scraper: latam: scraper.extract"},
		{LevelDebug, "scraper: latam: page is ready"},
		{LevelCount, "scraper: latam: flights"},
	}
	for i, test := range cases {
		require.Equal(t, test.level, reports[i].Level)
		require.Equal(t, test.id, reports[i].ID)
	}
	require.Equal(t, int64(4), reports[3].Count)

	require.Len(t, rec.Filter(LevelBroken, "scraper.scrape"), 1)
	require.Empty(t, rec.Filter(LevelWarning, "scraper.scrape"))
}
