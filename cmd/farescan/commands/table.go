package commands

import (
	"farescan/internal/fares"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderFares(rows fares.Table, limit int) {
	t := newTable()
	t.AppendHeader(tableHeader())
	for i, f := range rows {
		if limit > 0 && i >= limit {
			break
		}
		t.AppendRow(tableRow(f))
	}
	if limit > 0 && len(rows) > limit {
		t.AppendFooter(tableFooter(len(rows) - limit))
	}
	t.Render()
}

func tableHeader() table.Row {
	return table.Row{"#", "Departure", "Return", "Depart", "Arrive", "Duration", "Price (BRL)", "Stops", "Route"}
}

func tableRow(f fares.Fare) table.Row {
	return table.Row{
		f.ID,
		f.DepartureDate,
		f.ReturnDate,
		f.DepartureTime,
		f.ArrivalTime,
		f.Duration,
		f.Amount.String(),
		f.Directness,
		f.AirportCodes,
	}
}

func tableFooter(hidden int) table.Row {
	return table.Row{"", fmt.Sprintf("%d more", hidden)}
}
