// Package report sorts an aggregated fare table and persists it as CSV.
package report

import (
	"encoding/csv"
	"errors"
	"farescan/internal/fares"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/jszwec/csvutil"
)

// DefaultPath is where a run is written when nothing else is configured.
const DefaultPath = "./Flights/aggregated_flights.csv"

// Row is one line of the output file, field order is column order.
type Row struct {
	ID            int          `csv:"id"`
	DepartureTime string       `csv:"departure_time"`
	ArrivalTime   string       `csv:"arrival_time"`
	Duration      string       `csv:"duration"`
	Amount        fares.Amount `csv:"numeric_amount"`
	Directness    string       `csv:"is_direct"`
	DepartureDate string       `csv:"departure_date_formatted"`
	ReturnDate    string       `csv:"return_date_formatted"`
	AirportCodes  string       `csv:"airport_codes"`
}

func NewRow(f fares.Fare) Row {
	return Row{
		ID:            f.ID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Duration:      f.Duration,
		Amount:        f.Amount,
		Directness:    f.Directness,
		DepartureDate: f.DepartureDate,
		ReturnDate:    f.ReturnDate,
		AirportCodes:  f.AirportCodes,
	}
}

// Sort orders the table by amount ascending, fares without an amount go
// last and equal fares keep their relative order.
func Sort(table fares.Table) {
	slices.SortStableFunc(table, func(a, b fares.Fare) int {
		switch {
		case a.Amount.Less(b.Amount):
			return -1
		case b.Amount.Less(a.Amount):
			return 1
		}
		return 0
	})
}

// Marshal renders the table as CSV with a header, even when empty.
func Marshal(table fares.Table) ([]byte, error) {
	rows := make([]Row, 0, len(table))
	for _, f := range table {
		rows = append(rows, NewRow(f))
	}
	return csvutil.Marshal(rows)
}

// WriteCSV writes the table to path, creating missing directories and
// replacing any previous file. It returns the absolute path written.
func WriteCSV(path string, table fares.Table) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	data, err := Marshal(table)
	if err != nil {
		return "", fmt.Errorf("encode csv: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(abs), 0o755)
	if err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	err = os.WriteFile(abs, data, 0o644)
	if err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	slog.Info("saved", "path", abs, "rows", len(table))
	return abs, nil
}

// ReadCSV reads back a file written by WriteCSV.
func ReadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := csvutil.NewDecoder(csv.NewReader(f))
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if err != nil {
		return nil, err
	}

	rows := []Row{}
	for {
		var row Row
		err := decoder.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
