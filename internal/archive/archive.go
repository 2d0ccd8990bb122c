// Package archive keeps a sqlite history of scrape runs next to the CSV.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"farescan/internal/db"
	"farescan/internal/fares"
	"fmt"
	"time"
)

// ErrNoRuns is returned by Latest on an empty archive.
var ErrNoRuns = errors.New("archive has no runs")

// Run describes a single invocation of the scraper.
type Run struct {
	ID          int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Origin      string
	Destination string
	Searches    int
	Failed      int
	OutputPath  string
}

type Store struct {
	sqldb  *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
}

// Open opens the archive at path, ":memory:" gives a throwaway archive.
func Open(path string) (Store, error) {
	sqldb, err := db.OpenDB(path)
	if err != nil {
		return Store{}, err
	}
	qry := db.New(sqldb)
	return Store{
		sqldb:  sqldb,
		qry:    qry,
		makeTx: db.NewMakeTx(sqldb, qry),
	}, nil
}

func (s Store) Close() error {
	return s.sqldb.Close()
}

func amountToNull(a fares.Amount) sql.NullFloat64 {
	return sql.NullFloat64{Float64: a.Value, Valid: a.Valid}
}

// Save stores the run and its (already sorted) table in one transaction and
// returns the id of the run.
func (s Store) Save(ctx context.Context, run Run, table fares.Table) (int64, error) {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return 0, err
	}
	defer discard()

	runID, err := tx.CreateRun(ctx, db.CreateRunParams{
		StartedAt:   run.StartedAt.Unix(),
		FinishedAt:  run.FinishedAt.Unix(),
		Origin:      run.Origin,
		Destination: run.Destination,
		Searches:    int64(run.Searches),
		Failed:      int64(run.Failed),
		OutputPath:  run.OutputPath,
	})
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}

	for i, f := range table {
		err = tx.AddFare(ctx, db.AddFareParams{
			RunID:         runID,
			Position:      int64(i),
			FlightID:      int64(f.ID),
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Duration:      f.Duration,
			RawPrice:      f.RawPrice,
			Amount:        amountToNull(f.Amount),
			IsDirect:      f.Directness,
			DepartureDate: f.DepartureDate,
			ReturnDate:    f.ReturnDate,
			AirportCodes:  f.AirportCodes,
		})
		if err != nil {
			return 0, fmt.Errorf("add fare %d: %w", i, err)
		}
	}

	err = commit()
	if err != nil {
		return 0, err
	}
	return runID, nil
}

func fromDBFare(f db.Fare) fares.Fare {
	amount := fares.Missing()
	if f.Amount.Valid {
		amount = fares.NewAmount(f.Amount.Float64)
	}
	return fares.Fare{
		Flight: fares.Flight{
			ID:            int(f.FlightID),
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Duration:      f.Duration,
			RawPrice:      f.RawPrice,
			Directness:    f.IsDirect,
		},
		DepartureDate: f.DepartureDate,
		ReturnDate:    f.ReturnDate,
		AirportCodes:  f.AirportCodes,
		Amount:        amount,
	}
}

func fromDBFares(rows []db.Fare) fares.Table {
	table := make(fares.Table, len(rows))
	for i, r := range rows {
		table[i] = fromDBFare(r)
	}
	return table
}

// Latest returns the most recent run with its fares in their saved order.
func (s Store) Latest(ctx context.Context) (Run, fares.Table, error) {
	row, err := s.qry.GetLatestRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, ErrNoRuns
	}
	if err != nil {
		return Run{}, nil, err
	}
	rows, err := s.qry.GetRunFares(ctx, row.ID)
	if err != nil {
		return Run{}, nil, err
	}

	run := Run{
		ID:          row.ID,
		StartedAt:   time.Unix(row.StartedAt, 0),
		FinishedAt:  time.Unix(row.FinishedAt, 0),
		Origin:      row.Origin,
		Destination: row.Destination,
		Searches:    int(row.Searches),
		Failed:      int(row.Failed),
		OutputPath:  row.OutputPath,
	}
	return run, fromDBFares(rows), nil
}

// Cheapest returns the cheapest priced fares ever seen for a route, across
// every run. A limit <= 0 returns all of them.
func (s Store) Cheapest(ctx context.Context, airportCodes string, limit int) (fares.Table, error) {
	if limit <= 0 {
		// sqlite treats a negative limit as no limit
		limit = -1
	}
	rows, err := s.qry.GetCheapestFares(ctx, db.GetCheapestFaresParams{
		AirportCodes: airportCodes,
		Limit:        int64(limit),
	})
	if err != nil {
		return nil, err
	}
	return fromDBFares(rows), nil
}
