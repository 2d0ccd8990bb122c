package db

import (
	"context"
	"database/sql"
)

const createRun = `-- name: CreateRun :one
insert into scrape_run(started_at, finished_at, origin, destination, searches, failed, output_path)
values (?, ?, ?, ?, ?, ?, ?)
returning id
`

type CreateRunParams struct {
	StartedAt   int64
	FinishedAt  int64
	Origin      string
	Destination string
	Searches    int64
	Failed      int64
	OutputPath  string
}

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createRun,
		arg.StartedAt,
		arg.FinishedAt,
		arg.Origin,
		arg.Destination,
		arg.Searches,
		arg.Failed,
		arg.OutputPath,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const addFare = `-- name: AddFare :exec
insert into fare(
    run_id, position, flight_id, departure_time, arrival_time, duration,
    raw_price, amount, is_direct, departure_date, return_date, airport_codes
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type AddFareParams struct {
	RunID         int64
	Position      int64
	FlightID      int64
	DepartureTime string
	ArrivalTime   string
	Duration      string
	RawPrice      string
	Amount        sql.NullFloat64
	IsDirect      string
	DepartureDate string
	ReturnDate    string
	AirportCodes  string
}

func (q *Queries) AddFare(ctx context.Context, arg AddFareParams) error {
	_, err := q.db.ExecContext(ctx, addFare,
		arg.RunID,
		arg.Position,
		arg.FlightID,
		arg.DepartureTime,
		arg.ArrivalTime,
		arg.Duration,
		arg.RawPrice,
		arg.Amount,
		arg.IsDirect,
		arg.DepartureDate,
		arg.ReturnDate,
		arg.AirportCodes,
	)
	return err
}

const getLatestRun = `-- name: GetLatestRun :one
select id, started_at, finished_at, origin, destination, searches, failed, output_path from scrape_run
order by id desc
limit 1
`

func (q *Queries) GetLatestRun(ctx context.Context) (ScrapeRun, error) {
	row := q.db.QueryRowContext(ctx, getLatestRun)
	var i ScrapeRun
	err := row.Scan(
		&i.ID,
		&i.StartedAt,
		&i.FinishedAt,
		&i.Origin,
		&i.Destination,
		&i.Searches,
		&i.Failed,
		&i.OutputPath,
	)
	return i, err
}

const getRunFares = `-- name: GetRunFares :many
select run_id, position, flight_id, departure_time, arrival_time, duration, raw_price, amount, is_direct, departure_date, return_date, airport_codes from fare
where run_id = ?
order by position asc
`

func (q *Queries) GetRunFares(ctx context.Context, runID int64) ([]Fare, error) {
	rows, err := q.db.QueryContext(ctx, getRunFares, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Fare
	for rows.Next() {
		var i Fare
		if err := rows.Scan(
			&i.RunID,
			&i.Position,
			&i.FlightID,
			&i.DepartureTime,
			&i.ArrivalTime,
			&i.Duration,
			&i.RawPrice,
			&i.Amount,
			&i.IsDirect,
			&i.DepartureDate,
			&i.ReturnDate,
			&i.AirportCodes,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getCheapestFares = `-- name: GetCheapestFares :many
select run_id, position, flight_id, departure_time, arrival_time, duration, raw_price, amount, is_direct, departure_date, return_date, airport_codes from fare
where airport_codes = ? and amount is not null
order by amount asc, run_id desc
limit ?
`

type GetCheapestFaresParams struct {
	AirportCodes string
	Limit        int64
}

func (q *Queries) GetCheapestFares(ctx context.Context, arg GetCheapestFaresParams) ([]Fare, error) {
	rows, err := q.db.QueryContext(ctx, getCheapestFares, arg.AirportCodes, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Fare
	for rows.Next() {
		var i Fare
		if err := rows.Scan(
			&i.RunID,
			&i.Position,
			&i.FlightID,
			&i.DepartureTime,
			&i.ArrivalTime,
			&i.Duration,
			&i.RawPrice,
			&i.Amount,
			&i.IsDirect,
			&i.DepartureDate,
			&i.ReturnDate,
			&i.AirportCodes,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
