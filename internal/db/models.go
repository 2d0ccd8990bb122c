package db

import (
	"database/sql"
)

type ScrapeRun struct {
	ID          int64
	StartedAt   int64
	FinishedAt  int64
	Origin      string
	Destination string
	Searches    int64
	Failed      int64
	OutputPath  string
}

type Fare struct {
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
