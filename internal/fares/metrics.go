package fares

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("farescan.fares")
var meter = otel.Meter("farescan.fares")

var taskCounter, _ = meter.Int64Counter(
	"scrape_tasks",
	metric.WithDescription("Scrape tasks finished, by outcome."),
)
var flightCounter, _ = meter.Int64Counter(
	"scraped_flights",
	metric.WithDescription("Flights read off results pages."),
)
