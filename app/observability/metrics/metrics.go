package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ChatRequestsTotal      metric.Int64Counter
	PropertyRequestsTotal  metric.Int64Counter
	RequestDurationSeconds metric.Float64Histogram
	CompletionQueueDepth   metric.Int64UpDownCounter
	CompletionRetriesTotal metric.Int64Counter
	GeocodeMissesTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Get returns the application's metric instruments, creating them on
// first use from the globally configured MeterProvider. Before the
// provider is set up (e.g. in unit tests) the instruments come from
// the no-op provider and recording is free.
func Get() *AppMetrics {
	once.Do(initInstruments)
	return appMetrics
}

func initInstruments() {
	meter := otel.GetMeterProvider().Meter("estate-assistant")
	m := &AppMetrics{}
	var err error

	m.ChatRequestsTotal, err = meter.Int64Counter(
		"chat_requests_total",
		metric.WithDescription("Total number of chat requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create chat_requests_total: %v", err)
	}

	m.PropertyRequestsTotal, err = meter.Int64Counter(
		"property_requests_total",
		metric.WithDescription("Total number of property search requests completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create property_requests_total: %v", err)
	}

	m.RequestDurationSeconds, err = meter.Float64Histogram(
		"request_duration_seconds",
		metric.WithDescription("Duration of API requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create request_duration_seconds: %v", err)
	}

	m.CompletionQueueDepth, err = meter.Int64UpDownCounter(
		"completion_queue_depth",
		metric.WithDescription("Number of completion requests waiting in or being serviced by the queue"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create completion_queue_depth: %v", err)
	}

	m.CompletionRetriesTotal, err = meter.Int64Counter(
		"completion_retries_total",
		metric.WithDescription("Total number of rate-limited completion attempts that were retried"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create completion_retries_total: %v", err)
	}

	m.GeocodeMissesTotal, err = meter.Int64Counter(
		"geocode_misses_total",
		metric.WithDescription("Total number of location lookups the geocoder could not resolve"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		log.Fatalf("Metrics: failed to create geocode_misses_total: %v", err)
	}

	appMetrics = m
}
