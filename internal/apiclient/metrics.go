package apiclient

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(meter metric.Meter) *clientMetrics {
	requests, err := meter.Int64Counter("klubraum.client.requests",
		metric.WithDescription("Requests sent to the Klubraum API"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		log.Printf("apiclient: requests counter: %v", err)
		requests, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("klubraum.client.requests")
	}
	duration, err := meter.Float64Histogram("klubraum.client.request.duration",
		metric.WithDescription("Round-trip time of Klubraum API requests"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		log.Printf("apiclient: duration histogram: %v", err)
		duration, _ = noop.NewMeterProvider().Meter(instrumentationName).Float64Histogram("klubraum.client.request.duration")
	}
	return &clientMetrics{requests: requests, duration: duration}
}

// record adds one request observation. status is 0 for transport errors.
func (m *clientMetrics) record(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
		attribute.Int("http.response.status_code", status),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}
