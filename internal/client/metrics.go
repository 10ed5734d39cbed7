package client

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

type instruments struct {
	requests metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (instruments, error) {
	var (
		ins instruments
		err error
	)

	ins.requests, err = meter.Int64Counter("calculator.client.requests.total",
		metric.WithDescription("Calculations sent to the arithmetic service"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return ins, fmt.Errorf("creating request counter: %w", err)
	}

	ins.failures, err = meter.Int64Counter("calculator.client.errors.total",
		metric.WithDescription("Failed calculations by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return ins, fmt.Errorf("creating error counter: %w", err)
	}

	ins.latency, err = meter.Float64Histogram("calculator.client.duration",
		metric.WithDescription("Round trip time of calculations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000),
	)
	if err != nil {
		return ins, fmt.Errorf("creating latency histogram: %w", err)
	}

	return ins, nil
}
