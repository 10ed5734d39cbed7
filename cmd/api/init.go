package main

import (
	"context"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

const serviceName = "calculator-api"

// initTelemetry starts OTLP export when enabled and registers the arithmetic
// service instruments. Instruments stay no-op while export is off.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	if !cfg.Telemetry.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	observability.SetServiceName(serviceName)
	observability.SetServiceName(cfg.ServiceName)

	shutdown, err := observability.StartTelemetry(ctx)
	if err != nil {
		return nil, err
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, err
	}

	return shutdown, nil
}
