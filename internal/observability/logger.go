package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs so
// packages can log safely from tests and library code.
var Logger = zap.NewNop()

// LogOptions controls how InitLogger builds the process logger.
type LogOptions struct {
	// Level is a zap level name ("debug", "info", "warn", "error").
	Level string
	// OutputPaths defaults to stdout. The terminal UI points this at a file
	// so log lines never land on the rendered screen.
	OutputPaths []string
}

func InitLogger(opts LogOptions) error {
	cfg := zap.NewProductionConfig()

	if opts.Level != "" {
		level, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
		cfg.ErrorOutputPaths = opts.OutputPaths
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx is also attached as a zap.Any("context", ctx) field: the otelzap bridge
// picks up any field holding a context.Context and emits the log record with
// it, which fills the native TraceID/SpanID on exported OTLP records.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	return WithTrace(ctx, Logger)
}

// WithTrace is LoggerWithTrace for an explicit base logger.
func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return logger
	}

	return logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
