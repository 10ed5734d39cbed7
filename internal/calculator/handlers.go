package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator")

// Calculate handles POST /api/calculate with form fields num1, operation and
// num2. Division by zero and an overflowing result are application errors:
// 200 with {"error": ...}. Malformed input is rejected with 400.
func Calculate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.calculate")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "unknown", "invalid form body", err, http.StatusBadRequest, w)
		return
	}

	opName := r.PostFormValue(FieldOperation)
	op, err := ParseOperation(opName)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "Invalid operation", err, http.StatusBadRequest, w)
		return
	}

	a, err := parseOperand(r.PostFormValue(FieldFirst))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), "Invalid num1", err, http.StatusBadRequest, w)
		return
	}

	b, err := parseOperand(r.PostFormValue(FieldSecond))
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), "Invalid num2", err, http.StatusBadRequest, w)
		return
	}

	result, err := compute(ctx, span, logger, op, a, b)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), DivisionByZeroMessage, err, http.StatusOK, w)
		return
	case errors.Is(err, ErrOutOfRange):
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), OutOfRangeMessage, err, http.StatusOK, w)
		return
	case err != nil:
		observability.RecordError(ctx, span, logger, errorCounter, op.String(), err.Error(), err, http.StatusBadRequest, w)
		return
	}

	if err := handlers.WriteJSON(w, http.StatusOK, CalculateResponse{Result: &result}); err != nil {
		logger.Error("write response failed", zap.Error(err))
	}
}

// Evaluate handles POST /calculator/{operation} with a JSON {"a","b"} body.
func Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.evaluate")
	defer span.End()

	opName := chi.URLParam(r, "operation")
	op := Operation(opName)
	if !op.Valid() {
		err := fmt.Errorf("%w: %q", ErrUnknownOperation, opName)
		observability.RecordError(ctx, span, logger, errorCounter, opName, "unknown operation", err, http.StatusNotFound, w)
		return
	}

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if !finite(req.A) || !finite(req.B) {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid numeric input", fmt.Errorf("a=%g b=%g", req.A, req.B), http.StatusBadRequest, w)
		return
	}

	result, err := compute(ctx, span, logger, op, req.A, req.B)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	err = handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         req.A,
		B:         req.B,
		Result:    result,
		RequestID: observability.RequestIDFromContext(ctx),
	})
	if err != nil {
		logger.Error("write response failed", zap.Error(err))
	}
}

func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	return ctx, span, observability.LoggerWithTrace(ctx)
}

// compute applies op and records metrics, span attributes and a log line for
// a successful calculation. Failures are left to the caller to report.
func compute(ctx context.Context, span trace.Span, logger *zap.Logger, op Operation, a, b float64) (float64, error) {
	span.SetAttributes(
		attribute.String("calculator.operation", op.String()),
		attribute.Float64("calculator.operand.a", a),
		attribute.Float64("calculator.operand.b", b),
	)

	start := time.Now()
	result, err := op.Apply(a, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		return 0, err
	}

	attrs := metric.WithAttributes(attribute.String("operation", op.String()))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.String("operation", op.String()),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
		zap.Float64("duration_ms", elapsed),
	)

	return result, nil
}

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !finite(v) {
		return 0, fmt.Errorf("non-finite operand %q", s)
	}
	return v, nil
}
