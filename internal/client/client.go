// Package client talks to the remote arithmetic service.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("calculator.client")

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 1 << 20

// Client posts calculations to one endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
	ins      instruments
}

type Option func(*Client)

// WithHTTPClient replaces the default client, whose transport propagates
// request IDs and trace context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero keeps the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(endpoint string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Transport: observability.NewTransport(nil)},
		logger:   observability.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	ins, err := newInstruments(otel.Meter("calculator.client"))
	if err != nil {
		return nil, err
	}
	c.ins = ins

	return c, nil
}

// Calculate sends a op b and returns the service's result. Failures are
// *TransportError or *ApplicationError.
func (c *Client) Calculate(ctx context.Context, a float64, op calculator.Operation, b float64) (float64, error) {
	ctx, requestID := observability.EnsureRequestID(ctx)

	ctx, span := tracer.Start(ctx, "calculator.client.calculate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("calculator.operation", op.String()),
			attribute.Float64("calculator.operand.a", a),
			attribute.Float64("calculator.operand.b", b),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	logger := observability.WithTrace(ctx, c.logger)

	start := time.Now()
	result, err := c.do(ctx, a, op, b)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	attrs := metric.WithAttributes(attribute.String("operation", op.String()))
	c.ins.requests.Add(ctx, 1, attrs)
	c.ins.latency.Record(ctx, elapsed, attrs)

	if err != nil {
		kind := errorKind(err)
		c.ins.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op.String()),
			attribute.String("kind", kind),
		))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		logger.Warn("calculation failed",
			zap.String("operation", op.String()),
			zap.Float64("a", a),
			zap.Float64("b", b),
			zap.String("kind", kind),
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		)
		return 0, err
	}

	span.SetAttributes(attribute.Float64("calculator.result", result))
	span.SetStatus(codes.Ok, "")

	logger.Debug("calculation completed",
		zap.String("operation", op.String()),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	return result, nil
}

func (c *Client) do(ctx context.Context, a float64, op calculator.Operation, b float64) (float64, error) {
	form := url.Values{
		calculator.FieldFirst:     {formatOperand(a)},
		calculator.FieldOperation: {op.String()},
		calculator.FieldSecond:    {formatOperand(b)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(observability.RequestIDHeader, observability.RequestIDFromContext(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return 0, &TransportError{StatusCode: resp.StatusCode}
	}

	var body calculator.CalculateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&body); err != nil {
		return 0, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if body.Error != "" {
		return 0, &ApplicationError{Message: body.Error}
	}
	if body.Result == nil {
		return 0, &ApplicationError{Message: "response has no result"}
	}

	return *body.Result, nil
}

// formatOperand renders v the way it is sent on the wire: shortest decimal
// text without an exponent.
func formatOperand(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func errorKind(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return "application"
	}
	return "transport"
}
