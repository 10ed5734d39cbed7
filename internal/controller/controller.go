// Package controller holds the calculator's input handling and display state.
//
// A Controller owns one State and pushes every change to its Display and
// ErrorBanner ports. Arithmetic is delegated to a Resolver. The lock is not
// held across a resolution, so input keeps flowing while a request is in
// flight and the last response to arrive wins.
package controller

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go-chi-calculator/internal/calculator"

	"go.uber.org/zap"
)

// DefaultBannerTTL is how long an error stays on the banner.
const DefaultBannerTTL = 5 * time.Second

// ErrNonFiniteResult is returned when the resolver answers with NaN or ±Inf.
var ErrNonFiniteResult = errors.New("non-finite result")

// AfterFunc runs f after d and returns a func that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type Controller struct {
	mu    sync.Mutex
	state State

	resolver Resolver
	display  Display
	banner   ErrorBanner
	logger   *zap.Logger

	bannerTTL  time.Duration
	afterFunc  AfterFunc
	bannerGen  uint64
	stopBanner func() bool
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithBannerTTL sets how long errors stay visible. Non-positive values keep
// the default.
func WithBannerTTL(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.bannerTTL = d
		}
	}
}

// WithAfterFunc replaces the timer used to hide the error banner.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) { c.afterFunc = f }
}

// New builds a Controller and renders its initial state. display and banner
// may be nil.
func New(resolver Resolver, display Display, banner ErrorBanner, opts ...Option) *Controller {
	if display == nil {
		display = DisplayFuncs{}
	}
	if banner == nil {
		banner = BannerFuncs{}
	}

	c := &Controller{
		state:     initialState(),
		resolver:  resolver,
		display:   display,
		banner:    banner,
		logger:    zap.NewNop(),
		bannerTTL: DefaultBannerTTL,
		afterFunc: timeAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.renderAll()
	return c
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PressDigit appends d ('0'..'9') to the display buffer.
func (c *Controller) PressDigit(d rune) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q is not a digit", ErrInvalidInput, d)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendToBuffer(string(d))
	return nil
}

// PressDecimal adds a decimal point unless the buffer already has one.
func (c *Controller) PressDecimal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appendToBuffer(".")
}

func (c *Controller) appendToBuffer(v string) {
	s := &c.state

	if s.Phase == Error {
		s.Phase = Idle
	}
	if s.Overwrite {
		s.Buffer = ""
		s.Overwrite = false
	}

	switch {
	case v == "." && strings.Contains(s.Buffer, "."):
	case v == "." && s.Buffer == "":
		s.Buffer = "0."
	case v != "." && (s.Buffer == "0" || s.Buffer == ""):
		s.Buffer = v
	default:
		s.Buffer += v
	}

	c.display.ShowCurrent(s.Buffer)
}

// PressOperation selects op. With nothing pending the buffer becomes the
// first operand. With a calculation pending it is resolved first and its
// result becomes the first operand. Pressing another operation before typing
// a new operand only swaps the operation.
func (c *Controller) PressOperation(ctx context.Context, op calculator.Operation) error {
	if !op.Valid() {
		return fmt.Errorf("%w: operation %q", ErrInvalidInput, op)
	}

	c.mu.Lock()
	s := c.state

	switch {
	case s.Pending() && s.Overwrite && s.Phase == FirstOperandEntered:
		c.state.Operation = op
		c.renderPending()
		c.mu.Unlock()
		return nil

	case !s.Pending():
		first, err := parseBuffer(s.Buffer)
		if err != nil {
			if s.Phase == Error {
				c.state.Phase = Idle
			}
			c.mu.Unlock()
			return err
		}
		c.state.First = first
		c.state.HasFirst = true
		c.state.Operation = op
		c.state.Overwrite = true
		c.state.Phase = FirstOperandEntered
		c.renderPending()
		c.mu.Unlock()
		return nil
	}

	first, prev, second, err := c.beginResolution()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	result, err := c.resolver.Calculate(ctx, first, prev, second)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyResult(first, prev, second, result, err); err != nil {
		return err
	}

	c.state.Operation = op
	c.state.Phase = FirstOperandEntered
	c.renderPending()
	return nil
}

// Equals resolves the pending calculation. It does nothing when no
// calculation is pending.
func (c *Controller) Equals(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.Pending() {
		c.mu.Unlock()
		return nil
	}

	first, op, second, err := c.beginResolution()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	result, err := c.resolver.Calculate(ctx, first, op, second)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyResult(first, op, second, result, err); err != nil {
		return err
	}

	c.state.Operation = calculator.None
	c.state.Previous = ""
	c.state.Phase = Idle
	c.display.ShowPrevious("")
	c.display.SetActiveOperation(calculator.None)
	return nil
}

// Submit loads a complete calculation, as typed into the two-field form, and
// resolves it through Equals.
func (c *Controller) Submit(ctx context.Context, first float64, op calculator.Operation, second float64) error {
	if !op.Valid() {
		return fmt.Errorf("%w: operation %q", ErrInvalidInput, op)
	}

	c.mu.Lock()
	c.state.First = first
	c.state.HasFirst = true
	c.state.Operation = op
	c.state.Buffer = formatOperand(second)
	c.state.Overwrite = false
	c.state.Phase = FirstOperandEntered
	c.renderPending()
	c.display.ShowCurrent(c.state.Buffer)
	c.mu.Unlock()

	return c.Equals(ctx)
}

// beginResolution captures the operands of the pending calculation. Callers
// hold c.mu.
func (c *Controller) beginResolution() (float64, calculator.Operation, float64, error) {
	second, err := parseBuffer(c.state.Buffer)
	if err != nil {
		return 0, calculator.None, 0, err
	}
	c.state.Phase = AwaitingResult
	return c.state.First, c.state.Operation, second, nil
}

// applyResult commits a resolver answer or moves to the Error phase. Callers
// hold c.mu.
func (c *Controller) applyResult(first float64, op calculator.Operation, second, result float64, err error) error {
	fields := []zap.Field{
		zap.Float64("a", first),
		zap.String("operation", op.String()),
		zap.Float64("b", second),
	}

	if err != nil {
		c.fail(ErrorMarker, "Error: "+err.Error())
		c.logger.Warn("resolution failed", append(fields, zap.Error(err))...)
		return err
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		text := FormatNumber(result)
		c.fail(text, "Error: "+text)
		c.logger.Warn("resolution returned a non-finite result", append(fields, zap.Float64("result", result))...)
		return fmt.Errorf("%w: %s", ErrNonFiniteResult, text)
	}

	c.state.Buffer = FormatNumber(result)
	c.state.First = result
	c.state.HasFirst = true
	c.state.Overwrite = true
	c.display.ShowCurrent(c.state.Buffer)

	c.logger.Info("resolution completed", append(fields, zap.Float64("result", result))...)
	return nil
}

// fail clears the pending calculation, shows marker in the display and
// message on the banner. Callers hold c.mu.
func (c *Controller) fail(marker, message string) {
	c.state = State{Buffer: marker, Overwrite: true, Phase: Error}
	c.renderAll()
	c.showBanner(message)
}

// Clear resets everything: buffer, previous label, pending calculation and
// operation highlight.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = initialState()
	c.renderAll()
}

// ClearEntry resets only the display buffer.
func (c *Controller) ClearEntry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase == Error {
		c.state.Phase = Idle
	}
	c.state.Buffer = "0"
	c.state.Overwrite = false
	c.display.ShowCurrent(c.state.Buffer)
}

// Backspace removes the last character. The buffer falls back to "0" rather
// than becoming empty or a lone sign.
func (c *Controller) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.state

	if s.Phase == Error {
		s.Phase = Idle
		s.Overwrite = false
		s.Buffer = "0"
		c.display.ShowCurrent(s.Buffer)
		return
	}

	runes := []rune(s.Buffer)
	if len(runes) <= 1 {
		s.Buffer = "0"
	} else {
		s.Buffer = string(runes[:len(runes)-1])
	}
	if s.Buffer == "-" || s.Buffer == "" {
		s.Buffer = "0"
	}

	c.display.ShowCurrent(s.Buffer)
}

// DismissError hides the banner now and cancels its pending hide.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bannerGen++
	if c.stopBanner != nil {
		c.stopBanner()
		c.stopBanner = nil
	}
	c.banner.HideError()
}

// ReportError shows message on the banner without touching the calculation.
func (c *Controller) ReportError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showBanner(message)
}

// showBanner displays message and schedules its removal. A newer message
// restarts the delay. Callers hold c.mu.
func (c *Controller) showBanner(message string) {
	c.bannerGen++
	gen := c.bannerGen

	if c.stopBanner != nil {
		c.stopBanner()
	}

	c.banner.ShowError(message)

	c.stopBanner = c.afterFunc(c.bannerTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.bannerGen != gen {
			return
		}
		c.stopBanner = nil
		c.banner.HideError()
	})
}

// renderPending shows the previous-operand label and highlight for the
// pending calculation. Callers hold c.mu.
func (c *Controller) renderPending() {
	c.state.Previous = previousLabel(c.state.First, c.state.Operation)
	c.display.ShowPrevious(c.state.Previous)
	c.display.SetActiveOperation(c.state.Operation)
}

func (c *Controller) renderAll() {
	c.display.ShowCurrent(c.state.Buffer)
	c.display.ShowPrevious(c.state.Previous)
	c.display.SetActiveOperation(c.state.Operation)
}
