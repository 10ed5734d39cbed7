package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-chi-calculator/internal/calculator"
)

type resolverCall struct {
	a, b float64
	op   calculator.Operation
}

// localResolver answers with calculator.Operation.Apply and records calls.
type localResolver struct {
	mu    sync.Mutex
	calls []resolverCall
	err   error
}

func (r *localResolver) Calculate(_ context.Context, a float64, op calculator.Operation, b float64) (float64, error) {
	r.mu.Lock()
	r.calls = append(r.calls, resolverCall{a: a, op: op, b: b})
	err := r.err
	r.mu.Unlock()

	if err != nil {
		return 0, err
	}
	v, err := op.Apply(a, b)
	if errors.Is(err, calculator.ErrDivisionByZero) {
		return 0, errors.New(calculator.DivisionByZeroMessage)
	}
	return v, err
}

func (r *localResolver) Calls() []resolverCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]resolverCall(nil), r.calls...)
}

// fixedResolver always answers result.
type fixedResolver float64

func (f fixedResolver) Calculate(context.Context, float64, calculator.Operation, float64) (float64, error) {
	return float64(f), nil
}

type screen struct {
	mu       sync.Mutex
	current  string
	previous string
	active   calculator.Operation
	banner   string
	visible  bool
	shown    int
}

func (s *screen) ShowCurrent(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = text
}

func (s *screen) ShowPrevious(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previous = text
}

func (s *screen) SetActiveOperation(op calculator.Operation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = op
}

func (s *screen) ShowError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = message
	s.visible = true
	s.shown++
}

func (s *screen) HideError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = false
}

func (s *screen) snapshot() screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return screen{
		current:  s.current,
		previous: s.previous,
		active:   s.active,
		banner:   s.banner,
		visible:  s.visible,
		shown:    s.shown,
	}
}

// manualTimers collects banner timers so tests decide when they fire.
type manualTimers struct {
	mu     sync.Mutex
	delays []time.Duration
	fns    []func()
}

func (m *manualTimers) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, f)
	return func() bool { return true }
}

// fire runs timer i even if it was stopped, as a late timer would.
func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	f := m.fns[i]
	m.mu.Unlock()
	f()
}

func (m *manualTimers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

func newTestController(r Resolver) (*Controller, *screen, *manualTimers) {
	s := &screen{}
	timers := &manualTimers{}
	c := New(r, s, s, WithAfterFunc(timers.AfterFunc))
	return c, s, timers
}

func pressDigits(c *Controller, digits string) {
	for _, d := range digits {
		if d == '.' {
			c.PressDecimal()
			continue
		}
		if err := c.PressDigit(d); err != nil {
			panic(err)
		}
	}
}
