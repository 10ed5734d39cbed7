package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/controller"
)

type applyResolver struct{}

func (applyResolver) Calculate(_ context.Context, a float64, op calculator.Operation, b float64) (float64, error) {
	v, err := op.Apply(a, b)
	if errors.Is(err, calculator.ErrDivisionByZero) {
		return 0, errors.New(calculator.DivisionByZeroMessage)
	}
	return v, err
}

func noTimer(_ time.Duration, _ func()) func() bool { return func() bool { return true } }

func newTestModel(t *testing.T) Model {
	t.Helper()
	return NewModel(context.Background(), applyResolver{}, nil, controller.WithAfterFunc(noTimer))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m and runs any resolution command it returns.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out, ok := cmd().(resolvedMsg); ok {
			next, _ = m.Update(out)
			m = next.(Model)
		}
	}
	return m
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, runes(string(r)))
	}
	return m
}

func TestKeypadCalculation(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "12+3")
	f := m.screen.frame()
	assert.Equal(t, "3", f.current)
	assert.Equal(t, "12 +", f.previous)
	assert.Equal(t, calculator.Add, f.active)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	f = m.screen.frame()
	assert.Equal(t, "15", f.current)
	assert.Empty(t, f.previous)
	assert.Equal(t, calculator.None, f.active)
	assert.False(t, f.busy)
}

func TestKeypadEditing(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "1.5.")
	assert.Equal(t, "1.5", m.screen.frame().current)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1.", m.screen.frame().current)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "0", m.screen.frame().current)

	m = typeKeys(t, m, "7x")
	assert.Equal(t, calculator.Multiply, m.screen.frame().active)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	f := m.screen.frame()
	assert.Equal(t, "0", f.current)
	assert.Equal(t, calculator.None, f.active)
}

func TestKeypadDivisionByZeroShowsBanner(t *testing.T) {
	m := newTestModel(t)

	m = typeKeys(t, m, "8/0=")
	f := m.screen.frame()
	assert.Equal(t, controller.ErrorMarker, f.current)
	assert.Equal(t, "Error: Division by zero", f.banner)
	assert.Contains(t, m.View(), "Error: Division by zero")
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFormCalculation(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, formMode, m.mode)
	assert.True(t, m.inputs[controller.FirstField].Focused())

	m = typeKeys(t, m, "6a")
	assert.Equal(t, "6", m.inputs[controller.FirstField].Value())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.inputs[controller.SecondField].Focused())
	assert.False(t, m.inputs[controller.FirstField].Focused())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, calculator.Multiply, m.form.Snapshot().Operation)

	m = typeKeys(t, m, "7")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	state := m.form.Snapshot()
	assert.Equal(t, "42", state.Result)
	assert.Contains(t, m.View(), "42")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, keypadMode, m.mode)
	assert.Equal(t, "42", m.screen.frame().current)
}

func TestFormInvalidOperand(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = typeKeys(t, m, "2")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	f := m.screen.frame()
	assert.Equal(t, "Error: Please enter a valid first number", f.banner)
	assert.Equal(t, controller.NoResult, m.form.Snapshot().Result)
}

func TestCycleOperation(t *testing.T) {
	tests := []struct {
		name string
		op   calculator.Operation
		step int
		want calculator.Operation
	}{
		{name: "forward", op: calculator.Add, step: 1, want: calculator.Subtract},
		{name: "wrap forward", op: calculator.Divide, step: 1, want: calculator.Add},
		{name: "wrap backward", op: calculator.Add, step: -1, want: calculator.Divide},
		{name: "none", op: calculator.None, step: 1, want: calculator.Add},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cycleOperation(tt.op, tt.step))
		})
	}
}
