// Package tui is the terminal surface of the calculator. It has two modes:
// a keypad that drives the Controller key by key, and a two-field form.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/controller"
)

type mode int

const (
	keypadMode mode = iota
	formMode
)

func (m mode) String() string {
	if m == formMode {
		return "form"
	}
	return "keypad"
}

// tickInterval paces re-rendering so banner expiry shows up without input.
const tickInterval = 200 * time.Millisecond

type tickMsg time.Time

// resolvedMsg reports the end of a resolution that ran off the event loop.
type resolvedMsg struct {
	err error
}

type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	form   *controller.Form
	screen *Screen
	logger *zap.Logger

	mode    mode
	inputs  [2]textinput.Model
	spinner spinner.Model
	help    help.Model
}

// NewModel wires a Controller and Form to a fresh Screen. ctx bounds every
// resolution started from the UI.
func NewModel(ctx context.Context, resolver controller.Resolver, logger *zap.Logger, opts ...controller.Option) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	scr := NewScreen()
	ctrl := controller.New(resolver, scr, scr, append([]controller.Option{controller.WithLogger(logger)}, opts...)...)
	form := controller.NewForm(ctrl, scr)

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = busyStyle

	m := Model{
		ctx:     ctx,
		ctrl:    ctrl,
		form:    form,
		screen:  scr,
		logger:  logger,
		spinner: spin,
		help:    help.New(),
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.CharLimit = 32
		ti.Width = displayWidth
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	return m
}

// Controller exposes the controller driven by the keypad.
func (m Model) Controller() *controller.Controller {
	return m.ctrl
}

// Run starts the event loop and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && (m.mode == keypadMode || msg.String() == "ctrl+c") {
			return m, tea.Quit
		}
		if m.mode == formMode {
			return m.updateForm(msg)
		}
		return m.updateKeypad(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case resolvedMsg:
		if msg.err != nil {
			m.logger.Debug("resolution finished with error", zap.Error(msg.err))
		}
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKeypad(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	switch {
	case key.Matches(msg, keys.Digit):
		_ = m.ctrl.PressDigit([]rune(k)[0])
	case key.Matches(msg, keys.Decimal):
		m.ctrl.PressDecimal()
	case key.Matches(msg, keys.Operation):
		op, err := calculator.ParseOperation(k)
		if err != nil {
			return m, nil
		}
		return m, m.resolve(func(ctx context.Context) error {
			return m.ctrl.PressOperation(ctx, op)
		})
	case key.Matches(msg, keys.Equals):
		return m, m.resolve(m.ctrl.Equals)
	case key.Matches(msg, keys.Backspace):
		m.ctrl.Backspace()
	case key.Matches(msg, keys.ClearEntry):
		m.ctrl.ClearEntry()
	case key.Matches(msg, keys.Clear):
		m.ctrl.Clear()
	case key.Matches(msg, keys.Switch):
		m.mode = formMode
		return m, m.syncFocus()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.form.Snapshot().Focused

	switch {
	case key.Matches(msg, keys.Switch), key.Matches(msg, keys.Back):
		m.mode = keypadMode
		m.blurInputs()
		return m, nil
	case key.Matches(msg, keys.Submit):
		if focused == controller.FirstField {
			_ = m.form.Enter(m.ctx, focused)
			return m, m.syncFocus()
		}
		return m, m.resolve(func(ctx context.Context) error {
			return m.form.Enter(ctx, focused)
		})
	case key.Matches(msg, keys.NextField):
		m.form.FocusField(otherField(focused))
		return m, m.syncFocus()
	case key.Matches(msg, keys.NextOp):
		_ = m.form.SetOperation(cycleOperation(m.form.Snapshot().Operation, 1))
		return m, nil
	case key.Matches(msg, keys.PrevOp):
		_ = m.form.SetOperation(cycleOperation(m.form.Snapshot().Operation, -1))
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[focused], cmd = m.inputs[focused].Update(msg)
	raw := m.inputs[focused].Value()
	if clean, err := m.form.Input(focused, raw); err == nil && clean != raw {
		m.inputs[focused].SetValue(clean)
	}
	return m, cmd
}

// resolve runs f off the event loop and reports back with a resolvedMsg.
func (m Model) resolve(f func(context.Context) error) tea.Cmd {
	m.screen.beginFlight()
	return func() tea.Msg {
		defer m.screen.endFlight()
		return resolvedMsg{err: f(m.ctx)}
	}
}

func (m *Model) syncFocus() tea.Cmd {
	focused := m.screen.frame().focused
	var cmd tea.Cmd
	for i := range m.inputs {
		if controller.Field(i) == focused {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) blurInputs() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func otherField(f controller.Field) controller.Field {
	if f == controller.FirstField {
		return controller.SecondField
	}
	return controller.FirstField
}

// cycleOperation steps through calculator.Operations, wrapping at both ends.
func cycleOperation(op calculator.Operation, step int) calculator.Operation {
	n := len(calculator.Operations)
	i := lo.IndexOf(calculator.Operations, op)
	if i < 0 {
		return calculator.Operations[0]
	}
	return calculator.Operations[((i+step)%n+n)%n]
}
