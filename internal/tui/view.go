package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/controller"
)

func (m Model) View() string {
	f := m.screen.frame()

	var b strings.Builder
	b.WriteString(titleStyle.Render("CALCULATOR · " + m.mode.String()))
	b.WriteString("\n\n")

	if m.mode == formMode {
		b.WriteString(m.formView(f))
	} else {
		b.WriteString(keypadView(f))
	}
	b.WriteString("\n")

	if f.busy {
		b.WriteString(m.spinner.View() + busyStyle.Render(" calculating"))
	}
	b.WriteString("\n")
	if f.banner != "" {
		b.WriteString(errorStyle.Render(f.banner))
	}
	b.WriteString("\n\n")

	bindings := keys.keypadHelp()
	if m.mode == formMode {
		bindings = keys.formHelp()
	}
	b.WriteString(helpStyle.Render(m.help.ShortHelpView(bindings)))
	b.WriteString("\n")

	return b.String()
}

func keypadView(f frame) string {
	display := lipgloss.JoinVertical(lipgloss.Left,
		previousStyle.Render(f.previous),
		currentStyle.Render(f.current),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(display),
		operationRow(f.active),
	)
}

func (m Model) formView(f frame) string {
	state := m.form.Snapshot()

	rows := []string{
		labelStyle.Render(controller.FirstField.String()) + m.inputs[controller.FirstField].View(),
		labelStyle.Render("op") + operationRow(state.Operation),
		labelStyle.Render(controller.SecondField.String()) + m.inputs[controller.SecondField].View(),
		labelStyle.Render("result") + resultStyle.Render(state.Result),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func operationRow(active calculator.Operation) string {
	cells := lo.Map(calculator.Operations, func(op calculator.Operation, _ int) string {
		if op == active {
			return activeOpStyle.Render(op.Symbol())
		}
		return opStyle.Render(op.Symbol())
	})
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
