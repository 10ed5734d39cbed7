package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digit      key.Binding
	Decimal    key.Binding
	Operation  key.Binding
	Equals     key.Binding
	Backspace  key.Binding
	ClearEntry key.Binding
	Clear      key.Binding
	Switch     key.Binding
	Quit       key.Binding

	NextOp    key.Binding
	PrevOp    key.Binding
	NextField key.Binding
	Submit    key.Binding
	Back      key.Binding
}

var keys = keyMap{
	Digit: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("0-9", "digit"),
	),
	Decimal: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "decimal"),
	),
	Operation: key.NewBinding(
		key.WithKeys("+", "-", "*", "x", "/"),
		key.WithHelp("+-*/", "operation"),
	),
	Equals: key.NewBinding(
		key.WithKeys("enter", "="),
		key.WithHelp("enter", "equals"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "backspace"),
	),
	ClearEntry: key.NewBinding(
		key.WithKeys("delete"),
		key.WithHelp("del", "clear entry"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc", "c"),
		key.WithHelp("esc", "clear"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch mode"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),

	NextOp: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next op"),
	),
	PrevOp: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev op"),
	),
	NextField: key.NewBinding(
		key.WithKeys("up", "down"),
		key.WithHelp("↑↓", "field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next/calculate"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "keypad"),
	),
}

func (k keyMap) keypadHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Operation, k.Equals, k.Backspace, k.ClearEntry, k.Clear, k.Switch, k.Quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.PrevOp, k.NextOp, k.Switch, k.Back}
}
