package controller

import "go-chi-calculator/internal/calculator"

// Phase is the coarse controller state.
type Phase int

const (
	Idle Phase = iota
	FirstOperandEntered
	AwaitingResult
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FirstOperandEntered:
		return "first-operand-entered"
	case AwaitingResult:
		return "awaiting-result"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of everything the controller owns.
type State struct {
	// Buffer is the current operand text. Never empty.
	Buffer string
	// Previous is the "<first operand> <symbol>" label, empty when nothing
	// is pending.
	Previous string

	// First and Operation form the pending calculation. HasFirst is false
	// when no first operand is held.
	First     float64
	HasFirst  bool
	Operation calculator.Operation

	// Overwrite makes the next digit or decimal replace Buffer.
	Overwrite bool

	Phase Phase
}

func initialState() State {
	return State{Buffer: "0", Phase: Idle}
}

// Pending reports whether a first operand and an operation are waiting for a
// second operand.
func (s State) Pending() bool {
	return s.HasFirst && s.Operation != calculator.None
}

func previousLabel(first float64, op calculator.Operation) string {
	return FormatNumber(first) + " " + op.Symbol()
}
