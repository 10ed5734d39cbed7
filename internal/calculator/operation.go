package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Operation is one of the four binary operations understood by the
// arithmetic service. The zero value means "no operation".
type Operation string

const (
	None     Operation = ""
	Add      Operation = "add"
	Subtract Operation = "subtract"
	Multiply Operation = "multiply"
	Divide   Operation = "divide"
)

// Operations lists every valid operation in keypad order.
var Operations = []Operation{Add, Subtract, Multiply, Divide}

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrOutOfRange       = errors.New("result out of range")
)

var symbols = map[Operation]string{
	Add:      "+",
	Subtract: "−",
	Multiply: "×",
	Divide:   "÷",
}

// aliases maps keyboard and display spellings onto operations.
var aliases = map[string]Operation{
	"+": Add, "-": Subtract, "−": Subtract,
	"*": Multiply, "x": Multiply, "×": Multiply,
	"/": Divide, "÷": Divide,
}

// ParseOperation accepts an operation name ("add") or one of its symbols.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if op := Operation(s); lo.Contains(Operations, op) {
		return op, nil
	}
	if op, ok := aliases[s]; ok {
		return op, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

func (o Operation) Valid() bool {
	return lo.Contains(Operations, o)
}

// Symbol is the display glyph, empty for None.
func (o Operation) Symbol() string {
	return symbols[o]
}

func (o Operation) String() string {
	return string(o)
}

// Apply computes a o b. A result that overflows float64 is ErrOutOfRange.
func (o Operation) Apply(a, b float64) (float64, error) {
	var v float64

	switch o {
	case Add:
		v = a + b
	case Subtract:
		v = a - b
	case Multiply:
		v = a * b
	case Divide:
		if b == 0 {
			return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
		}
		v = a / b
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, string(o))
	}

	if !finite(v) {
		return 0, fmt.Errorf("%w: %g %s %g", ErrOutOfRange, a, o.Symbol(), b)
	}
	return v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
