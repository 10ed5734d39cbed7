package controller

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidInput marks input the controller cannot act on: a non-digit key,
// an unknown operation, or a display that does not hold a number.
var ErrInvalidInput = errors.New("invalid input")

var (
	operandChars  = regexp.MustCompile(`[^0-9.\-]`)
	operandPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// SanitizeOperand drops every character that cannot appear in a typed
// operand.
func SanitizeOperand(raw string) string {
	return operandChars.ReplaceAllString(raw, "")
}

// ParseOperand reads the leading number of a form field, ignoring trailing
// garbage such as a second decimal point ("1.2.3" reads as 1.2).
func ParseOperand(raw string) (float64, error) {
	prefix := operandPrefix.FindString(strings.TrimSpace(raw))
	if prefix == "" {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, raw)
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidInput, raw, err)
	}
	return v, nil
}

// parseBuffer reads the display buffer, which holds either typed digits or a
// formatted result.
func parseBuffer(buf string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(buf, "."), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: display %q is not a number", ErrInvalidInput, buf)
	}
	return v, nil
}
