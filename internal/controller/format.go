package controller

import (
	"math"
	"strconv"
	"strings"
)

const (
	// ErrorMarker replaces the display after a failed resolution.
	ErrorMarker = "Error"
	// DivideByZeroText is shown for infinite results.
	DivideByZeroText = "Cannot divide by zero"
)

// FormatNumber renders a result for the display:
//
//   - |v| >= 1e15, or 0 < |v| < 1e-6: exponential with 6 fractional digits
//   - integers below 1e12: plain integer text
//   - everything else: rounded to 10 significant digits
//
// NaN renders as ErrorMarker and ±Inf as DivideByZeroText.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return ErrorMarker
	case math.IsInf(v, 0):
		return DivideByZeroText
	}

	abs := math.Abs(v)

	if abs >= 1e15 || (abs < 1e-6 && v != 0) {
		return exponential(v)
	}

	if v == math.Trunc(v) && abs < 1e12 {
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'e', 9, 64), 64)
	if err != nil {
		return ErrorMarker
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// exponential formats v as d.dddddde±x with an unpadded exponent.
func exponential(v float64) string {
	s := strconv.FormatFloat(v, 'e', 6, 64)

	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}

	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + exp[:1] + digits
}

// formatOperand renders a typed operand for the display buffer without
// rounding it.
func formatOperand(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
