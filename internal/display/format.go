// Package display implements the calculator front panel: symbol substitution
// for keypad glyphs, result formatting and the keypad state machine.
package display

import (
	"math"
	"strconv"
	"strings"

	"yqhp/calculator/internal/expression"
)

// ErrorText is what the display shows when an expression cannot be evaluated.
const ErrorText = "Error"

var symbols = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	"√", "sqrt",
	"π", "pi",
	"%", "/100",
)

// Preprocess rewrites keypad glyphs into evaluator syntax. A "%" typed on the
// keypad means "divide by 100" here; the evaluator's own "%" is remainder and
// is only reachable through the raw API.
func Preprocess(display string) string {
	return symbols.Replace(display)
}

// Format renders v for the display. precision > 0 rounds to that many
// significant digits; 0 keeps the shortest representation that round-trips.
func Format(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if precision > 0 {
		rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', precision, 64), 64)
		if err == nil {
			v = rounded
		}
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return exponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// exponent turns Go's "1.5e-07" into the calculator form "1.5e-7".
func exponent(s string) string {
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// Evaluate preprocesses display text and evaluates it.
func Evaluate(display string) (float64, error) {
	return expression.Evaluate(Preprocess(display))
}

// Calculate evaluates display text and formats the result. Any evaluation
// failure collapses to ErrorText.
func Calculate(display string, precision int) string {
	v, err := Evaluate(display)
	return Result(v, err, precision)
}

// Result is the display text for an evaluation outcome.
func Result(v float64, err error, precision int) string {
	if err != nil {
		return ErrorText
	}
	return Format(v, precision)
}
