package formula

import "errors"

// Sentinel errors for formula construction, parsing, and arithmetic.
var (
	// ErrNegativeCount indicates a requested element count would be negative.
	ErrNegativeCount = errors.New("formula: negative element count")

	// ErrMalformedAlphabet indicates a FormulaConstraints alphabet contains
	// an unknown or duplicate element symbol.
	ErrMalformedAlphabet = errors.New("formula: malformed alphabet")

	// ErrParse indicates a formula string could not be parsed.
	ErrParse = errors.New("formula: parse error")

	// ErrUnderflow names the case where a subtraction would leave a
	// negative element count. Subtract itself does not return it: it
	// reports that case through its boolean result (failure, not a panic).
	ErrUnderflow = errors.New("formula: subtraction underflow")
)
