package fraction

import "errors"

var (
	// ErrInvalidFraction reports a precondition violation on a fraction
	// input: non-integer text, zero denominator or a negative component.
	ErrInvalidFraction = errors.New("invalid fraction")

	// ErrDivisionByZero reports division by a fraction whose numerator is 0.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDegenerate reports arithmetic on zero denominators that has no
	// meaningful result, such as the LCM of two zeros.
	ErrDegenerate = errors.New("degenerate arithmetic")
)
