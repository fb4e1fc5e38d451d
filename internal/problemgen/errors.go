package problemgen

import "errors"

var (
	// ErrUnknownType is returned for an exercise type outside the catalog.
	ErrUnknownType = errors.New("unknown exercise type")

	// ErrUnknownDifficulty is returned for a difficulty with no operand range.
	ErrUnknownDifficulty = errors.New("unknown difficulty")

	// ErrDistractorsExhausted is returned when the candidate budget runs out
	// before three distinct valid distractors are found.
	ErrDistractorsExhausted = errors.New("distractor candidates exhausted")
)
