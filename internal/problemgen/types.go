package problemgen

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/lessons"
)

// ExerciseType identifies the kind of question a generator produces.
type ExerciseType string

const (
	TypeImproperToMixed ExerciseType = "impropia-a-mixto"
	TypeMixedToImproper ExerciseType = "mixto-a-impropia"
	TypeSimplify        ExerciseType = "simplificar"
	TypeIdentify        ExerciseType = "identificar-tipo"
	TypeCompare         ExerciseType = "comparar"
	TypeEquivalent      ExerciseType = "equivalentes"
	TypeAdd             ExerciseType = "suma"
	TypeSubtract        ExerciseType = "resta"
	TypeMultiply        ExerciseType = "multiplicacion"
	TypeDivide          ExerciseType = "division"
)

// AllExerciseTypes returns every exercise type in lesson order.
func AllExerciseTypes() []ExerciseType {
	return []ExerciseType{
		TypeImproperToMixed,
		TypeMixedToImproper,
		TypeSimplify,
		TypeIdentify,
		TypeCompare,
		TypeEquivalent,
		TypeAdd,
		TypeSubtract,
		TypeMultiply,
		TypeDivide,
	}
}

// ParseExerciseType returns the exercise type named by s.
func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	switch t {
	case TypeImproperToMixed, TypeMixedToImproper, TypeSimplify, TypeIdentify, TypeCompare,
		TypeEquivalent, TypeAdd, TypeSubtract, TypeMultiply, TypeDivide:
		return true
	}
	return false
}

// Label returns a short learner-facing name.
func (t ExerciseType) Label() string {
	switch t {
	case TypeImproperToMixed:
		return "Impropia a mixto"
	case TypeMixedToImproper:
		return "Mixto a impropia"
	case TypeSimplify:
		return "Simplificar"
	case TypeIdentify:
		return "Identificar tipo"
	case TypeCompare:
		return "Comparar"
	case TypeEquivalent:
		return "Equivalentes"
	case TypeAdd:
		return "Suma"
	case TypeSubtract:
		return "Resta"
	case TypeMultiply:
		return "Multiplicación"
	case TypeDivide:
		return "División"
	default:
		return string(t)
	}
}

// Question is a generated multiple-choice question ready for display.
// It is a plain record and round-trips through JSON unchanged.
type Question struct {
	ID   string       `json:"id"`
	Type ExerciseType `json:"type"`

	// Text is the prompt shown to the learner, in Spanish.
	Text string `json:"text"`

	// Choices holds exactly 4 options, one of which equals Answer.
	Choices []string `json:"choices"`

	// Answer is the text of the correct choice.
	Answer string `json:"answer"`

	// Explanation is a worked solution shown after the learner answers.
	Explanation string `json:"explanation"`

	Difficulty lessons.Difficulty `json:"difficulty"`

	// Operands of conversion questions. Nil for types that pose two
	// fractions.
	Numerator   *int `json:"numerator,omitempty"`
	Denominator *int `json:"denominator,omitempty"`
	Whole       *int `json:"whole,omitempty"`
}

// CorrectIndex returns the position of Answer in Choices, or -1.
func (q *Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c == q.Answer {
			return i
		}
	}
	return -1
}

// Range is an inclusive bound on randomly drawn operands.
type Range struct {
	Min int
	Max int
}

// difficultyRanges is read-only after package init.
var difficultyRanges = map[lessons.Difficulty]Range{
	lessons.DifficultyEasy:   {Min: 1, Max: 10},
	lessons.DifficultyMedium: {Min: 1, Max: 20},
	lessons.DifficultyHard:   {Min: 1, Max: 50},
}

// RangeFor returns the operand range for a difficulty.
func RangeFor(d lessons.Difficulty) (Range, error) {
	r, ok := difficultyRanges[d]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return r, nil
}

func intPtr(v int) *int { return &v }
