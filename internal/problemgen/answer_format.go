package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/fractiz/internal/fraction"
)

// answerKind describes how the answer of an exercise type is written.
type answerKind int

const (
	kindText     answerKind = iota // a label such as "Propia" or ">"
	kindMixed                      // "w n/d", "n/d" or "w"
	kindFraction                   // "n/d"
	kindReduced                    // "n/d" in lowest terms, or a bare integer
)

func answerKindOf(t ExerciseType) answerKind {
	switch t {
	case TypeImproperToMixed:
		return kindMixed
	case TypeMixedToImproper, TypeEquivalent:
		return kindFraction
	case TypeSimplify, TypeAdd, TypeSubtract, TypeMultiply, TypeDivide:
		return kindReduced
	default:
		return kindText
	}
}

// ChoicesValidator checks the multiple-choice constraints: four distinct
// non-empty options with the answer present exactly once, and an answer
// written in the form its exercise type calls for.
type ChoicesValidator struct{}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *Question) *ValidationError {
	if len(q.Choices) != 4 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("multiple choice must have exactly 4 choices, got %d", len(q.Choices)),
			Retryable: true,
		}
	}

	seen := make(map[string]bool, 4)
	for i, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("choice %d is empty", i+1),
				Retryable: true,
			}
		}
		key := normalizeChoice(c)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate choice %q", c),
				Retryable: true,
			}
		}
		seen[key] = true
	}

	matches := 0
	answer := normalizeChoice(q.Answer)
	for _, c := range q.Choices {
		if normalizeChoice(c) == answer {
			matches++
		}
	}
	if matches != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q found %d times in choices, want exactly once", q.Answer, matches),
			Retryable: true,
		}
	}

	if err := validateAnswerText(q.Answer, answerKindOf(q.Type)); err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("invalid answer %q: %s", q.Answer, err),
		}
	}
	return nil
}

// validateAnswerText checks that s is written the way kind requires.
func validateAnswerText(s string, kind answerKind) error {
	switch kind {
	case kindMixed:
		m, err := fraction.ParseMixed(s)
		if err != nil {
			return err
		}
		if f := m.Fraction; f.Numerator < 0 || (f.Numerator != 0 && f.Numerator >= f.Denominator) {
			return fmt.Errorf("fractional part must be proper")
		}
	case kindFraction:
		if !strings.Contains(s, "/") {
			return fmt.Errorf("does not match fraction pattern a/b")
		}
		f, err := fraction.Parse(s)
		if err != nil {
			return err
		}
		if f.Denominator < 0 {
			return fmt.Errorf("denominator must be positive")
		}
	case kindReduced:
		f, err := fraction.Parse(s)
		if err != nil {
			return err
		}
		if f.Denominator < 0 {
			return fmt.Errorf("denominator must be positive")
		}
		if f.Numerator != 0 && fraction.GCD(f.Numerator, f.Denominator) != 1 {
			return fmt.Errorf("fraction is not in lowest terms")
		}
	}
	return nil
}
