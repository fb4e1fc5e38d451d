package problemgen

import (
	"fmt"

	"github.com/abhisek/fractiz/internal/fraction"
)

// distractorSearch collects three wrong options for a question.
type distractorSearch struct {
	answer string

	// candidates are tried first, in order. They encode the common
	// mistakes for the exercise type.
	candidates []string

	// fallback yields the i-th extra candidate once candidates run out.
	fallback func(i int) string

	// accept rejects candidates that are malformed or have the value of
	// the answer. Duplicates are filtered before accept is called.
	accept func(c string) bool
}

// pick runs the bounded search. Exceeding maxAttempts candidates is
// ErrDistractorsExhausted.
func (s distractorSearch) pick(maxAttempts int) ([]string, error) {
	seen := map[string]bool{normalizeChoice(s.answer): true}
	out := make([]string, 0, 3)

	for attempt := 0; attempt < maxAttempts && len(out) < 3; attempt++ {
		var c string
		if attempt < len(s.candidates) {
			c = s.candidates[attempt]
		} else if s.fallback != nil {
			c = s.fallback(attempt - len(s.candidates))
		} else {
			break
		}

		key := normalizeChoice(c)
		if c == "" || seen[key] || !s.accept(c) {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}

	if len(out) < 3 {
		return nil, fmt.Errorf("%w: found %d of 3 for answer %q", ErrDistractorsExhausted, len(out), s.answer)
	}
	return out, nil
}

// notEquivalentTo accepts fractions with a positive denominator, a
// non-negative numerator and a value different from answer.
func notEquivalentTo(answer fraction.Fraction) func(string) bool {
	return func(c string) bool {
		f, err := fraction.Parse(c)
		if err != nil || f.Denominator <= 0 || f.Numerator < 0 {
			return false
		}
		eq, err := fraction.Equivalent(f, answer)
		return err == nil && !eq
	}
}

// mixedNotEqualTo accepts mixed numbers with a proper fractional part and
// a value different from answer.
func mixedNotEqualTo(answer fraction.Fraction) func(string) bool {
	return func(c string) bool {
		m, err := fraction.ParseMixed(c)
		if err != nil || m.Whole < 0 {
			return false
		}
		f := m.Fraction
		if f.Denominator <= 0 || f.Numerator < 0 || (f.Numerator != 0 && f.Numerator >= f.Denominator) {
			return false
		}
		v, err := fraction.ToImproper(m.Whole, f.Numerator, f.Denominator)
		if err != nil {
			return false
		}
		eq, err := fraction.Equivalent(v, answer)
		return err == nil && !eq
	}
}

// fractionText renders n/d, or "" when n/d cannot be a choice.
func fractionText(n, d int) string {
	if d <= 0 || n < 0 {
		return ""
	}
	return fraction.Format(n, d)
}

// resultText renders n/d reduced, with whole values as bare integers, or
// "" when n/d cannot be a choice.
func resultText(n, d int) string {
	if d <= 0 || n < 0 {
		return ""
	}
	s, err := fraction.Simplify(n, d)
	if err != nil {
		return ""
	}
	return fraction.FormatResult(s.Fraction())
}
