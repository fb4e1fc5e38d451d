package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/fractiz/internal/fraction"
)

// MathCheckValidator independently recomputes the answer from the operands
// in the question text. Questions whose text carries no recognizable
// operands pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	if q.Type == TypeEquivalent {
		return v.validateEquivalent(q)
	}
	computed, err := computeAnswer(q)
	if err != nil {
		return nil
	}
	if !answersEqual(computed, q.Answer, q.Type) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", computed, q.Answer),
		}
	}
	return nil
}

// validateEquivalent checks that the answer has the value of the prompt's
// fraction and that no other choice does.
func (v *MathCheckValidator) validateEquivalent(q *Question) *ValidationError {
	base, err := firstFraction(normalizeNotation(q.Text))
	if err != nil {
		return nil
	}
	for _, c := range q.Choices {
		f, err := fraction.Parse(c)
		if err != nil {
			continue
		}
		eq, err := fraction.Equivalent(base, f)
		if err != nil {
			continue
		}
		isAnswer := normalizeChoice(c) == normalizeChoice(q.Answer)
		if eq != isAnswer {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("choice %q equivalent to %s = %v, answer %q", c, base, eq, q.Answer),
			}
		}
	}
	return nil
}

var (
	// Fraction arithmetic: "a/b + c/d", "a/b - c/d", "a/b × c/d", "a/b ÷ c/d"
	fractionArithRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(\d+)\s*/\s*(\d+)`)

	// Mixed number "w n/d".
	mixedRe = regexp.MustCompile(`(\d+)\s+(\d+)\s*/\s*(\d+)`)

	fractionRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)

	latexFracRe = regexp.MustCompile(`\\frac\{(\d+)\}\{(\d+)\}`)
)

// normalizeNotation rewrites LaTeX and fraction-slash operands as "n/d".
func normalizeNotation(text string) string {
	text = latexFracRe.ReplaceAllString(text, "$1/$2")
	return strings.ReplaceAll(text, "⁄", "/")
}

// computeAnswer recomputes the answer of q from its text.
func computeAnswer(q *Question) (string, error) {
	text := normalizeNotation(q.Text)

	switch q.Type {
	case TypeAdd, TypeSubtract, TypeMultiply, TypeDivide:
		return tryFractionArith(text)

	case TypeImproperToMixed:
		f, err := firstFraction(text)
		if err != nil {
			return "", err
		}
		m, err := fraction.ToMixedNumber(f.Numerator, f.Denominator)
		if err != nil {
			return "", err
		}
		return m.String(), nil

	case TypeMixedToImproper:
		m := mixedRe.FindStringSubmatch(text)
		if m == nil {
			return "", fmt.Errorf("no mixed number found")
		}
		w, n, d := atoi(m[1]), atoi(m[2]), atoi(m[3])
		f, err := fraction.ToImproper(w, n, d)
		if err != nil {
			return "", err
		}
		return f.String(), nil

	case TypeSimplify:
		f, err := firstFraction(text)
		if err != nil {
			return "", err
		}
		s, err := fraction.Simplify(f.Numerator, f.Denominator)
		if err != nil {
			return "", err
		}
		return s.Fraction().String(), nil

	case TypeIdentify:
		f, err := firstFraction(text)
		if err != nil {
			return "", err
		}
		t, err := fraction.Classify(f.Numerator, f.Denominator)
		if err != nil {
			return "", err
		}
		return t.DisplayName(), nil

	case TypeCompare:
		ms := fractionRe.FindAllStringSubmatch(text, 2)
		if len(ms) != 2 {
			return "", fmt.Errorf("need two fractions to compare")
		}
		a := fraction.New(atoi(ms[0][1]), atoi(ms[0][2]))
		b := fraction.New(atoi(ms[1][1]), atoi(ms[1][2]))
		c, err := fraction.Compare(a, b)
		if err != nil {
			return "", err
		}
		return compareSymbol(c), nil
	}

	return "", fmt.Errorf("not computable")
}

// tryFractionArith tries to extract and compute fraction arithmetic.
func tryFractionArith(text string) (string, error) {
	matches := fractionArithRe.FindStringSubmatch(text)
	if matches == nil {
		return "", fmt.Errorf("no fraction expression found")
	}

	a := fraction.New(atoi(matches[1]), atoi(matches[2]))
	b := fraction.New(atoi(matches[4]), atoi(matches[5]))

	var (
		r   fraction.Fraction
		err error
	)
	switch normalizeOp(matches[3]) {
	case "+":
		r, err = fraction.Add(a, b)
	case "-":
		r, err = fraction.Subtract(a, b)
	case "*":
		r, err = fraction.Multiply(a, b)
	case "/":
		r, err = fraction.Divide(a, b)
	default:
		return "", fmt.Errorf("unsupported operator: %s", matches[3])
	}
	if err != nil {
		return "", err
	}
	return fraction.FormatResult(r), nil
}

func firstFraction(text string) (fraction.Fraction, error) {
	m := fractionRe.FindStringSubmatch(text)
	if m == nil {
		return fraction.Fraction{}, fmt.Errorf("no fraction found")
	}
	return fraction.New(atoi(m[1]), atoi(m[2])), nil
}

// normalizeOp normalizes multiplication and division symbols.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// answersEqual compares two answers. Reduced answers compare by value;
// everything else compares as normalized choice text.
func answersEqual(a, b string, t ExerciseType) bool {
	if answerKindOf(t) == kindReduced {
		fa, errA := fraction.Parse(a)
		fb, errB := fraction.Parse(b)
		if errA == nil && errB == nil {
			eq, err := fraction.Equivalent(fa, fb)
			return err == nil && eq
		}
	}
	return normalizeChoice(a) == normalizeChoice(b)
}

// atoi is only called on regexp captures of \d+.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
