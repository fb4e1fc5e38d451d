package fraction

import (
	"fmt"
	"math"
	"strconv"
)

// maxPeriodDigits bounds the long-division search for a repeating block.
const maxPeriodDigits = 20

// Simplification is the result of reducing a fraction to lowest terms.
type Simplification struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
	// Factor is the GCD both parts were divided by. A factor of 1 means
	// the input was already in lowest terms.
	Factor int `json:"factor"`
}

// AlreadySimplified reports whether the input was already irreducible.
func (s Simplification) AlreadySimplified() bool {
	return s.Factor == 1
}

// Fraction returns the reduced fraction.
func (s Simplification) Fraction() Fraction {
	return Fraction{Numerator: s.Numerator, Denominator: s.Denominator}
}

// Simplify divides n and d by their GCD.
func Simplify(n, d int) (Simplification, error) {
	if err := Validate(n, d); err != nil {
		return Simplification{}, err
	}
	g := GCD(n, d)
	return Simplification{Numerator: n / g, Denominator: d / g, Factor: g}, nil
}

// Mixed is the result of converting a fraction to a mixed number.
type Mixed struct {
	Whole       int  `json:"whole"`
	Numerator   int  `json:"numerator"`
	Denominator int  `json:"denominator"`
	IsMixed     bool `json:"is_mixed"`
}

// MixedNumber returns the value as a MixedNumber.
func (m Mixed) MixedNumber() MixedNumber {
	return MixedNumber{Whole: m.Whole, Fraction: Fraction{Numerator: m.Numerator, Denominator: m.Denominator}}
}

// String renders the mixed number, collapsing a zero whole part or a zero
// remainder.
func (m Mixed) String() string {
	return FormatMixed(m.Whole, m.Numerator, m.Denominator)
}

// ToMixedNumber converts n/d to a whole part and a proper remainder.
// A proper input is returned unchanged with IsMixed false. An input with
// n >= d is always reported as mixed, even when the remainder is zero.
func ToMixedNumber(n, d int) (Mixed, error) {
	if err := Validate(n, d); err != nil {
		return Mixed{}, err
	}
	if n < d {
		return Mixed{Whole: 0, Numerator: n, Denominator: d, IsMixed: false}, nil
	}
	return Mixed{Whole: n / d, Numerator: n % d, Denominator: d, IsMixed: true}, nil
}

// ToImproper converts whole + n/d into a single fraction.
func ToImproper(whole, n, d int) (Fraction, error) {
	if err := Validate(n, d); err != nil {
		return Fraction{}, err
	}
	return Fraction{Numerator: whole*d + n, Denominator: d}, nil
}

// Classify returns the type of n/d. The checks run in a fixed order:
// proper first, then unit, then apparent, falling through to improper.
func Classify(n, d int) (Type, error) {
	if err := Validate(n, d); err != nil {
		return "", err
	}
	switch {
	case n < d:
		return TypeProper, nil
	case n == d:
		return TypeUnit, nil
	case n%d == 0:
		return TypeApparent, nil
	default:
		return TypeImproper, nil
	}
}

// Equivalent reports whether a and b denote the same value, using exact
// cross-multiplication.
func Equivalent(a, b Fraction) (bool, error) {
	if a.Denominator == 0 || b.Denominator == 0 {
		return false, fmt.Errorf("%w: equivalence with zero denominator", ErrDegenerate)
	}
	return a.Numerator*b.Denominator == b.Numerator*a.Denominator, nil
}

// Compare returns 1 if a > b, -1 if a < b and 0 if they are equal.
// The comparison is exact: denominators are sign-normalized and the
// fractions are cross-multiplied.
func Compare(a, b Fraction) (int, error) {
	if a.Denominator == 0 || b.Denominator == 0 {
		return 0, fmt.Errorf("%w: comparison with zero denominator", ErrDegenerate)
	}
	a, b = normalize(a), normalize(b)
	l := a.Numerator * b.Denominator
	r := b.Numerator * a.Denominator
	switch {
	case l > r:
		return 1, nil
	case l < r:
		return -1, nil
	default:
		return 0, nil
	}
}

// Decimal is the decimal expansion of a fraction.
type Decimal struct {
	// Value is n/d rounded to the requested number of places.
	Value float64 `json:"value"`
	// Text is Value formatted with exactly the requested places.
	Text string `json:"text"`
	// Finite is true when the expansion terminates.
	Finite bool `json:"finite"`
	// Period is the repeating block of a non-terminating expansion. It is
	// empty for finite expansions and for periods longer than 20 digits.
	Period string `json:"period,omitempty"`
}

// MaxDecimalPlaces is the most places ToDecimal rounds to. float64 holds
// no more significant digits than this.
const MaxDecimalPlaces = 15

// ToDecimal converts n/d to a decimal with the given number of places,
// clamped to [0, MaxDecimalPlaces].
func ToDecimal(n, d, places int) (Decimal, error) {
	if err := Validate(n, d); err != nil {
		return Decimal{}, err
	}
	places = min(max(places, 0), MaxDecimalPlaces)

	v := float64(n) / float64(d)
	scale := math.Pow(10, float64(places))
	dec := Decimal{
		Value:  math.Round(v*scale) / scale,
		Text:   strconv.FormatFloat(v, 'f', places, 64),
		Finite: isFiniteDecimal(n, d),
	}
	if !dec.Finite {
		dec.Period = findPeriod(n, d)
	}
	return dec, nil
}

// isFiniteDecimal strips the factors 2 and 5 from the reduced denominator;
// the expansion terminates iff nothing else remains.
func isFiniteDecimal(n, d int) bool {
	den := d / GCD(n, d)
	for den%2 == 0 {
		den /= 2
	}
	for den%5 == 0 {
		den /= 5
	}
	return den == 1
}

// findPeriod runs long division recording the digit position at which each
// remainder first appeared. A repeated remainder marks the start of the
// period.
func findPeriod(n, d int) string {
	seen := make(map[int]int)
	rem := n % d
	var digits []byte
	for rem != 0 {
		if _, ok := seen[rem]; ok {
			break
		}
		if len(digits) >= maxPeriodDigits {
			return ""
		}
		seen[rem] = len(digits)
		rem *= 10
		digits = append(digits, byte('0'+rem/d))
		rem %= d
	}
	if rem == 0 {
		return ""
	}
	return string(digits[seen[rem]:])
}

// EquivalentFraction is n/d with both parts scaled by Factor.
type EquivalentFraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
	Factor      int `json:"factor"`
}

// Fraction returns the scaled fraction.
func (e EquivalentFraction) Fraction() Fraction {
	return Fraction{Numerator: e.Numerator, Denominator: e.Denominator}
}

// Equivalents multiplies n/d by every factor in [2, count+1].
func Equivalents(n, d, count int) ([]EquivalentFraction, error) {
	if err := Validate(n, d); err != nil {
		return nil, err
	}
	out := make([]EquivalentFraction, 0, max(count, 0))
	for k := 2; k <= count+1; k++ {
		out = append(out, EquivalentFraction{Numerator: n * k, Denominator: d * k, Factor: k})
	}
	return out, nil
}

// Scaled is a fraction rewritten over a common denominator.
type Scaled struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
	// Factor is what the original numerator and denominator were multiplied by.
	Factor int `json:"factor"`
}

// CommonDenominator rewrites every fraction over the LCM of all
// denominators, folded left to right.
func CommonDenominator(fs []Fraction) ([]Scaled, error) {
	if len(fs) == 0 {
		return nil, nil
	}
	for _, f := range fs {
		if f.Denominator == 0 {
			return nil, fmt.Errorf("%w: el denominador no puede ser 0", ErrInvalidFraction)
		}
	}

	den := abs(fs[0].Denominator)
	for _, f := range fs[1:] {
		var err error
		if den, err = LCM(den, f.Denominator); err != nil {
			return nil, err
		}
	}

	out := make([]Scaled, len(fs))
	for i, f := range fs {
		f = normalize(f)
		factor := den / f.Denominator
		out[i] = Scaled{Numerator: f.Numerator * factor, Denominator: den, Factor: factor}
	}
	return out, nil
}

// Add returns a + b in lowest terms.
func Add(a, b Fraction) (Fraction, error) {
	return combine(a, b, 1)
}

// Subtract returns a - b in lowest terms. A negative result keeps its sign
// on the numerator.
func Subtract(a, b Fraction) (Fraction, error) {
	return combine(a, b, -1)
}

func combine(a, b Fraction, sign int) (Fraction, error) {
	scaled, err := CommonDenominator([]Fraction{a, b})
	if err != nil {
		return Fraction{}, err
	}
	num := scaled[0].Numerator + sign*scaled[1].Numerator
	return reduce(Fraction{Numerator: num, Denominator: scaled[0].Denominator}), nil
}

// Multiply returns a * b in lowest terms.
func Multiply(a, b Fraction) (Fraction, error) {
	if a.Denominator == 0 || b.Denominator == 0 {
		return Fraction{}, fmt.Errorf("%w: el denominador no puede ser 0", ErrInvalidFraction)
	}
	return reduce(Fraction{
		Numerator:   a.Numerator * b.Numerator,
		Denominator: a.Denominator * b.Denominator,
	}), nil
}

// Divide returns a / b in lowest terms by multiplying with the reciprocal
// of b. Dividing by a zero numerator is ErrDivisionByZero.
func Divide(a, b Fraction) (Fraction, error) {
	if b.Numerator == 0 {
		return Fraction{}, fmt.Errorf("%w: no se puede dividir por cero", ErrDivisionByZero)
	}
	return Multiply(a, Fraction{Numerator: b.Denominator, Denominator: b.Numerator})
}
