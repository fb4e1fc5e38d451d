package fraction

import "fmt"

// GCD returns the greatest common divisor of |a| and |b| using the
// Euclidean algorithm. GCD(0, 0) is 0 and GCD(a, 0) is |a|.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple |a*b| / GCD(a, b).
// Both inputs being zero is reported as ErrDegenerate.
func LCM(a, b int) (int, error) {
	g := GCD(a, b)
	if g == 0 {
		return 0, fmt.Errorf("%w: lcm(0, 0)", ErrDegenerate)
	}
	return abs(a/g) * abs(b), nil
}

// Validate checks that n/d is a usable non-negative fraction.
// Sign handling for arithmetic results is the caller's concern, so this is
// only applied at conversion entry points.
func Validate(n, d int) error {
	if d == 0 {
		return fmt.Errorf("%w: el denominador no puede ser 0", ErrInvalidFraction)
	}
	if n < 0 || d < 0 {
		return fmt.Errorf("%w: los números deben ser positivos", ErrInvalidFraction)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// normalize moves a negative denominator's sign onto the numerator.
func normalize(f Fraction) Fraction {
	if f.Denominator < 0 {
		return Fraction{Numerator: -f.Numerator, Denominator: -f.Denominator}
	}
	return f
}

// reduce divides out the GCD after normalizing the sign. The zero
// fraction reduces to 0/1.
func reduce(f Fraction) Fraction {
	f = normalize(f)
	if f.Numerator == 0 {
		return Fraction{Numerator: 0, Denominator: 1}
	}
	g := GCD(f.Numerator, f.Denominator)
	return Fraction{Numerator: f.Numerator / g, Denominator: f.Denominator / g}
}
