package fraction

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects how a fraction is rendered as text.
type Style int

const (
	StyleSimple  Style = iota // 3/4
	StyleUnicode              // 3⁄4 (fraction slash)
	StyleLaTeX                // \frac{3}{4}
)

// String returns the style's name as accepted by ParseStyle.
func (s Style) String() string {
	switch s {
	case StyleUnicode:
		return "unicode"
	case StyleLaTeX:
		return "latex"
	default:
		return "simple"
	}
}

// ParseStyle maps "simple", "unicode" or "latex" to a Style.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple", "":
		return StyleSimple, nil
	case "unicode":
		return StyleUnicode, nil
	case "latex":
		return StyleLaTeX, nil
	default:
		return StyleSimple, fmt.Errorf("unknown notation %q (want simple, unicode or latex)", name)
	}
}

// Format renders n/d in the simple "n/d" style.
func Format(n, d int) string {
	return FormatStyle(n, d, StyleSimple)
}

// FormatStyle renders n/d in the given style.
func FormatStyle(n, d int, style Style) string {
	switch style {
	case StyleUnicode:
		return fmt.Sprintf("%d⁄%d", n, d)
	case StyleLaTeX:
		return fmt.Sprintf(`\frac{%d}{%d}`, n, d)
	default:
		return fmt.Sprintf("%d/%d", n, d)
	}
}

// FormatMixed renders a mixed number as "w n/d". A zero whole part renders
// the bare fraction and a zero remainder renders the bare integer.
func FormatMixed(whole, n, d int) string {
	return FormatMixedStyle(whole, n, d, StyleSimple)
}

// FormatMixedStyle is FormatMixed with an explicit style for the
// fractional part.
func FormatMixedStyle(whole, n, d int, style Style) string {
	if whole == 0 {
		return FormatStyle(n, d, style)
	}
	if n == 0 {
		return strconv.Itoa(whole)
	}
	return fmt.Sprintf("%d %s", whole, FormatStyle(n, d, style))
}

// FormatResult renders an arithmetic result, showing n/1 as the integer n.
func FormatResult(f Fraction) string {
	f = normalize(f)
	if f.Denominator == 1 {
		return strconv.Itoa(f.Numerator)
	}
	return Format(f.Numerator, f.Denominator)
}

// Parse reads "n/d" or a bare integer "n" (as n/1). Surrounding and inner
// whitespace is ignored.
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Fraction{}, fmt.Errorf("%w: %q no es un número entero", ErrInvalidFraction, s)
		}
		return Fraction{Numerator: n, Denominator: 1}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: el numerador debe ser un número entero", ErrInvalidFraction)
	}
	d, err := strconv.Atoi(strings.TrimSpace(denStr))
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: el denominador debe ser un número entero", ErrInvalidFraction)
	}
	if d == 0 {
		return Fraction{}, fmt.Errorf("%w: el denominador no puede ser 0", ErrInvalidFraction)
	}
	return Fraction{Numerator: n, Denominator: d}, nil
}

// ParseMixed reads "w n/d", "n/d" or "w". The fractional part is parsed
// with Parse.
func ParseMixed(s string) (MixedNumber, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if strings.Contains(fields[0], "/") {
			f, err := Parse(fields[0])
			if err != nil {
				return MixedNumber{}, err
			}
			return MixedNumber{Fraction: f}, nil
		}
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return MixedNumber{}, fmt.Errorf("%w: %q no es un número entero", ErrInvalidFraction, fields[0])
		}
		return MixedNumber{Whole: w, Fraction: Fraction{Numerator: 0, Denominator: 1}}, nil
	case 2:
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return MixedNumber{}, fmt.Errorf("%w: %q no es un número entero", ErrInvalidFraction, fields[0])
		}
		f, err := Parse(fields[1])
		if err != nil {
			return MixedNumber{}, err
		}
		return MixedNumber{Whole: w, Fraction: f}, nil
	default:
		return MixedNumber{}, fmt.Errorf("%w: formato de número mixto inválido %q", ErrInvalidFraction, s)
	}
}
