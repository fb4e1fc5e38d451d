package fraction

// Fraction is a numerator/denominator pair. It is not canonicalized on
// construction; call Simplify explicitly. A negative value carries its sign
// on the numerator.
type Fraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// New returns the fraction n/d without validating or reducing it.
func New(n, d int) Fraction {
	return Fraction{Numerator: n, Denominator: d}
}

// String renders the fraction as "n/d".
func (f Fraction) String() string {
	return Format(f.Numerator, f.Denominator)
}

// MixedNumber is a whole part plus a fractional remainder.
type MixedNumber struct {
	Whole    int      `json:"whole"`
	Fraction Fraction `json:"fraction"`
}

// Type classifies a non-negative fraction.
type Type string

const (
	TypeProper   Type = "propia"   // numerator < denominator
	TypeUnit     Type = "unitaria" // numerator == denominator
	TypeApparent Type = "aparente" // nonzero multiple of the denominator, not equal to it
	TypeImproper Type = "impropia" // numerator > denominator, not a multiple
)

// AllTypes returns every fraction type in display order.
func AllTypes() []Type {
	return []Type{TypeProper, TypeImproper, TypeUnit, TypeApparent}
}

// DisplayName returns the capitalized label used in answer choices.
func (t Type) DisplayName() string {
	switch t {
	case TypeProper:
		return "Propia"
	case TypeImproper:
		return "Impropia"
	case TypeUnit:
		return "Unitaria"
	case TypeApparent:
		return "Aparente"
	default:
		return string(t)
	}
}

// Description explains the type in learner-facing language.
func (t Type) Description() string {
	switch t {
	case TypeProper:
		return "Fracción propia (menor que 1)"
	case TypeImproper:
		return "Fracción impropia (mayor que 1)"
	case TypeUnit:
		return "Fracción unitaria (igual a 1)"
	case TypeApparent:
		return "Fracción aparente (equivalente a un entero)"
	default:
		return string(t)
	}
}
