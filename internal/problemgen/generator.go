package problemgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/lessons"
)

// Generator produces fraction questions from an injected randomness
// source. Two generators built from equally seeded sources produce the
// same questions. A Generator is not safe for concurrent use.
type Generator struct {
	rng    Rand
	config Config
	seq    int
}

// NewGenerator creates a Generator. A nil rng draws from runtime entropy.
func NewGenerator(rng Rand, cfg Config) *Generator {
	if rng == nil {
		rng = newEntropyRand()
	}
	return &Generator{rng: rng, config: cfg}
}

// Generate produces one validated question of the given type with its
// choices shuffled. comparar keeps its fixed symbol order.
func (g *Generator) Generate(typ ExerciseType, difficulty lessons.Difficulty) (*Question, error) {
	q, err := g.generate(typ, difficulty)
	if err != nil {
		return nil, err
	}
	shuffleChoices(g.rng, q)
	return q, nil
}

func shuffleChoices(r Rand, q *Question) {
	if q.Type != TypeCompare {
		shuffle(r, q.Choices)
	}
}

// generate is Generate with choices in canonical order: the answer first
// for generated distractors, the fixed label order for identificar-tipo
// and comparar.
func (g *Generator) generate(typ ExerciseType, difficulty lessons.Difficulty) (*Question, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
	bounds, err := RangeFor(difficulty)
	if err != nil {
		return nil, err
	}

	attempts := max(g.config.MaxAttempts, 1)
	var lastErr error
	for range attempts {
		q, err := g.build(typ, difficulty, bounds)
		if errors.Is(err, ErrDistractorsExhausted) {
			// Redraw operands.
			lastErr = err
			continue
		}
		if err != nil {
			return nil, err
		}
		verr := runValidators(g.config.Validators, q)
		if verr == nil {
			return q, nil
		}
		lastErr = verr
		if !verr.Retryable {
			break
		}
	}
	return nil, fmt.Errorf("generate %s: %w", typ, lastErr)
}

func (g *Generator) build(typ ExerciseType, d lessons.Difficulty, r Range) (*Question, error) {
	var (
		q   *Question
		err error
	)
	switch typ {
	case TypeImproperToMixed:
		q, err = g.improperToMixed(r)
	case TypeMixedToImproper:
		q, err = g.mixedToImproper(d)
	case TypeSimplify:
		q, err = g.simplify(r)
	case TypeIdentify:
		q = g.identify()
	case TypeCompare:
		q, err = g.compare(r)
	case TypeEquivalent:
		q, err = g.equivalent(r)
	default:
		q, err = g.arithmetic(typ, d, r)
	}
	if err != nil {
		return nil, err
	}

	g.seq++
	q.ID = fmt.Sprintf("%s-%d-%d", typ, g.seq, between(g.rng, 1000, 9999))
	q.Type = typ
	q.Difficulty = d
	return q, nil
}

// fractionShape constrains randomFraction.
type fractionShape int

const (
	shapeAny fractionShape = iota
	shapeProper
	shapeImproper
)

// randomFraction draws n in [Min, Max] and d in [max(Min, 2), Max], then
// forces the requested shape.
func (g *Generator) randomFraction(r Range, shape fractionShape) fraction.Fraction {
	n := between(g.rng, r.Min, r.Max)
	d := between(g.rng, max(r.Min, 2), r.Max)

	switch {
	case shape == shapeProper && n >= d:
		n = between(g.rng, 1, d-1)
	case shape == shapeImproper && n <= d:
		n = d + between(g.rng, 1, 10)
	}
	return fraction.New(n, d)
}

// frac renders an operand in the configured notation.
func (g *Generator) frac(n, d int) string {
	return fraction.FormatStyle(n, d, g.config.Notation)
}

func (g *Generator) withDistractors(answer string, s distractorSearch) ([]string, error) {
	s.answer = answer
	ds, err := s.pick(g.config.MaxDistractorAttempts)
	if err != nil {
		return nil, err
	}
	return append([]string{answer}, ds...), nil
}

func (g *Generator) improperToMixed(r Range) (*Question, error) {
	f := g.randomFraction(r, shapeImproper)
	m, err := fraction.ToMixedNumber(f.Numerator, f.Denominator)
	if err != nil {
		return nil, err
	}
	answer := m.String()

	lower := m.Whole - 1
	if lower <= 0 {
		lower = 1
	}
	choices, err := g.withDistractors(answer, distractorSearch{
		candidates: []string{
			fraction.FormatMixed(m.Whole+1, m.Numerator, m.Denominator),
			fraction.FormatMixed(m.Whole, m.Numerator+1, m.Denominator),
			fraction.FormatMixed(lower, m.Numerator, m.Denominator),
		},
		fallback: func(i int) string {
			if i%2 == 0 {
				return fraction.FormatMixed(m.Whole+2+i/2, m.Numerator, m.Denominator)
			}
			return fraction.FormatMixed(m.Whole, (m.Numerator+1+i/2)%m.Denominator, m.Denominator)
		},
		accept: mixedNotEqualTo(f),
	})
	if err != nil {
		return nil, err
	}

	return &Question{
		Text:    fmt.Sprintf("Convierte la fracción impropia %s a número mixto:", g.frac(f.Numerator, f.Denominator)),
		Choices: choices,
		Answer:  answer,
		Explanation: fmt.Sprintf("%d ÷ %d = %d con residuo %d, entonces %s = %s",
			f.Numerator, f.Denominator, m.Whole, m.Numerator, g.frac(f.Numerator, f.Denominator), answer),
		Numerator:   intPtr(f.Numerator),
		Denominator: intPtr(f.Denominator),
	}, nil
}

// mixedBounds caps the whole part and denominator of mixto-a-impropia.
var mixedBounds = map[lessons.Difficulty]struct{ whole, den int }{
	lessons.DifficultyEasy:   {whole: 5, den: 8},
	lessons.DifficultyMedium: {whole: 10, den: 12},
	lessons.DifficultyHard:   {whole: 20, den: 20},
}

func (g *Generator) mixedToImproper(d lessons.Difficulty) (*Question, error) {
	b := mixedBounds[d]
	whole := between(g.rng, 1, b.whole)
	den := between(g.rng, 2, b.den)
	num := between(g.rng, 1, den-1)

	f, err := fraction.ToImproper(whole, num, den)
	if err != nil {
		return nil, err
	}
	answer := f.String()

	choices, err := g.withDistractors(answer, distractorSearch{
		candidates: []string{
			fractionText(f.Numerator+den, den),
			fractionText(f.Numerator-den, den),
			fractionText(f.Numerator+1, den),
		},
		fallback: func(i int) string {
			if i%2 == 0 {
				return fractionText(f.Numerator-1-i/2, den)
			}
			// Forgot to multiply the whole part.
			return fractionText(whole+num+i/2, den)
		},
		accept: notEquivalentTo(f),
	})
	if err != nil {
		return nil, err
	}

	mixed := fraction.FormatMixedStyle(whole, num, den, g.config.Notation)
	return &Question{
		Text:    fmt.Sprintf("Convierte el número mixto %s a fracción impropia:", mixed),
		Choices: choices,
		Answer:  answer,
		Explanation: fmt.Sprintf("(%d × %d) + %d = %d, entonces %s = %s",
			whole, den, num, f.Numerator, mixed, answer),
		Numerator:   intPtr(num),
		Denominator: intPtr(den),
		Whole:       intPtr(whole),
	}, nil
}

func (g *Generator) simplify(r Range) (*Question, error) {
	base := g.randomFraction(r, shapeAny)
	factor := between(g.rng, 2, 5)
	n, d := base.Numerator*factor, base.Denominator*factor

	s, err := fraction.Simplify(n, d)
	if err != nil {
		return nil, err
	}
	answer := s.Fraction().String()

	choices, err := g.withDistractors(answer, distractorSearch{
		candidates: []string{
			fractionText(s.Numerator+1, s.Denominator),
			fractionText(s.Numerator, s.Denominator+1),
			fractionText(s.Numerator/2, s.Denominator/2),
		},
		fallback: func(i int) string {
			if i%2 == 0 {
				return fractionText(s.Numerator+2+i/2, s.Denominator)
			}
			return fractionText(s.Numerator, s.Denominator+2+i/2)
		},
		accept: func(c string) bool {
			f, err := fraction.Parse(c)
			return err == nil && f.Numerator > 0 && notEquivalentTo(s.Fraction())(c)
		},
	})
	if err != nil {
		return nil, err
	}

	return &Question{
		Text:    fmt.Sprintf("Simplifica la fracción %s a su mínima expresión:", g.frac(n, d)),
		Choices: choices,
		Answer:  answer,
		Explanation: fmt.Sprintf("El MCD de %d y %d es %d. Dividiendo ambos: %d÷%d = %d y %d÷%d = %d",
			n, d, s.Factor, n, s.Factor, s.Numerator, d, s.Factor, s.Denominator),
		Numerator:   intPtr(n),
		Denominator: intPtr(d),
	}, nil
}

// identify chooses the type first and builds a fraction of that type.
func (g *Generator) identify() *Question {
	types := fraction.AllTypes()
	want := types[g.rng.IntN(len(types))]

	var n, d int
	switch want {
	case fraction.TypeProper:
		d = between(g.rng, 3, 12)
		n = between(g.rng, 1, d-1)
	case fraction.TypeImproper:
		// k*d + r with r in [1, d-1] lies strictly between d and 3d and is
		// never a multiple of d.
		d = between(g.rng, 2, 8)
		n = between(g.rng, 1, 2)*d + between(g.rng, 1, d-1)
	case fraction.TypeUnit:
		n = between(g.rng, 2, 10)
		d = n
	case fraction.TypeApparent:
		d = between(g.rng, 2, 8)
		n = d * between(g.rng, 2, 5)
	}

	choices := make([]string, len(types))
	for i, t := range types {
		choices[i] = t.DisplayName()
	}
	answer := want.DisplayName()

	return &Question{
		Text:        fmt.Sprintf("¿Qué tipo de fracción es %s?", g.frac(n, d)),
		Choices:     choices,
		Answer:      answer,
		Explanation: fmt.Sprintf("Es %s porque es una %s", strings.ToLower(answer), strings.ToLower(want.Description())),
		Numerator:   intPtr(n),
		Denominator: intPtr(d),
	}
}

// Comparison options in fixed order.
const (
	SymbolGreater      = ">"
	SymbolLess         = "<"
	SymbolEqual        = "="
	SymbolIncomparable = "No se pueden comparar"
)

func compareSymbol(c int) string {
	switch {
	case c > 0:
		return SymbolGreater
	case c < 0:
		return SymbolLess
	default:
		return SymbolEqual
	}
}

func (g *Generator) compare(r Range) (*Question, error) {
	a := g.randomFraction(r, shapeAny)
	b := g.randomFraction(r, shapeAny)

	c, err := fraction.Compare(a, b)
	if err != nil {
		return nil, err
	}
	sym := compareSymbol(c)
	fa, fb := g.frac(a.Numerator, a.Denominator), g.frac(b.Numerator, b.Denominator)

	return &Question{
		Text:    fmt.Sprintf("¿Cuál es la relación entre %s y %s?", fa, fb),
		Choices: []string{SymbolGreater, SymbolLess, SymbolEqual, SymbolIncomparable},
		Answer:  sym,
		Explanation: fmt.Sprintf("%s %s %s porque %d × %d = %d %s %d = %d × %d",
			fa, sym, fb,
			a.Numerator, b.Denominator, a.Numerator*b.Denominator,
			sym,
			b.Numerator*a.Denominator, b.Numerator, a.Denominator),
	}, nil
}

func (g *Generator) equivalent(r Range) (*Question, error) {
	f := g.randomFraction(r, shapeAny)
	eqs, err := fraction.Equivalents(f.Numerator, f.Denominator, 3)
	if err != nil {
		return nil, err
	}
	pick := eqs[g.rng.IntN(len(eqs))]
	answer := pick.Fraction().String()

	n, d := f.Numerator, f.Denominator
	choices, err := g.withDistractors(answer, distractorSearch{
		candidates: []string{
			fractionText(n+1, d),
			fractionText(n, d+1),
			fractionText(n+1, d+1),
		},
		fallback: func(i int) string {
			// Scaled only one part.
			k := 2 + i%3
			if i%2 == 0 {
				return fractionText(n*k+1+i/3, d*k)
			}
			return fractionText(n*k, d*k+1+i/3)
		},
		accept: notEquivalentTo(f),
	})
	if err != nil {
		return nil, err
	}

	return &Question{
		Text:        fmt.Sprintf("¿Cuál fracción es equivalente a %s?", g.frac(n, d)),
		Choices:     choices,
		Answer:      answer,
		Explanation: fmt.Sprintf("%s es equivalente porque se obtiene multiplicando numerador y denominador por %d", answer, pick.Factor),
		Numerator:   intPtr(n),
		Denominator: intPtr(d),
	}, nil
}

var operatorSymbols = map[ExerciseType]string{
	TypeAdd:      "+",
	TypeSubtract: "-",
	TypeMultiply: "×",
	TypeDivide:   "÷",
}

// arithmetic poses a op b. Easy and medium levels use proper operands.
// Subtraction orders the operands so the result is non-negative.
func (g *Generator) arithmetic(typ ExerciseType, d lessons.Difficulty, r Range) (*Question, error) {
	shape := shapeProper
	if d == lessons.DifficultyHard {
		shape = shapeAny
	}
	a := g.randomFraction(r, shape)
	b := g.randomFraction(r, shape)

	if typ == TypeSubtract {
		c, err := fraction.Compare(a, b)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			a, b = b, a
		}
	}

	var (
		result      fraction.Fraction
		err         error
		candidates  []string
		explanation string
	)
	switch typ {
	case TypeAdd:
		result, err = fraction.Add(a, b)
		if err != nil {
			return nil, err
		}
		candidates = []string{
			// Added numerators and denominators straight across.
			resultText(a.Numerator+b.Numerator, a.Denominator+b.Denominator),
			resultText(a.Numerator+b.Numerator, max(a.Denominator, b.Denominator)),
			resultText(a.Numerator*b.Denominator+b.Numerator*a.Denominator, a.Denominator+b.Denominator),
		}
		explanation, err = g.explainCommon(a, b, "+", result)
	case TypeSubtract:
		result, err = fraction.Subtract(a, b)
		if err != nil {
			return nil, err
		}
		candidates = []string{
			resultText(a.Numerator-b.Numerator, a.Denominator-b.Denominator),
			resultText(a.Numerator-b.Numerator, max(a.Denominator, b.Denominator)),
			resultText(a.Numerator*b.Denominator+b.Numerator*a.Denominator, a.Denominator*b.Denominator),
		}
		explanation, err = g.explainCommon(a, b, "-", result)
	case TypeMultiply:
		result, err = fraction.Multiply(a, b)
		if err != nil {
			return nil, err
		}
		candidates = []string{
			// Cross-multiplied as if dividing.
			resultText(a.Numerator*b.Denominator, a.Denominator*b.Numerator),
			resultText(a.Numerator*b.Numerator, a.Denominator+b.Denominator),
			resultText(a.Numerator+b.Numerator, a.Denominator*b.Denominator),
		}
		explanation = fmt.Sprintf("Se multiplican numeradores y denominadores: (%d × %d)/(%d × %d) = %d/%d, que simplificado es %s",
			a.Numerator, b.Numerator, a.Denominator, b.Denominator,
			a.Numerator*b.Numerator, a.Denominator*b.Denominator, fraction.FormatResult(result))
	case TypeDivide:
		result, err = fraction.Divide(a, b)
		if err != nil {
			return nil, err
		}
		forgot, err := fraction.Multiply(a, b)
		if err != nil {
			return nil, err
		}
		candidates = []string{
			// Forgot the reciprocal.
			fraction.FormatResult(forgot),
			// Inverted the dividend instead of the divisor.
			resultText(result.Denominator, result.Numerator),
			resultText(a.Numerator*b.Numerator, a.Denominator*b.Numerator),
		}
		explanation = fmt.Sprintf("Se multiplica por el recíproco de %s: %s × %s = %s",
			g.frac(b.Numerator, b.Denominator),
			g.frac(a.Numerator, a.Denominator), g.frac(b.Denominator, b.Numerator),
			fraction.FormatResult(result))
	}
	if err != nil {
		return nil, err
	}

	answer := fraction.FormatResult(result)
	choices, err := g.withDistractors(answer, distractorSearch{
		candidates: candidates,
		fallback: func(i int) string {
			if i%2 == 0 {
				return resultText(result.Numerator+1+i/2, result.Denominator)
			}
			return resultText(result.Numerator*(2+i/2)+1, result.Denominator*(2+i/2))
		},
		accept: notEquivalentTo(result),
	})
	if err != nil {
		return nil, err
	}

	return &Question{
		Text: fmt.Sprintf("Calcula %s %s %s:",
			g.frac(a.Numerator, a.Denominator), operatorSymbols[typ], g.frac(b.Numerator, b.Denominator)),
		Choices:     choices,
		Answer:      answer,
		Explanation: explanation,
	}, nil
}

// explainCommon describes addition or subtraction over the LCM.
func (g *Generator) explainCommon(a, b fraction.Fraction, op string, result fraction.Fraction) (string, error) {
	scaled, err := fraction.CommonDenominator([]fraction.Fraction{a, b})
	if err != nil {
		return "", err
	}
	num := scaled[0].Numerator + scaled[1].Numerator
	if op == "-" {
		num = scaled[0].Numerator - scaled[1].Numerator
	}
	return fmt.Sprintf("Con denominador común %d: %s %s %s = %s, que simplificado es %s",
		scaled[0].Denominator,
		g.frac(scaled[0].Numerator, scaled[0].Denominator), op,
		g.frac(scaled[1].Numerator, scaled[1].Denominator),
		g.frac(num, scaled[0].Denominator),
		fraction.FormatResult(result)), nil
}
