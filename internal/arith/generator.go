package arith

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/fractiz/internal/lessons"
)

// bounds is the largest operand per difficulty.
var bounds = map[lessons.Difficulty]int{
	lessons.DifficultyEasy:   20,
	lessons.DifficultyMedium: 100,
	lessons.DifficultyHard:   1000,
}

// Bound returns the largest operand drawn at the given difficulty.
func Bound(d lessons.Difficulty) (int, error) {
	limit, ok := bounds[d]
	if !ok {
		return 0, fmt.Errorf("arith: unknown difficulty %q", d)
	}
	return limit, nil
}

// Generator produces a reproducible stream of exercises from a seed.
// It is not safe for concurrent use.
type Generator struct {
	seed int64
	rng  *rand.Rand
	now  func() time.Time
	next int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for exercise timestamps and for deriving
// a seed when none is given.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a Generator for seed. A zero seed is replaced by the
// current time in milliseconds; Seed reports the value actually used.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if seed == 0 {
		seed = g.now().UnixMilli()
	}
	g.seed = seed
	s := uint64(seed)
	g.rng = rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	return g
}

// Seed returns the seed that replays this generator's sequence.
func (g *Generator) Seed() int64 { return g.seed }

// Generate returns count new exercises. IDs continue from earlier calls,
// so exercises from one generator never collide.
func (g *Generator) Generate(count int, difficulty lessons.Difficulty) ([]Exercise, error) {
	limit, err := Bound(difficulty)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, nil
	}

	ops := AllOperations()
	out := make([]Exercise, 0, count)
	for range count {
		op := ops[g.rng.IntN(len(ops))]
		a, b, answer := g.operands(op, limit)
		out = append(out, Exercise{
			ID:         fmt.Sprintf("ex_%d_%d", g.seed, g.next),
			Operation:  op,
			Difficulty: difficulty,
			Question:   formatQuestion(a, op, b),
			Answer:     answer,
			Timestamp:  g.now(),
		})
		g.next++
	}
	return out, nil
}

// operands draws the displayed operands and the answer for op.
func (g *Generator) operands(op Operation, limit int) (a, b, answer int) {
	switch op {
	case OpSubtract:
		a, b = g.draw(limit), g.draw(limit)
		if b > a {
			a, b = b, a
		}
		return a, b, a - b
	case OpMultiply:
		a, b = g.draw(limit), g.draw(limit)
		return a, b, a * b
	case OpDivide:
		// Divisor first so the quotient is whole and the dividend stays in range.
		b = g.draw(limit)
		q := g.draw(limit / b)
		return b * q, b, q
	default:
		a, b = g.draw(limit), g.draw(limit)
		return a, b, a + b
	}
}

// draw returns a uniform int in [1, n].
func (g *Generator) draw(n int) int {
	return g.rng.IntN(n) + 1
}
