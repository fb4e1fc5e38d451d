package problemgen

import "github.com/abhisek/fractiz/internal/fraction"

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated question. They execute in order; the first failure
	// stops the pipeline.
	Validators []Validator

	// MaxAttempts bounds how many times a question is regenerated after a
	// retryable validation failure.
	MaxAttempts int

	// MaxDistractorAttempts is the candidate budget when searching for
	// the three wrong options of a question.
	MaxDistractorAttempts int

	// MaxPromptRetries bounds how many times a batch regenerates a
	// question whose prompt repeats an earlier one.
	MaxPromptRetries int

	// Notation renders operands in prompts and explanations. Choices and
	// answers always use the simple "n/d" form.
	Notation fraction.Style
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoicesValidator{},
			&MathCheckValidator{},
		},
		MaxAttempts:           3,
		MaxDistractorAttempts: 24,
		MaxPromptRetries:      5,
		Notation:              fraction.StyleSimple,
	}
}
