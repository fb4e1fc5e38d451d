package problemgen

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/fractiz/internal/lessons"
)

var validate = validator.New()

// BatchConfig describes a set of questions to generate together.
type BatchConfig struct {
	Count      int                `validate:"min=0,max=200"`
	Difficulty lessons.Difficulty `validate:"required,oneof=facil medio dificil"`
	// Types are cycled round-robin. Empty means DefaultBatchTypes.
	Types            []ExerciseType `validate:"dive,required"`
	ShuffleQuestions bool
	// ShuffleOptions false keeps every question's choices in canonical order.
	ShuffleOptions bool
}

// DefaultBatchTypes is the type set used when BatchConfig.Types is empty.
func DefaultBatchTypes() []ExerciseType {
	return []ExerciseType{TypeImproperToMixed, TypeMixedToImproper, TypeSimplify, TypeIdentify}
}

// DefaultBatchConfig returns ten medium questions of the default types,
// with questions and options shuffled.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Count:            10,
		Difficulty:       lessons.DifficultyMedium,
		Types:            DefaultBatchTypes(),
		ShuffleQuestions: true,
		ShuffleOptions:   true,
	}
}

// Validate checks the config's field constraints and exercise types.
func (c BatchConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid batch config: %w", err)
	}
	for _, t := range c.Types {
		if !t.Valid() {
			return fmt.Errorf("invalid batch config: %w: %q", ErrUnknownType, t)
		}
	}
	return nil
}

// GenerateBatch produces cfg.Count questions, cycling over cfg.Types by
// index. A zero count yields an empty batch. A question whose prompt repeats an earlier one in the batch is
// regenerated up to MaxPromptRetries times, then kept.
func (g *Generator) GenerateBatch(cfg BatchConfig) ([]*Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	types := cfg.Types
	if len(types) == 0 {
		types = DefaultBatchTypes()
	}

	seen := make(map[string]bool, cfg.Count)
	out := make([]*Question, 0, cfg.Count)
	for i := range cfg.Count {
		typ := types[i%len(types)]

		var q *Question
		for retry := 0; ; retry++ {
			var err error
			q, err = g.generate(typ, cfg.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			if !seen[q.Text] || retry >= g.config.MaxPromptRetries {
				break
			}
		}
		seen[q.Text] = true

		if cfg.ShuffleOptions {
			shuffleChoices(g.rng, q)
		}
		out = append(out, q)
	}

	if cfg.ShuffleQuestions {
		shuffle(g.rng, out)
	}
	return out, nil
}

// lessonTypes maps each catalog lesson to the exercise types that
// practice it. Read-only.
var lessonTypes = map[string][]ExerciseType{
	"introduccion-fracciones":   {TypeIdentify},
	"numeros-mixtos":            {TypeImproperToMixed, TypeMixedToImproper},
	"fracciones-equivalentes":   {TypeEquivalent},
	"simplificacion-fracciones": {TypeSimplify},
	"comparacion-fracciones":    {TypeCompare},
	"suma-fracciones":           {TypeAdd},
	"resta-fracciones":          {TypeSubtract},
	"multiplicacion-fracciones": {TypeMultiply},
	"division-fracciones":       {TypeDivide},
}

// TypesForLesson returns the exercise types for a lesson. Unknown lessons
// get identificar-tipo.
func TypesForLesson(lessonID string) []ExerciseType {
	if ts, ok := lessonTypes[lessonID]; ok {
		return slices.Clone(ts)
	}
	return []ExerciseType{TypeIdentify}
}

// GenerateForLesson produces a shuffled batch of the types that practice
// the given lesson.
func (g *Generator) GenerateForLesson(lessonID string, count int, difficulty lessons.Difficulty) ([]*Question, error) {
	return g.GenerateBatch(BatchConfig{
		Count:            count,
		Difficulty:       difficulty,
		Types:            TypesForLesson(lessonID),
		ShuffleQuestions: true,
		ShuffleOptions:   true,
	})
}
