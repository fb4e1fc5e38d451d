package problemgen

import "github.com/abhisek/fractiz/internal/lessons"

// StructuralValidator checks that required fields are present, within
// length limits, and have valid enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.ID == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "id is empty",
		}
	}
	if !q.Type.Valid() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "type " + string(q.Type) + " is not a known exercise type",
		}
	}
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "text is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 500 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "text exceeds 500 characters",
			Retryable: true,
		}
	}
	if q.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 1000 characters",
			Retryable: true,
		}
	}
	if d, err := lessons.ParseDifficulty(string(q.Difficulty)); err != nil || d != q.Difficulty {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be \"facil\", \"medio\" or \"dificil\"",
		}
	}
	return nil
}
