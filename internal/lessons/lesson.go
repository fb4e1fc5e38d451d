package lessons

import "fmt"

// Difficulty is the level a question or exercise is generated at.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "facil"
	DifficultyMedium Difficulty = "medio"
	DifficultyHard   Difficulty = "dificil"
)

// AllDifficulties returns every difficulty from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty accepts the canonical values plus the accented and
// English spellings.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "facil", "fácil", "easy":
		return DifficultyEasy, nil
	case "medio", "medium":
		return DifficultyMedium, nil
	case "dificil", "difícil", "hard":
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want facil, medio or dificil)", s)
	}
}

// Label returns the learner-facing name.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Fácil"
	case DifficultyMedium:
		return "Medio"
	case DifficultyHard:
		return "Difícil"
	default:
		return string(d)
	}
}

// Lesson is a node in the lesson catalog.
type Lesson struct {
	ID            string   `yaml:"id"`
	Number        int      `yaml:"number"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Icon          string   `yaml:"icon"`
	EstimatedMins int      `yaml:"estimated_mins"`
	ExerciseTotal int      `yaml:"exercise_total"`
	Topics        []string `yaml:"topics"`
	Prerequisites []string `yaml:"prerequisites"`
	Order         int      `yaml:"order"`
}
