package session

import (
	"time"

	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/progress"
)

// TypeResult tracks per-type performance within a single quiz.
type TypeResult struct {
	Type      problemgen.ExerciseType
	Attempted int
	Correct   int
}

// Summary holds the data displayed when a quiz ends.
type Summary struct {
	SessionID      string
	LessonID       string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	BestStreak     int
	TypeResults    []TypeResult
	Missed         []AnswerResult
}

// Percent returns the accuracy as a rounded percentage.
func (s *Summary) Percent() int {
	return progress.Percent(s.TotalCorrect, s.TotalQuestions)
}

// BuildSummary creates a Summary from the quiz's answers. Types appear in
// the order they were first asked.
func BuildSummary(q *Quiz) *Summary {
	sum := &Summary{
		SessionID:  q.ID,
		LessonID:   q.LessonID,
		Duration:   q.Elapsed(),
		BestStreak: q.BestStreak,
	}

	pos := make(map[problemgen.ExerciseType]int)
	for _, r := range q.Results {
		sum.TotalQuestions++
		if r.Correct {
			sum.TotalCorrect++
		} else {
			sum.Missed = append(sum.Missed, r)
		}

		i, ok := pos[r.Question.Type]
		if !ok {
			i = len(sum.TypeResults)
			pos[r.Question.Type] = i
			sum.TypeResults = append(sum.TypeResults, TypeResult{Type: r.Question.Type})
		}
		sum.TypeResults[i].Attempted++
		if r.Correct {
			sum.TypeResults[i].Correct++
		}
	}

	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
	}
	return sum
}
