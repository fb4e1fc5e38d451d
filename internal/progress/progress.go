// Package progress tracks per-lesson results, aggregate stats and the
// daily practice streak.
package progress

import (
	"errors"
	"math"
	"time"

	"github.com/abhisek/fractiz/internal/store"
)

// Status is a lesson's state for the learner.
type Status string

const (
	StatusNew        Status = "nuevo"
	StatusInProgress Status = "en-progreso"
	StatusCompleted  Status = "completado"
	StatusLocked     Status = "bloqueado"
)

// Label returns the learner-facing name.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "Nuevo"
	case StatusInProgress:
		return "En progreso"
	case StatusCompleted:
		return "Completado"
	case StatusLocked:
		return "Bloqueado"
	default:
		return string(s)
	}
}

var (
	ErrUnknownLesson = errors.New("unknown lesson")
	ErrNotStarted    = errors.New("lesson not started")
)

// Progress is one lesson's accumulated results.
type Progress struct {
	LessonID         string
	Status           Status
	ExercisesDone    int
	ExercisesCorrect int
	TimeSpent        time.Duration
	LastAccess       time.Time
	Attempts         int
	Accuracy         int // percent, 0-100
	BestAccuracy     int // percent, 0-100
}

// record adds one answered exercise and refreshes the accuracy figures.
func (p *Progress) record(correct bool, spent time.Duration) {
	p.ExercisesDone++
	if correct {
		p.ExercisesCorrect++
	}
	p.TimeSpent += spent
	p.Accuracy = Percent(p.ExercisesCorrect, p.ExercisesDone)
	if p.Accuracy > p.BestAccuracy {
		p.BestAccuracy = p.Accuracy
	}
}

// Stats aggregates progress across all lessons.
type Stats struct {
	LessonsCompleted int
	ExercisesSolved  int
	TotalMinutes     int
	AverageAccuracy  int // percent, 0-100
	Streak           int
	LastActivity     time.Time
}

// Percent returns part/total as a rounded percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// PassPercent is the quiz accuracy that completes a lesson.
const PassPercent = 70

// StreakMilestones are the first streak lengths worth celebrating.
// Past the last one, every multiple of 5 is a milestone.
var StreakMilestones = []int{3, 5, 7, 10, 15, 20}

// NextStreakMilestone returns the next milestone above current.
func NextStreakMilestone(current int) int {
	for _, m := range StreakMilestones {
		if m > current {
			return m
		}
	}
	return ((current / 5) + 1) * 5
}

func fromRecord(rec store.LessonProgressRecord) Progress {
	return Progress{
		LessonID:         rec.LessonID,
		Status:           Status(rec.Status),
		ExercisesDone:    rec.ExercisesDone,
		ExercisesCorrect: rec.ExercisesCorrect,
		TimeSpent:        rec.TimeSpent,
		LastAccess:       rec.LastAccess,
		Attempts:         rec.Attempts,
		Accuracy:         rec.Accuracy,
		BestAccuracy:     rec.BestAccuracy,
	}
}

func (p Progress) toRecord() store.LessonProgressRecord {
	return store.LessonProgressRecord{
		LessonID:         p.LessonID,
		Status:           string(p.Status),
		ExercisesDone:    p.ExercisesDone,
		ExercisesCorrect: p.ExercisesCorrect,
		TimeSpent:        p.TimeSpent,
		LastAccess:       p.LastAccess,
		Attempts:         p.Attempts,
		Accuracy:         p.Accuracy,
		BestAccuracy:     p.BestAccuracy,
	}
}
