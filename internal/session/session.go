// Package session runs lesson quizzes over fraction questions and
// practice rounds over seeded arithmetic exercises.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/store"
)

var (
	ErrNoQuestions = errors.New("session has no questions")
	ErrFinished    = errors.New("session already finished")
)

// Phase is the current phase of a quiz.
type Phase int

const (
	PhaseActive   Phase = iota // Serving questions
	PhaseFeedback              // Showing answer feedback
	PhaseSummary               // All questions answered
)

// Option configures a Quiz or Practice.
type Option func(*options)

type options struct {
	now    func() time.Time
	events store.EventRepo
}

// WithClock sets the clock used for timing answers and sessions.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithEvents records session boundaries and answers in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(o *options) { o.events = repo }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// AnswerResult is the outcome of one answered question.
type AnswerResult struct {
	Question *problemgen.Question
	Given    string
	Correct  bool
	Elapsed  time.Duration
}

// Quiz serves a fixed list of multiple-choice questions in order.
type Quiz struct {
	ID        string
	LessonID  string
	Questions []*problemgen.Question
	Results   []AnswerResult
	Phase     Phase
	StartTime time.Time

	// ConsecutiveCorrect and BestStreak count correct answers in a row.
	ConsecutiveCorrect int
	BestStreak         int

	index         int
	questionStart time.Time
	endTime       time.Time
	opts          options
}

// NewQuiz starts a quiz over qs. LessonID may be empty for free drills.
func NewQuiz(ctx context.Context, lessonID string, qs []*problemgen.Question, opts ...Option) (*Quiz, error) {
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	o := buildOptions(opts)
	now := o.now()
	q := &Quiz{
		ID:            uuid.New().String(),
		LessonID:      lessonID,
		Questions:     qs,
		Phase:         PhaseActive,
		StartTime:     now,
		questionStart: now,
		opts:          o,
	}

	if o.events != nil {
		err := o.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: q.ID,
			Kind:      store.KindQuiz,
			Action:    store.SessionStart,
			LessonID:  lessonID,
		})
		if err != nil {
			return nil, fmt.Errorf("record session start: %w", err)
		}
	}
	slog.Debug("quiz started", "session", q.ID, "lesson", lessonID, "questions", len(qs))
	return q, nil
}

// Index returns the zero-based position of the current question.
func (q *Quiz) Index() int { return q.index }

// Current returns the question being asked, or nil once the quiz is over.
func (q *Quiz) Current() *problemgen.Question {
	if q.index >= len(q.Questions) {
		return nil
	}
	return q.Questions[q.index]
}

// Answer checks input against the current question and moves the quiz
// into the feedback phase. Input may be a choice number (1-4) or the
// choice text.
func (q *Quiz) Answer(ctx context.Context, input string) (AnswerResult, error) {
	cur := q.Current()
	if cur == nil || q.Phase != PhaseActive {
		return AnswerResult{}, ErrFinished
	}

	given := input
	if i := problemgen.ChoiceIndex(input, cur); i >= 0 {
		given = cur.Choices[i]
	}
	res := AnswerResult{
		Question: cur,
		Given:    given,
		Correct:  problemgen.CheckAnswer(input, cur),
		Elapsed:  q.opts.now().Sub(q.questionStart),
	}
	q.Results = append(q.Results, res)
	q.Phase = PhaseFeedback

	if res.Correct {
		q.ConsecutiveCorrect++
		q.BestStreak = max(q.BestStreak, q.ConsecutiveCorrect)
	} else {
		q.ConsecutiveCorrect = 0
	}

	if q.opts.events != nil {
		err := q.opts.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     q.ID,
			LessonID:      q.LessonID,
			ExerciseType:  string(cur.Type),
			QuestionText:  cur.Text,
			CorrectAnswer: cur.Answer,
			LearnerAnswer: given,
			Correct:       res.Correct,
			TimeMs:        res.Elapsed.Milliseconds(),
		})
		if err != nil {
			return res, fmt.Errorf("record answer: %w", err)
		}
	}
	return res, nil
}

// Next leaves the feedback phase. It returns false when no questions
// remain, after which the quiz is in PhaseSummary.
func (q *Quiz) Next() bool {
	if q.Phase == PhaseSummary {
		return false
	}
	q.index++
	q.questionStart = q.opts.now()
	if q.index >= len(q.Questions) {
		q.Phase = PhaseSummary
		q.endTime = q.questionStart
		return false
	}
	q.Phase = PhaseActive
	return true
}

// Done reports whether every question has been answered.
func (q *Quiz) Done() bool {
	return len(q.Results) >= len(q.Questions)
}

// Finish ends the quiz, records its end event and returns the summary.
// Unanswered questions are left out of the totals.
func (q *Quiz) Finish(ctx context.Context) (*Summary, error) {
	if q.endTime.IsZero() {
		q.endTime = q.opts.now()
	}
	q.Phase = PhaseSummary
	sum := BuildSummary(q)

	if q.opts.events != nil {
		err := q.opts.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:       q.ID,
			Kind:            store.KindQuiz,
			Action:          store.SessionEnd,
			LessonID:        q.LessonID,
			QuestionsServed: sum.TotalQuestions,
			CorrectAnswers:  sum.TotalCorrect,
			DurationSecs:    int(sum.Duration.Seconds()),
		})
		if err != nil {
			return sum, fmt.Errorf("record session end: %w", err)
		}
	}
	slog.Debug("quiz finished", "session", q.ID, "correct", sum.TotalCorrect, "total", sum.TotalQuestions)
	return sum, nil
}

// Elapsed returns the time since the quiz started, frozen once it ends.
func (q *Quiz) Elapsed() time.Duration {
	if !q.endTime.IsZero() {
		return q.endTime.Sub(q.StartTime)
	}
	return q.opts.now().Sub(q.StartTime)
}
