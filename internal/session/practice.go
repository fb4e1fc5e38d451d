package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/arith"
	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/store"
)

// Practice is a round of seeded arithmetic exercises the learner can move
// through freely.
type Practice struct {
	ID          string
	Seed        int64
	Difficulty  lessons.Difficulty
	Exercises   []arith.Exercise
	CreatedAt   time.Time
	CompletedAt *time.Time

	index int
	opts  options
}

// NewPractice draws count exercises from gen.
func NewPractice(ctx context.Context, gen *arith.Generator, count int, difficulty lessons.Difficulty, opts ...Option) (*Practice, error) {
	exs, err := gen.Generate(count, difficulty)
	if err != nil {
		return nil, err
	}
	if len(exs) == 0 {
		return nil, ErrNoQuestions
	}
	o := buildOptions(opts)
	p := &Practice{
		ID:         uuid.New().String(),
		Seed:       gen.Seed(),
		Difficulty: difficulty,
		Exercises:  exs,
		CreatedAt:  o.now(),
		opts:       o,
	}

	if o.events != nil {
		err := o.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: p.ID,
			Kind:      store.KindArith,
			Action:    store.SessionStart,
		})
		if err != nil {
			return nil, fmt.Errorf("record session start: %w", err)
		}
	}
	return p, nil
}

// Index returns the position of the current exercise.
func (p *Practice) Index() int { return p.index }

// Total returns the number of exercises.
func (p *Practice) Total() int { return len(p.Exercises) }

// Current returns the exercise at the cursor.
func (p *Practice) Current() *arith.Exercise {
	if p.index < 0 || p.index >= len(p.Exercises) {
		return nil
	}
	return &p.Exercises[p.index]
}

// Submit answers the current exercise and reports whether it is correct.
// The round is marked complete once every exercise is solved.
func (p *Practice) Submit(ctx context.Context, answer int) (bool, error) {
	ex := p.Current()
	if ex == nil {
		return false, ErrFinished
	}
	correct := ex.Record(answer)

	if p.IsComplete() && p.CompletedAt == nil {
		t := p.opts.now()
		p.CompletedAt = &t
	}

	if p.opts.events != nil {
		err := p.opts.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     p.ID,
			ExerciseType:  string(ex.Operation),
			QuestionText:  ex.Question,
			CorrectAnswer: strconv.Itoa(ex.Answer),
			LearnerAnswer: strconv.Itoa(answer),
			Correct:       correct,
		})
		if err != nil {
			return correct, fmt.Errorf("record answer: %w", err)
		}
	}
	return correct, nil
}

// Next moves to the following exercise. It returns false at the end.
func (p *Practice) Next() bool {
	if p.index < len(p.Exercises)-1 {
		p.index++
		return true
	}
	return false
}

// Previous moves back one exercise. It returns false at the start.
func (p *Practice) Previous() bool {
	if p.index > 0 {
		p.index--
		return true
	}
	return false
}

// GoTo jumps to exercise i. Out-of-range positions are ignored.
func (p *Practice) GoTo(i int) bool {
	if i >= 0 && i < len(p.Exercises) {
		p.index = i
		return true
	}
	return false
}

// SolvedCount returns how many exercises have an answer.
func (p *Practice) SolvedCount() int {
	n := 0
	for _, ex := range p.Exercises {
		if ex.Solved {
			n++
		}
	}
	return n
}

// CorrectCount returns how many exercises were answered correctly.
func (p *Practice) CorrectCount() int {
	n := 0
	for _, ex := range p.Exercises {
		if ex.IsCorrect() {
			n++
		}
	}
	return n
}

// Accuracy returns correct over solved as a rounded percentage.
func (p *Practice) Accuracy() int {
	return progress.Percent(p.CorrectCount(), p.SolvedCount())
}

// IsComplete reports whether every exercise has been answered.
func (p *Practice) IsComplete() bool {
	return len(p.Exercises) > 0 && p.SolvedCount() == len(p.Exercises)
}

// ProgressPercent returns solved over total as a rounded percentage.
func (p *Practice) ProgressPercent() int {
	return progress.Percent(p.SolvedCount(), len(p.Exercises))
}

// Finish records the end event for the round.
func (p *Practice) Finish(ctx context.Context) error {
	if p.opts.events == nil {
		return nil
	}
	end := p.opts.now()
	if p.CompletedAt != nil {
		end = *p.CompletedAt
	}
	return p.opts.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:       p.ID,
		Kind:            store.KindArith,
		Action:          store.SessionEnd,
		QuestionsServed: p.SolvedCount(),
		CorrectAnswers:  p.CorrectCount(),
		DurationSecs:    int(end.Sub(p.CreatedAt).Seconds()),
	})
}

// Record is the serializable snapshot of a practice round.
type Record struct {
	SessionID   string           `json:"sessionId"`
	Seed        int64            `json:"seed"`
	Difficulty  string           `json:"difficulty"`
	Exercises   []arith.Exercise `json:"exercises"`
	CreatedAt   time.Time        `json:"createdAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
	TotalSolved int              `json:"totalSolved"`
}

// Record returns a snapshot of the round. Replaying Seed at the same
// difficulty regenerates the same exercises.
func (p *Practice) Record() Record {
	exs := make([]arith.Exercise, len(p.Exercises))
	copy(exs, p.Exercises)
	return Record{
		SessionID:   p.ID,
		Seed:        p.Seed,
		Difficulty:  string(p.Difficulty),
		Exercises:   exs,
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,
		TotalSolved: p.SolvedCount(),
	}
}

// Save stores the round in repo.
func (p *Practice) Save(ctx context.Context, repo store.SessionRepo) error {
	rec := store.ArithSessionRecord{
		SessionID:   p.ID,
		Seed:        p.Seed,
		Difficulty:  string(p.Difficulty),
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,
		TotalSolved: p.SolvedCount(),
		Exercises:   make([]store.ArithExerciseRecord, len(p.Exercises)),
	}
	for i, ex := range p.Exercises {
		rec.Exercises[i] = store.ArithExerciseRecord{
			ID:         ex.ID,
			Operation:  string(ex.Operation),
			Difficulty: string(ex.Difficulty),
			Question:   ex.Question,
			Answer:     ex.Answer,
			Timestamp:  ex.Timestamp,
			Solved:     ex.Solved,
			UserAnswer: ex.UserAnswer,
			Correct:    ex.Correct,
		}
	}
	if err := repo.SaveArithSession(ctx, rec); err != nil {
		return fmt.Errorf("save practice %s: %w", p.ID, err)
	}
	return nil
}

// LoadPractice restores a saved round, positioned at its first
// unanswered exercise.
func LoadPractice(ctx context.Context, repo store.SessionRepo, id string, opts ...Option) (*Practice, error) {
	rec, err := repo.GetArithSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("practice session %q not found", id)
	}

	p := &Practice{
		ID:          rec.SessionID,
		Seed:        rec.Seed,
		Difficulty:  lessons.Difficulty(rec.Difficulty),
		CreatedAt:   rec.CreatedAt,
		CompletedAt: rec.CompletedAt,
		Exercises:   make([]arith.Exercise, len(rec.Exercises)),
		opts:        buildOptions(opts),
	}
	for i, ex := range rec.Exercises {
		p.Exercises[i] = arith.Exercise{
			ID:         ex.ID,
			Operation:  arith.Operation(ex.Operation),
			Difficulty: lessons.Difficulty(ex.Difficulty),
			Question:   ex.Question,
			Answer:     ex.Answer,
			Timestamp:  ex.Timestamp,
			Solved:     ex.Solved,
			UserAnswer: ex.UserAnswer,
			Correct:    ex.Correct,
		}
	}
	for i, ex := range p.Exercises {
		if !ex.Solved {
			p.index = i
			break
		}
	}
	return p, nil
}
