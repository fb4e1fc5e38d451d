package progress

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/store"
)

// Tracker records lesson progress through a ProgressRepo.
type Tracker struct {
	repo store.ProgressRepo
	now  func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used for access times and streak days.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a Tracker over repo.
func NewTracker(repo store.ProgressRepo, opts ...Option) *Tracker {
	t := &Tracker{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get returns a lesson's progress, or nil if it was never started.
func (t *Tracker) Get(ctx context.Context, lessonID string) (*Progress, error) {
	rec, err := t.repo.GetProgress(ctx, lessonID)
	if err != nil || rec == nil {
		return nil, err
	}
	p := fromRecord(*rec)
	return &p, nil
}

// Start begins or resumes a lesson. A new lesson starts in progress with
// one attempt; resuming bumps the attempt count.
func (t *Tracker) Start(ctx context.Context, lessonID string) (Progress, error) {
	if _, err := lessons.Get(lessonID); err != nil {
		return Progress{}, fmt.Errorf("%w: %q", ErrUnknownLesson, lessonID)
	}
	cur, err := t.Get(ctx, lessonID)
	if err != nil {
		return Progress{}, err
	}

	var p Progress
	if cur == nil {
		p = Progress{LessonID: lessonID, Status: StatusInProgress, Attempts: 1}
	} else {
		p = *cur
		p.Attempts++
	}
	p.LastAccess = t.now()

	if err := t.repo.SaveProgress(ctx, p.toRecord()); err != nil {
		return Progress{}, err
	}
	slog.Debug("lesson started", "lesson", lessonID, "attempts", p.Attempts)
	return p, nil
}

// RecordExercise adds one answered exercise to a started lesson.
func (t *Tracker) RecordExercise(ctx context.Context, lessonID string, correct bool, spent time.Duration) (Progress, error) {
	cur, err := t.started(ctx, lessonID)
	if err != nil {
		return Progress{}, err
	}
	cur.record(correct, spent)
	cur.LastAccess = t.now()

	if err := t.repo.SaveProgress(ctx, cur.toRecord()); err != nil {
		return Progress{}, err
	}
	return *cur, nil
}

// Complete marks a started lesson as completed.
func (t *Tracker) Complete(ctx context.Context, lessonID string) error {
	cur, err := t.started(ctx, lessonID)
	if err != nil {
		return err
	}
	cur.Status = StatusCompleted
	cur.LastAccess = t.now()
	return t.repo.SaveProgress(ctx, cur.toRecord())
}

// RecordExam stores an exam result. An existing lesson keeps its previous
// counts unless the new accuracy beats its best; a lesson never started is
// started first and takes the result as is.
func (t *Tracker) RecordExam(ctx context.Context, lessonID string, total, correct int) (Progress, error) {
	if total <= 0 || correct < 0 || correct > total {
		return Progress{}, fmt.Errorf("invalid exam result %d/%d", correct, total)
	}
	cur, err := t.Get(ctx, lessonID)
	if err != nil {
		return Progress{}, err
	}

	accuracy := Percent(correct, total)
	var p Progress
	if cur == nil {
		if p, err = t.Start(ctx, lessonID); err != nil {
			return Progress{}, err
		}
		p.ExercisesDone, p.ExercisesCorrect = total, correct
		p.Accuracy, p.BestAccuracy = accuracy, accuracy
	} else {
		p = *cur
		if accuracy > p.BestAccuracy {
			p.ExercisesDone, p.ExercisesCorrect = total, correct
			p.Accuracy, p.BestAccuracy = accuracy, accuracy
		}
		p.LastAccess = t.now()
	}

	if err := t.repo.SaveProgress(ctx, p.toRecord()); err != nil {
		return Progress{}, err
	}
	return p, nil
}

// Reset forgets one lesson's progress.
func (t *Tracker) Reset(ctx context.Context, lessonID string) error {
	return t.repo.DeleteProgress(ctx, lessonID)
}

// ResetAll forgets every lesson's progress and the streak.
func (t *Tracker) ResetAll(ctx context.Context) error {
	return t.repo.DeleteAll(ctx)
}

// TouchStreak records activity today and returns the streak. Activity on
// the same calendar day keeps the streak, the following day extends it,
// and a longer gap restarts it at 1.
func (t *Tracker) TouchStreak(ctx context.Context) (int, error) {
	st, err := t.repo.GetStreak(ctx)
	if err != nil {
		return 0, err
	}
	now := t.now()

	switch days := daysBetween(st.LastActivity, now); {
	case st.LastActivity.IsZero():
		st.Streak = 1
	case days == 0:
		if st.Streak == 0 {
			st.Streak = 1
		}
	case days == 1:
		st.Streak++
	default:
		st.Streak = 1
	}
	st.LastActivity = now

	if err := t.repo.SaveStreak(ctx, st); err != nil {
		return 0, err
	}
	return st.Streak, nil
}

// daysBetween counts calendar days from a to b in b's location.
func daysBetween(a, b time.Time) int {
	a = a.In(b.Location())
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Stats aggregates every lesson's progress with the streak.
func (t *Tracker) Stats(ctx context.Context) (Stats, error) {
	recs, err := t.repo.ListProgress(ctx)
	if err != nil {
		return Stats{}, err
	}
	st, err := t.repo.GetStreak(ctx)
	if err != nil {
		return Stats{}, err
	}

	out := Stats{Streak: st.Streak, LastActivity: st.LastActivity}
	var correct int
	var spent time.Duration
	for _, rec := range recs {
		out.ExercisesSolved += rec.ExercisesDone
		correct += rec.ExercisesCorrect
		spent += rec.TimeSpent
		if Status(rec.Status) == StatusCompleted {
			out.LessonsCompleted++
		}
		if rec.LastAccess.After(out.LastActivity) {
			out.LastActivity = rec.LastAccess
		}
	}
	out.AverageAccuracy = Percent(correct, out.ExercisesSolved)
	out.TotalMinutes = int(spent.Round(time.Minute) / time.Minute)
	return out, nil
}

// Completed returns the set of completed lesson IDs.
func (t *Tracker) Completed(ctx context.Context) (map[string]bool, error) {
	recs, err := t.repo.ListProgress(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool)
	for _, rec := range recs {
		if Status(rec.Status) == StatusCompleted {
			done[rec.LessonID] = true
		}
	}
	return done, nil
}

// Status reports a lesson's state: completado once completed, locked while
// any prerequisite is incomplete, otherwise its stored status or nuevo.
func (t *Tracker) Status(ctx context.Context, lessonID string) (Status, error) {
	if _, err := lessons.Get(lessonID); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLesson, lessonID)
	}
	done, err := t.Completed(ctx)
	if err != nil {
		return "", err
	}
	cur, err := t.Get(ctx, lessonID)
	if err != nil {
		return "", err
	}
	return statusOf(lessonID, cur, done), nil
}

// LessonState pairs a catalog lesson with the learner's state in it.
type LessonState struct {
	Lesson   lessons.Lesson
	Status   Status
	Progress *Progress
}

// Overview returns every catalog lesson with its status, in catalog order.
func (t *Tracker) Overview(ctx context.Context) ([]LessonState, error) {
	recs, err := t.repo.ListProgress(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Progress, len(recs))
	done := make(map[string]bool)
	for _, rec := range recs {
		p := fromRecord(rec)
		byID[rec.LessonID] = &p
		if p.Status == StatusCompleted {
			done[rec.LessonID] = true
		}
	}

	all := lessons.All()
	out := make([]LessonState, len(all))
	for i, l := range all {
		out[i] = LessonState{Lesson: l, Status: statusOf(l.ID, byID[l.ID], done), Progress: byID[l.ID]}
	}
	return out, nil
}

// statusOf never relocks a completed lesson.
func statusOf(lessonID string, cur *Progress, done map[string]bool) Status {
	if cur != nil && cur.Status == StatusCompleted {
		return StatusCompleted
	}
	if !lessons.IsUnlocked(lessonID, done) {
		return StatusLocked
	}
	if cur == nil {
		return StatusNew
	}
	return cur.Status
}

func (t *Tracker) started(ctx context.Context, lessonID string) (*Progress, error) {
	cur, err := t.Get(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotStarted, lessonID)
	}
	return cur, nil
}
