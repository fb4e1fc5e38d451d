package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	SessionID string // only events of this session
}

// LessonProgressRecord is the stored progress of one lesson.
type LessonProgressRecord struct {
	LessonID         string
	Status           string
	ExercisesDone    int
	ExercisesCorrect int
	TimeSpent        time.Duration
	LastAccess       time.Time
	Attempts         int
	Accuracy         int // percent, 0-100
	BestAccuracy     int // percent, 0-100
}

// StreakRecord is the learner's daily streak.
type StreakRecord struct {
	Streak       int
	LastActivity time.Time // zero if never active
}

// ProgressRepo stores lesson progress and the daily streak.
type ProgressRepo interface {
	// GetProgress returns a lesson's progress, or nil if it has none.
	GetProgress(ctx context.Context, lessonID string) (*LessonProgressRecord, error)

	// ListProgress returns every lesson with progress, ordered by lesson ID.
	ListProgress(ctx context.Context) ([]LessonProgressRecord, error)

	// SaveProgress inserts or replaces a lesson's progress.
	SaveProgress(ctx context.Context, rec LessonProgressRecord) error

	// DeleteProgress removes a lesson's progress. Missing rows are not an error.
	DeleteProgress(ctx context.Context, lessonID string) error

	// DeleteAll removes all lesson progress and resets the streak.
	DeleteAll(ctx context.Context) error

	GetStreak(ctx context.Context) (StreakRecord, error)
	SaveStreak(ctx context.Context, rec StreakRecord) error
}

// ArithExerciseRecord is one stored arithmetic exercise.
type ArithExerciseRecord struct {
	ID         string
	Operation  string
	Difficulty string
	Question   string
	Answer     int
	Timestamp  time.Time
	Solved     bool
	UserAnswer *int
	Correct    *bool
}

// ArithSessionRecord is a stored arithmetic practice session.
type ArithSessionRecord struct {
	SessionID   string
	Seed        int64
	Difficulty  string
	CreatedAt   time.Time
	CompletedAt *time.Time
	TotalSolved int
	Exercises   []ArithExerciseRecord
}

// SessionRepo stores arithmetic practice sessions.
type SessionRepo interface {
	// SaveArithSession inserts or replaces a session and its exercises.
	SaveArithSession(ctx context.Context, rec ArithSessionRecord) error

	// GetArithSession returns a session with its exercises, or nil if unknown.
	GetArithSession(ctx context.Context, sessionID string) (*ArithSessionRecord, error)

	// ListArithSessions returns sessions newest first, without exercises.
	ListArithSessions(ctx context.Context, limit int) ([]ArithSessionRecord, error)
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID     string
	LessonID      string
	ExerciseType  string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// Session actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// Session kinds.
const (
	KindQuiz  = "quiz"
	KindArith = "arith"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID       string
	Kind            string
	Action          string
	LessonID        string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord is a completed session read back from its end event.
type SessionSummaryRecord struct {
	SessionID       string
	Kind            string
	LessonID        string
	Timestamp       time.Time
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// TypeAccuracy is the answer tally for one exercise type.
type TypeAccuracy struct {
	Attempted int
	Correct   int
}

// Ratio returns Correct/Attempted, or 0 with no attempts.
func (a TypeAccuracy) Ratio() float64 {
	if a.Attempted == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempted)
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryAnswerEvents returns answer events newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error)

	// QuerySessionSummaries returns ended sessions newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// TypeAccuracy tallies answers per exercise type.
	TypeAccuracy(ctx context.Context) (map[string]TypeAccuracy, error)
}
