package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared by
// every event table, so answers and session boundaries can be ordered
// against each other. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter wraps the global_sequence row created by the initial
// migration.
func newSequenceCounter(db *sql.DB) *sequenceCounter {
	return &sequenceCounter{db: db}
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo backed by SQL tables and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO answer_events
		(sequence, timestamp_ms, session_id, lesson_id, exercise_type, question_text,
		 correct_answer, learner_answer, correct, time_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, toMillis(r.now()), data.SessionID, data.LessonID, data.ExerciseType,
		data.QuestionText, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp_ms, session_id, kind, action, lesson_id,
		 questions_served, correct_answers, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, toMillis(r.now()), data.SessionID, data.Kind, data.Action, data.LessonID,
		data.QuestionsServed, data.CorrectAnswers, data.DurationSecs)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEventRecord, error) {
	where, args := opts.filter(nil)
	query := `SELECT sequence, timestamp_ms, session_id, lesson_id, exercise_type, question_text,
		correct_answer, learner_answer, correct, time_ms
		FROM answer_events` + where + ` ORDER BY sequence DESC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var records []AnswerEventRecord
	for rows.Next() {
		var (
			rec AnswerEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.LessonID, &rec.ExerciseType,
			&rec.QuestionText, &rec.CorrectAnswer, &rec.LearnerAnswer, &rec.Correct, &rec.TimeMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := opts.filter([]string{"action = ?"})
	args = append([]any{SessionEnd}, args...)
	query := `SELECT session_id, kind, lesson_id, timestamp_ms, questions_served,
		correct_answers, duration_secs
		FROM session_events` + where + ` ORDER BY sequence DESC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var (
			rec SessionSummaryRecord
			ts  int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.Kind, &rec.LessonID, &ts,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) TypeAccuracy(ctx context.Context) (map[string]TypeAccuracy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT exercise_type, COUNT(*), COALESCE(SUM(correct), 0)
		FROM answer_events GROUP BY exercise_type`)
	if err != nil {
		return nil, fmt.Errorf("query type accuracy: %w", err)
	}
	defer rows.Close()

	out := make(map[string]TypeAccuracy)
	for rows.Next() {
		var (
			typ string
			acc TypeAccuracy
		)
		if err := rows.Scan(&typ, &acc.Attempted, &acc.Correct); err != nil {
			return nil, fmt.Errorf("scan type accuracy: %w", err)
		}
		out[typ] = acc
	}
	return out, rows.Err()
}

// filter builds a WHERE clause from opts, after any fixed conditions
// whose arguments the caller prepends.
func (o QueryOpts) filter(conds []string) (string, []any) {
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp_ms >= ?")
		args = append(args, toMillis(o.From))
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp_ms <= ?")
		args = append(args, toMillis(o.To))
	}
	if o.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, o.SessionID)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", o.Limit)
}
