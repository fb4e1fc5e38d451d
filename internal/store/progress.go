package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db *sql.DB
}

const progressColumns = `lesson_id, status, exercises_done, exercises_correct, time_spent_ms,
	last_access_ms, attempts, accuracy, best_accuracy`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (LessonProgressRecord, error) {
	var (
		rec        LessonProgressRecord
		spent, acc int64
	)
	err := row.Scan(&rec.LessonID, &rec.Status, &rec.ExercisesDone, &rec.ExercisesCorrect,
		&spent, &acc, &rec.Attempts, &rec.Accuracy, &rec.BestAccuracy)
	rec.TimeSpent = time.Duration(spent) * time.Millisecond
	rec.LastAccess = fromMillis(acc)
	return rec, err
}

func (r *progressRepo) GetProgress(ctx context.Context, lessonID string) (*LessonProgressRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+progressColumns+` FROM lesson_progress WHERE lesson_id = ?`, lessonID)
	rec, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress %q: %w", lessonID, err)
	}
	return &rec, nil
}

func (r *progressRepo) ListProgress(ctx context.Context) ([]LessonProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+progressColumns+` FROM lesson_progress ORDER BY lesson_id`)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []LessonProgressRecord
	for rows.Next() {
		rec, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *progressRepo) SaveProgress(ctx context.Context, rec LessonProgressRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO lesson_progress (`+progressColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.LessonID, rec.Status, rec.ExercisesDone, rec.ExercisesCorrect,
		rec.TimeSpent.Milliseconds(), toMillis(rec.LastAccess), rec.Attempts,
		rec.Accuracy, rec.BestAccuracy)
	if err != nil {
		return fmt.Errorf("save progress %q: %w", rec.LessonID, err)
	}
	return nil
}

func (r *progressRepo) DeleteProgress(ctx context.Context, lessonID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lesson_progress WHERE lesson_id = ?`, lessonID); err != nil {
		return fmt.Errorf("delete progress %q: %w", lessonID, err)
	}
	return nil
}

func (r *progressRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_progress`); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_streak`); err != nil {
		return fmt.Errorf("delete streak: %w", err)
	}
	return tx.Commit()
}

func (r *progressRepo) GetStreak(ctx context.Context) (StreakRecord, error) {
	var (
		rec StreakRecord
		ms  int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT streak, last_activity_ms FROM user_streak WHERE id = 1`).Scan(&rec.Streak, &ms)
	if errors.Is(err, sql.ErrNoRows) {
		return StreakRecord{}, nil
	}
	if err != nil {
		return StreakRecord{}, fmt.Errorf("query streak: %w", err)
	}
	rec.LastActivity = fromMillis(ms)
	return rec, nil
}

func (r *progressRepo) SaveStreak(ctx context.Context, rec StreakRecord) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO user_streak (id, streak, last_activity_ms) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET streak = excluded.streak, last_activity_ms = excluded.last_activity_ms`,
		rec.Streak, toMillis(rec.LastActivity))
	if err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
