package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) SaveArithSession(ctx context.Context, rec ArithSessionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save session: %w", err)
	}
	defer tx.Rollback()

	var completed sql.NullInt64
	if rec.CompletedAt != nil {
		completed = sql.NullInt64{Int64: toMillis(*rec.CompletedAt), Valid: true}
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO arith_sessions
		(id, seed, difficulty, created_at_ms, completed_at_ms, total_solved)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET completed_at_ms = excluded.completed_at_ms,
			total_solved = excluded.total_solved`,
		rec.SessionID, rec.Seed, rec.Difficulty, toMillis(rec.CreatedAt), completed, rec.TotalSolved)
	if err != nil {
		return fmt.Errorf("save session %q: %w", rec.SessionID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM arith_exercises WHERE session_id = ?`, rec.SessionID); err != nil {
		return fmt.Errorf("clear exercises: %w", err)
	}
	for i, ex := range rec.Exercises {
		var (
			userAnswer sql.NullInt64
			correct    sql.NullBool
		)
		if ex.UserAnswer != nil {
			userAnswer = sql.NullInt64{Int64: int64(*ex.UserAnswer), Valid: true}
		}
		if ex.Correct != nil {
			correct = sql.NullBool{Bool: *ex.Correct, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO arith_exercises
			(session_id, position, exercise_id, operation, difficulty, question, answer,
			 created_at_ms, solved, user_answer, correct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.SessionID, i, ex.ID, ex.Operation, ex.Difficulty, ex.Question, ex.Answer,
			toMillis(ex.Timestamp), ex.Solved, userAnswer, correct)
		if err != nil {
			return fmt.Errorf("save exercise %q: %w", ex.ID, err)
		}
	}
	return tx.Commit()
}

func (r *sessionRepo) GetArithSession(ctx context.Context, sessionID string) (*ArithSessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, seed, difficulty, created_at_ms, completed_at_ms, total_solved
		FROM arith_sessions WHERE id = ?`, sessionID)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session %q: %w", sessionID, err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT exercise_id, operation, difficulty, question, answer,
		created_at_ms, solved, user_answer, correct
		FROM arith_exercises WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ex         ArithExerciseRecord
			ts         int64
			userAnswer sql.NullInt64
			correct    sql.NullBool
		)
		if err := rows.Scan(&ex.ID, &ex.Operation, &ex.Difficulty, &ex.Question, &ex.Answer,
			&ts, &ex.Solved, &userAnswer, &correct); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		ex.Timestamp = fromMillis(ts)
		if userAnswer.Valid {
			v := int(userAnswer.Int64)
			ex.UserAnswer = &v
		}
		if correct.Valid {
			v := correct.Bool
			ex.Correct = &v
		}
		rec.Exercises = append(rec.Exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sessionRepo) ListArithSessions(ctx context.Context, limit int) ([]ArithSessionRecord, error) {
	query := `SELECT id, seed, difficulty, created_at_ms, completed_at_ms, total_solved
		FROM arith_sessions ORDER BY created_at_ms DESC, id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []ArithSessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanSession(row rowScanner) (ArithSessionRecord, error) {
	var (
		rec       ArithSessionRecord
		created   int64
		completed sql.NullInt64
	)
	err := row.Scan(&rec.SessionID, &rec.Seed, &rec.Difficulty, &created, &completed, &rec.TotalSolved)
	rec.CreatedAt = fromMillis(created)
	if completed.Valid {
		t := fromMillis(completed.Int64)
		rec.CompletedAt = &t
	}
	return rec, err
}
