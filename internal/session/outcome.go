package session

import (
	"context"
	"fmt"

	"github.com/abhisek/fractiz/internal/progress"
)

// Outcome is what a finished quiz changed in the learner's progress.
type Outcome struct {
	Passed    bool
	Progress  progress.Progress
	Streak    int
	Milestone bool
}

// RecordProgress applies a finished quiz to t: every answer counts toward
// the lesson, a score of progress.PassPercent or more completes it, and
// the daily streak is touched. Free drills only touch the streak.
func RecordProgress(ctx context.Context, t *progress.Tracker, q *Quiz, sum *Summary) (Outcome, error) {
	var out Outcome
	if q.LessonID != "" && len(q.Results) > 0 {
		p, err := t.Start(ctx, q.LessonID)
		if err != nil {
			return out, err
		}
		for _, r := range q.Results {
			if p, err = t.RecordExercise(ctx, q.LessonID, r.Correct, r.Elapsed); err != nil {
				return out, fmt.Errorf("record %s: %w", r.Question.ID, err)
			}
		}
		if sum.Percent() >= progress.PassPercent {
			if err := t.Complete(ctx, q.LessonID); err != nil {
				return out, err
			}
			p.Status = progress.StatusCompleted
			out.Passed = true
		}
		out.Progress = p
	}

	before, err := t.Stats(ctx)
	if err != nil {
		return out, err
	}
	if out.Streak, err = t.TouchStreak(ctx); err != nil {
		return out, err
	}
	out.Milestone = out.Streak > before.Streak && isMilestone(out.Streak)
	return out, nil
}

func isMilestone(streak int) bool {
	return streak > 0 && progress.NextStreakMilestone(streak-1) == streak
}
