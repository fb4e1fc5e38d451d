package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, _ := cmd.Flags().GetInt("recent")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		return printStats(cmd, cmd.OutOrStdout(), progress.NewTracker(st.ProgressRepo()), st.EventRepo(), recent)
	},
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent sessions to show")
}

func printStats(cmd *cobra.Command, out io.Writer, tracker *progress.Tracker, events store.EventRepo, recent int) error {
	ctx := cmd.Context()
	s, err := tracker.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Lecciones completadas: %d/%d\n", s.LessonsCompleted, len(lessons.All()))
	fmt.Fprintf(out, "Ejercicios resueltos:  %d\n", s.ExercisesSolved)
	fmt.Fprintf(out, "Precisión media:       %d%%\n", s.AverageAccuracy)
	fmt.Fprintf(out, "Tiempo total:          %d min\n", s.TotalMinutes)
	if s.LastActivity.IsZero() {
		fmt.Fprintf(out, "Racha:                 %d días\n", s.Streak)
	} else {
		fmt.Fprintf(out, "Racha:                 %d días (última actividad %s, próxima meta %d)\n",
			s.Streak, s.LastActivity.Local().Format("2006-01-02"), progress.NextStreakMilestone(s.Streak))
	}

	acc, err := events.TypeAccuracy(ctx)
	if err != nil {
		return err
	}
	if len(acc) > 0 {
		keys := make([]string, 0, len(acc))
		for k := range acc {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "\nPor tipo de ejercicio:")
		for _, k := range keys {
			a := acc[k]
			fmt.Fprintf(out, "  %-18s %3d/%-3d %3d%%\n",
				problemgen.ExerciseType(k).Label(), a.Correct, a.Attempted, progress.Percent(a.Correct, a.Attempted))
		}
	}

	if recent <= 0 {
		return nil
	}
	sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: recent})
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		fmt.Fprintln(out, "\nSesiones recientes:")
		for _, sess := range sessions {
			fmt.Fprintf(out, "  %s  %-32s %2d/%-2d  %s\n",
				sess.Timestamp.Local().Format("2006-01-02 15:04"), sessionName(sess),
				sess.CorrectAnswers, sess.QuestionsServed,
				(time.Duration(sess.DurationSecs) * time.Second).String())
		}
	}
	return nil
}

// sessionName labels a session by its lesson or kind.
func sessionName(sess store.SessionSummaryRecord) string {
	if sess.Kind == store.KindArith {
		return "Práctica aritmética"
	}
	if l, err := lessons.Get(sess.LessonID); err == nil {
		return l.Title
	}
	return "Quiz libre"
}
