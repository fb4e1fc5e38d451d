package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/app"
	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a lesson quiz in the interactive app",
	Long: `Open the interactive app. With --lesson the quiz for that lesson starts
right away; leaving its summary returns to the lesson list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, _ := cmd.Flags().GetString("lesson")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		deps, err := quizDeps(cmd, st)
		if err != nil {
			return err
		}
		if lessonID == "" {
			return app.Run(deps)
		}

		lesson, err := lessons.Get(lessonID)
		if err != nil {
			return err
		}
		if err := ensureUnlocked(cmd.Context(), deps.Tracker, lesson.ID); err != nil {
			return err
		}
		return app.RunLesson(deps, lesson)
	},
}

// ensureUnlocked refuses a lesson whose prerequisites are incomplete.
func ensureUnlocked(ctx context.Context, tr *progress.Tracker, lessonID string) error {
	status, err := tr.Status(ctx, lessonID)
	if err != nil {
		return err
	}
	if status == progress.StatusLocked {
		return fmt.Errorf("lesson %q is locked: complete its prerequisites first", lessonID)
	}
	return nil
}

func init() {
	playCmd.Flags().String("lesson", "", "Lesson ID to start (see `fractiz lessons`)")
	playCmd.Flags().Int("count", 0, "Questions per quiz (overrides FRACTIZ_COUNT)")
	playCmd.Flags().String("difficulty", "", "facil, medio or dificil (overrides FRACTIZ_DIFFICULTY)")
	playCmd.Flags().Uint64("seed", 0, "Seed for reproducible questions (0 = random)")
}
