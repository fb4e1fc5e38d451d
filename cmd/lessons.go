package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the lessons with the learner's status",
	RunE: func(cmd *cobra.Command, args []string) error {
		available, _ := cmd.Flags().GetBool("available")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		states, err := progress.NewTracker(st.ProgressRepo()).Overview(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%2s  %-28s  %-36s  %-12s  %8s  %s\n",
			"#", "ID", "Título", "Estado", "Precisión", "Requisitos")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		shown := 0
		for _, s := range states {
			if available && (s.Status == progress.StatusLocked || s.Status == progress.StatusCompleted) {
				continue
			}
			title := s.Lesson.Title
			if r := []rune(title); len(r) > 36 {
				title = string(r[:33]) + "..."
			}
			acc := "-"
			if s.Progress != nil && s.Progress.ExercisesDone > 0 {
				acc = fmt.Sprintf("%d%%", s.Progress.Accuracy)
			}
			fmt.Fprintf(out, "%2d  %-28s  %-36s  %-12s  %8s  %s\n",
				s.Lesson.Number, s.Lesson.ID, title, s.Status.Label(), acc,
				prerequisiteList(s.Lesson.ID))
			shown++
		}

		fmt.Fprintf(out, "\n%d lecciones\n", shown)
		return nil
	},
}

func init() {
	lessonsCmd.Flags().Bool("available", false, "Only lessons that are unlocked and not yet completed")
}

func prerequisiteList(id string) string {
	pre := lessons.Prerequisites(id)
	if len(pre) == 0 {
		return "-"
	}
	ids := make([]string, len(pre))
	for i, l := range pre {
		ids[i] = l.ID
	}
	return strings.Join(ids, ", ")
}
