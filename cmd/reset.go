package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long: `Clear lesson progress and the streak. With --lesson only that lesson
is cleared. The answer and session history is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, _ := cmd.Flags().GetString("lesson")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "todo el progreso y la racha"
		if lessonID != "" {
			l, err := lessons.Get(lessonID)
			if err != nil {
				return err
			}
			what = fmt.Sprintf("el progreso de %q", l.Title)
		}

		out := cmd.OutOrStdout()
		if !yes {
			fmt.Fprintf(out, "¿Borrar %s? [s/N] ", what)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Scan()
			if a := strings.ToLower(strings.TrimSpace(scanner.Text())); a != "s" && a != "si" && a != "sí" {
				fmt.Fprintln(out, "Cancelado.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tracker := progress.NewTracker(st.ProgressRepo())
		if lessonID != "" {
			err = tracker.Reset(cmd.Context(), lessonID)
		} else {
			err = tracker.ResetAll(cmd.Context())
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Borrado %s.\n", what)
		return nil
	},
}

func init() {
	resetCmd.Flags().String("lesson", "", "Only reset this lesson")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
