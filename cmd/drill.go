package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/screens/quiz"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Answer a quiz on the plain terminal",
	Long: `Generate and answer fraction questions line by line on stdin.

With --lesson the questions come from that lesson and the result counts
toward its progress; locked lessons are refused as in play. Without it, questions of the --type list (every type
when empty) are mixed into a free drill that only touches the streak.
Answer with the option number or the option text; an empty line skips.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, _ := cmd.Flags().GetString("lesson")
		typeNames, _ := cmd.Flags().GetStringSlice("type")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		deps, err := quizDeps(cmd, st)
		if err != nil {
			return err
		}
		if lessonID != "" {
			if err := ensureUnlocked(cmd.Context(), deps.Tracker, lessonID); err != nil {
				return err
			}
		}
		qs, err := drillQuestions(deps, lessonID, typeNames)
		if err != nil {
			return err
		}
		return runDrill(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), deps, lessonID, qs)
	},
}

func init() {
	drillCmd.Flags().String("lesson", "", "Lesson ID (free drill when empty)")
	drillCmd.Flags().StringSlice("type", nil, "Exercise types for a free drill (e.g. suma,resta)")
	drillCmd.Flags().Int("count", 0, "Number of questions (overrides FRACTIZ_COUNT)")
	drillCmd.Flags().String("difficulty", "", "facil, medio or dificil (overrides FRACTIZ_DIFFICULTY)")
	drillCmd.Flags().Uint64("seed", 0, "Seed for reproducible questions (0 = random)")
}

// drillQuestions generates the questions of a lesson or of a free drill.
func drillQuestions(deps quiz.Deps, lessonID string, typeNames []string) ([]*problemgen.Question, error) {
	if lessonID != "" {
		if _, err := lessons.Get(lessonID); err != nil {
			return nil, err
		}
		return deps.Generator.GenerateForLesson(lessonID, deps.Count, deps.Difficulty)
	}

	bc := problemgen.DefaultBatchConfig()
	bc.Count = deps.Count
	bc.Difficulty = deps.Difficulty
	bc.Types = problemgen.AllExerciseTypes()
	if len(typeNames) > 0 {
		bc.Types = bc.Types[:0:0]
		for _, name := range typeNames {
			t, err := problemgen.ParseExerciseType(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			bc.Types = append(bc.Types, t)
		}
	}
	return deps.Generator.GenerateBatch(bc)
}

// runDrill plays qs over in/out and stores the result like the
// interactive quiz does.
func runDrill(ctx context.Context, in io.Reader, out io.Writer, deps quiz.Deps, lessonID string, qs []*problemgen.Question) error {
	q, err := session.NewQuiz(ctx, lessonID, qs, session.WithEvents(deps.Events))
	if err != nil {
		return err
	}

	if lessonID != "" {
		l, _ := lessons.Get(lessonID)
		fmt.Fprintf(out, "Lección %d: %s (%s)\n\n", l.Number, l.Title, deps.Difficulty.Label())
	} else {
		fmt.Fprintf(out, "Quiz libre (%s)\n\n", deps.Difficulty.Label())
	}

	scanner := bufio.NewScanner(in)
	for cur := q.Current(); cur != nil; cur = q.Current() {
		fmt.Fprintf(out, "── Pregunta %d/%d ──\n", q.Index()+1, len(q.Questions))
		fmt.Fprintln(out, cur.Text)
		for j, c := range cur.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(out, "\nTu respuesta: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(entrada cerrada)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintln(out, "(omitida)")
			fmt.Fprintln(out)
			// Skipped questions are left out of the totals.
			q.Next()
			continue
		}

		res, err := q.Answer(ctx, answer)
		if err != nil {
			return err
		}
		if res.Correct {
			lipgloss.Fprintln(out, theme.Correct.Render("✓ ¡Correcto!"))
		} else {
			lipgloss.Fprintln(out, theme.Incorrect.Render("✗ Incorrecto.")+" La respuesta es "+cur.Answer)
		}
		if cur.Explanation != "" {
			fmt.Fprintf(out, "Explicación: %s\n", cur.Explanation)
		}
		fmt.Fprintln(out)
		q.Next()
	}

	sum, err := q.Finish(ctx)
	if err != nil {
		return err
	}
	outcome, err := session.RecordProgress(ctx, deps.Tracker, q, sum)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "── Resultado: %d/%d correctas (%d%%) ──\n", sum.TotalCorrect, sum.TotalQuestions, sum.Percent())
	if outcome.Passed {
		fmt.Fprintln(out, "¡Lección completada!")
	}
	fmt.Fprintf(out, "Racha: %d días\n", outcome.Streak)
	return nil
}
