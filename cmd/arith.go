package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/arith"
	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

var arithCmd = &cobra.Command{
	Use:   "arith",
	Short: "Practice whole-number arithmetic",
	Long: `Solve a round of seeded addition, subtraction, multiplication and
division exercises. The seed is printed at the end; passing it back with
--seed replays the same exercises. --resume continues a saved round.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		resume, _ := cmd.Flags().GetString("resume")
		count := cfg.Count
		if cmd.Flags().Changed("count") {
			count, _ = cmd.Flags().GetInt("count")
		}
		difficulty := cfg.Difficulty
		if cmd.Flags().Changed("difficulty") {
			v, _ := cmd.Flags().GetString("difficulty")
			d, err := lessons.ParseDifficulty(v)
			if err != nil {
				return err
			}
			difficulty = d
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		var p *session.Practice
		if resume != "" {
			p, err = session.LoadPractice(ctx, st.SessionRepo(), resume, session.WithEvents(st.EventRepo()))
		} else {
			p, err = session.NewPractice(ctx, arith.New(seed), count, difficulty, session.WithEvents(st.EventRepo()))
		}
		if err != nil {
			return err
		}
		return runArith(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), p, st.SessionRepo())
	},
}

func init() {
	arithCmd.Flags().Int64("seed", 0, "Seed to replay (0 = new round)")
	arithCmd.Flags().String("resume", "", "Session ID of a saved round to continue")
	arithCmd.Flags().Int("count", 0, "Number of exercises (overrides FRACTIZ_COUNT)")
	arithCmd.Flags().String("difficulty", "", "facil, medio or dificil (overrides FRACTIZ_DIFFICULTY)")
	arithCmd.MarkFlagsMutuallyExclusive("seed", "resume")
}

// runArith walks the unanswered exercises of p, then saves the round.
// An empty line skips an exercise; "q" stops early and keeps the round
// for --resume.
func runArith(ctx context.Context, in io.Reader, out io.Writer, p *session.Practice, repo store.SessionRepo) error {
	fmt.Fprintf(out, "Práctica aritmética (%s), %d ejercicios\n\n", p.Difficulty.Label(), p.Total())

	scanner := bufio.NewScanner(in)
loop:
	for {
		ex := p.Current()
		if ex == nil {
			break
		}
		if !ex.Solved {
			fmt.Fprintf(out, "[%d/%d] %s ", p.Index()+1, p.Total(), ex.Question)
			if !scanner.Scan() {
				fmt.Fprintln(out)
				break
			}
			input := strings.TrimSpace(scanner.Text())
			switch input {
			case "":
			case "q":
				break loop
			default:
				answer, err := strconv.Atoi(input)
				if err != nil {
					fmt.Fprintln(out, "Escribe un número entero.")
					continue
				}
				ok, err := p.Submit(ctx, answer)
				if err != nil {
					return err
				}
				if ok {
					lipgloss.Fprintln(out, theme.Correct.Render("✓"))
				} else {
					lipgloss.Fprintln(out, theme.Incorrect.Render("✗")+" "+strconv.Itoa(ex.Answer))
				}
			}
		}
		if !p.Next() {
			break
		}
	}

	if err := p.Save(ctx, repo); err != nil {
		return err
	}
	if err := p.Finish(ctx); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nResueltos: %d/%d  Aciertos: %d (%d%%)\n", p.SolvedCount(), p.Total(), p.CorrectCount(), p.Accuracy())
	fmt.Fprintf(out, "Semilla: %d\n", p.Seed)
	if !p.IsComplete() {
		fmt.Fprintf(out, "Continúa con: fractiz arith --resume %s\n", p.ID)
	}
	return nil
}
