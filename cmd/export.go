package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a question batch as JSON",
	Long: `Generate a batch of questions and print it as JSON. The output is
checked against the batch schema before it is written. No database is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		typeNames, _ := cmd.Flags().GetStringSlice("type")
		lessonID, _ := cmd.Flags().GetString("lesson")
		outPath, _ := cmd.Flags().GetString("out")
		noShuffle, _ := cmd.Flags().GetBool("no-shuffle")
		seed, _ := cmd.Flags().GetUint64("seed")

		bc := problemgen.DefaultBatchConfig()
		bc.Count = cfg.Count
		bc.Difficulty = cfg.Difficulty
		if cmd.Flags().Changed("count") {
			bc.Count, _ = cmd.Flags().GetInt("count")
		}
		if cmd.Flags().Changed("difficulty") {
			v, _ := cmd.Flags().GetString("difficulty")
			d, err := lessons.ParseDifficulty(v)
			if err != nil {
				return err
			}
			bc.Difficulty = d
		}
		bc.ShuffleQuestions = !noShuffle
		bc.ShuffleOptions = !noShuffle

		switch {
		case lessonID != "" && len(typeNames) > 0:
			return fmt.Errorf("use --lesson or --type, not both")
		case lessonID != "":
			if _, err := lessons.Get(lessonID); err != nil {
				return err
			}
			bc.Types = problemgen.TypesForLesson(lessonID)
		case len(typeNames) > 0:
			bc.Types = nil
			for _, name := range typeNames {
				t, err := problemgen.ParseExerciseType(strings.TrimSpace(name))
				if err != nil {
					return err
				}
				bc.Types = append(bc.Types, t)
			}
		}

		genCfg := problemgen.DefaultConfig()
		genCfg.Notation = cfg.Style()
		batch := problemgen.Batch{Difficulty: string(bc.Difficulty)}
		var rng problemgen.Rand
		if seed != 0 {
			rng = problemgen.NewRand(seed)
			batch.Seed = &seed
		}

		qs, err := problemgen.NewGenerator(rng, genCfg).GenerateBatch(bc)
		if err != nil {
			return err
		}
		batch.Questions = qs
		raw, err := problemgen.MarshalBatch(batch)
		if err != nil {
			return err
		}

		if outPath == "" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return err
		}
		if err := os.WriteFile(outPath, append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		slog.Info("batch exported", "path", outPath, "questions", len(qs))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringSlice("type", nil, "Exercise types to cycle (default: the four conversion types)")
	exportCmd.Flags().String("lesson", "", "Use the exercise types of this lesson")
	exportCmd.Flags().Int("count", 0, "Number of questions (overrides FRACTIZ_COUNT)")
	exportCmd.Flags().String("difficulty", "", "facil, medio or dificil (overrides FRACTIZ_DIFFICULTY)")
	exportCmd.Flags().Uint64("seed", 0, "Seed for a reproducible batch (0 = random)")
	exportCmd.Flags().Bool("no-shuffle", false, "Keep questions and options in generation order")
	exportCmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")
}
