package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/app"
	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/screens/quiz"
	"github.com/abhisek/fractiz/internal/store"
)

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	slog.Debug("store opened", "path", dbPath)
	return st, nil
}

// quizDeps builds the quiz services over st. The --count and
// --difficulty flags, when the command has them, override cfg.
func quizDeps(cmd *cobra.Command, st *store.Store) (quiz.Deps, error) {
	count := cfg.Count
	if f := cmd.Flags().Lookup("count"); f != nil && f.Changed {
		count, _ = cmd.Flags().GetInt("count")
	}
	difficulty := cfg.Difficulty
	if f := cmd.Flags().Lookup("difficulty"); f != nil && f.Changed {
		d, err := lessons.ParseDifficulty(f.Value.String())
		if err != nil {
			return quiz.Deps{}, err
		}
		difficulty = d
	}
	if count < 1 {
		return quiz.Deps{}, fmt.Errorf("--count must be positive, got %d", count)
	}

	genCfg := problemgen.DefaultConfig()
	genCfg.Notation = cfg.Style()
	return quiz.Deps{
		Generator:  problemgen.NewGenerator(seedRand(cmd), genCfg),
		Tracker:    progress.NewTracker(st.ProgressRepo()),
		Events:     st.EventRepo(),
		Count:      count,
		Difficulty: difficulty,
	}, nil
}

// seedRand returns a deterministic source when the command has a non-zero
// --seed flag, and nil (runtime entropy) otherwise.
func seedRand(cmd *cobra.Command) problemgen.Rand {
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		if seed, err := cmd.Flags().GetUint64("seed"); err == nil && seed != 0 {
			return problemgen.NewRand(seed)
		}
	}
	return nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	deps, err := quizDeps(cmd, st)
	if err != nil {
		return err
	}
	return app.Run(deps)
}
