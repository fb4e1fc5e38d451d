package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/store"
)

// cfg is loaded once per invocation by the root pre-run hook.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "fractiz",
	Short: "Práctica de fracciones en la terminal",
	Long:  "Fractiz: lecciones y ejercicios de fracciones (simplificación, números mixtos, comparación y operaciones).",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		var files []string
		if envFile != "" {
			files = append(files, envFile)
		}
		loaded, err := config.Load(files...)
		if err != nil {
			return err
		}
		cfg = loaded
		config.SetupLogging(cfg)
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FRACTIZ_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default .env)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(arithCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(fracCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FRACTIZ_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	p, _ := cmd.Flags().GetString("db")
	if p == "" {
		p = cfg.DBPath
	}
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
