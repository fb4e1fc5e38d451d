// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/lessons"
)

// Environment variables read by Load.
const (
	EnvDB         = "FRACTIZ_DB"
	EnvDifficulty = "FRACTIZ_DIFFICULTY"
	EnvCount      = "FRACTIZ_COUNT"
	EnvLogLevel   = "FRACTIZ_LOG_LEVEL"
	EnvNotation   = "FRACTIZ_NOTATION"
)

// Config holds the settings shared by every command. Flags override it.
type Config struct {
	// DBPath is empty when the store should pick its default location.
	DBPath     string
	Difficulty lessons.Difficulty `validate:"required,oneof=facil medio dificil"`
	Count      int                `validate:"min=1,max=200"`
	LogLevel   string             `validate:"required,oneof=debug info warn error"`
	Notation   string             `validate:"required,oneof=simple unicode latex"`
}

var validate = validator.New()

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Difficulty: lessons.DifficultyMedium,
		Count:      10,
		LogLevel:   "warn",
		Notation:   "simple",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// builds and validates a Config. Missing files are skipped.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the FRACTIZ_* variables over Default.
func FromEnv() (Config, error) {
	cfg := Default()
	cfg.DBPath = os.Getenv(EnvDB)

	if v := os.Getenv(EnvDifficulty); v != "" {
		d, err := lessons.ParseDifficulty(strings.ToLower(strings.TrimSpace(v)))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDifficulty, err)
		}
		cfg.Difficulty = d
	}
	if v := os.Getenv(EnvCount); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s=%q is not a number", EnvCount, v)
		}
		cfg.Count = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvNotation); v != "" {
		cfg.Notation = strings.ToLower(strings.TrimSpace(v))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Style returns the configured fraction notation.
func (c Config) Style() fraction.Style {
	s, _ := fraction.ParseStyle(c.Notation)
	return s
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text logger writing to w at the given level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// SetupLogging installs a stderr logger for cfg as the slog default.
func SetupLogging(cfg Config) *slog.Logger {
	logger := NewLogger(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	return logger
}
