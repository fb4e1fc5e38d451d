package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/lessons"
)

// clearEnv blanks every FRACTIZ_* variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvDifficulty, EnvCount, EnvLogLevel, EnvNotation} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, fraction.StyleSimple, cfg.Style())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDB, "/tmp/x.db")
	t.Setenv(EnvDifficulty, "Difícil")
	t.Setenv(EnvCount, " 25 ")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvNotation, "latex")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, lessons.DifficultyHard, cfg.Difficulty)
	assert.Equal(t, 25, cfg.Count)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, fraction.StyleLaTeX, cfg.Style())
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvDifficulty, "extremo"},
		{EnvCount, "diez"},
		{EnvCount, "0"},
		{EnvCount, "500"},
		{EnvLogLevel, "verbose"},
		{EnvNotation, "mathml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FRACTIZ_COUNT=7\nFRACTIZ_DIFFICULTY=facil\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv(EnvCount)
		os.Unsetenv(EnvDifficulty)
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Count)
	assert.Equal(t, lessons.DifficultyEasy, cfg.Difficulty)
}

func TestLoad_EnvDoesNotOverrideProcess(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCount, "12")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FRACTIZ_COUNT=7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Count)
}

func TestLoad_MissingFileIgnored(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "lesson", "suma-fracciones")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "lesson=suma-fracciones")
}
