package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fractiz/internal/arith"
	"github.com/abhisek/fractiz/internal/config"
	"github.com/abhisek/fractiz/internal/fraction"
	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/screens/quiz"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/store"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{config.EnvDB, config.EnvDifficulty, config.EnvCount, config.EnvLogLevel, config.EnvNotation} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.Execute()
	return out.String(), err
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFracCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"frac", "simplify", "4/8"}, "4/8 = 1/2 (÷4)"},
		{[]string{"frac", "simplify", "3/7"}, "3/7 ya está simplificada"},
		{[]string{"frac", "mixed", "7/3"}, "7/3 = 2 1/3"},
		{[]string{"frac", "mixed", "2/5"}, "2/5 es propia"},
		{[]string{"frac", "improper", "2 1/3"}, "2 1/3 = 7/3"},
		{[]string{"frac", "classify", "8/4"}, "aparente"},
		{[]string{"frac", "decimal", "1/3", "--places", "3"}, "1/3 ≈ 0.333 (periódico, periodo 3)"},
		{[]string{"frac", "decimal", "3/8", "--places", "3"}, "3/8 = 0.375 (decimal exacto)"},
		{[]string{"frac", "compare", "2/4", "1/2"}, "2/4 = 1/2"},
		{[]string{"frac", "compare", "2/3", "3/4"}, "2/3 < 3/4"},
		{[]string{"frac", "common", "1/2", "1/3"}, "1/2 = 3/6 (×3)\n1/3 = 2/6 (×2)"},
		{[]string{"frac", "equivalents", "1/2", "--count", "2"}, "1/2 = 2/4 = 3/6"},
		{[]string{"frac", "calc", "1/2", "+", "1/3"}, "1/2 + 1/3 = 5/6"},
		{[]string{"frac", "calc", "3/2", "x", "3"}, "3/2 x 3/1 = 9/2 = 4 1/2"},
		{[]string{"frac", "calc", "1/2", "÷", "1/4"}, "1/2 ÷ 1/4 = 2"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFracCalc_Errors(t *testing.T) {
	_, err := calc(fraction.New(1, 2), "/", fraction.New(0, 1))
	assert.ErrorIs(t, err, fraction.ErrDivisionByZero)

	_, err = calc(fraction.New(1, 2), "^", fraction.New(1, 2))
	assert.Error(t, err)

	_, err = execute(t, "", "frac", "simplify", "1/0")
	assert.ErrorIs(t, err, fraction.ErrInvalidFraction)
}

func TestExport_SeededBatchIsReproducible(t *testing.T) {
	args := []string{"export", "--seed", "7", "--count", "4", "--difficulty", "facil", "--lesson", "suma-fracciones", "--no-shuffle"}
	first, err := execute(t, "", args...)
	require.NoError(t, err)
	second, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var batch problemgen.Batch
	require.NoError(t, json.Unmarshal([]byte(first), &batch))
	require.NotNil(t, batch.Seed)
	assert.Equal(t, uint64(7), *batch.Seed)
	assert.Equal(t, "facil", batch.Difficulty)
	require.Len(t, batch.Questions, 4)
	for _, q := range batch.Questions {
		assert.Equal(t, problemgen.TypeAdd, q.Type)
	}
}

func TestExport_RejectsLessonAndType(t *testing.T) {
	_, err := execute(t, "", "export", "--lesson", "suma-fracciones", "--type", "suma")
	assert.Error(t, err)
}

func TestRunDrill_CompletesLesson(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	deps := quiz.Deps{
		Generator:  problemgen.NewGenerator(problemgen.NewRand(11), problemgen.DefaultConfig()),
		Tracker:    progress.NewTracker(st.ProgressRepo()),
		Events:     st.EventRepo(),
		Count:      4,
		Difficulty: lessons.DifficultyEasy,
	}
	const lessonID = "simplificacion-fracciones"
	qs, err := drillQuestions(deps, lessonID, nil)
	require.NoError(t, err)

	var in strings.Builder
	for _, q := range qs {
		in.WriteString(strconv.Itoa(q.CorrectIndex()+1) + "\n")
	}
	var out bytes.Buffer
	require.NoError(t, runDrill(ctx, strings.NewReader(in.String()), &out, deps, lessonID, qs))

	assert.Contains(t, out.String(), "Resultado: 4/4 correctas (100%)")
	assert.Contains(t, out.String(), "¡Lección completada!")
	status, err := deps.Tracker.Status(ctx, lessonID)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusCompleted, status)

	sessions, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 4, sessions[0].CorrectAnswers)
}

func TestRunDrill_SkipAndClosedInput(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	deps := quiz.Deps{
		Generator:  problemgen.NewGenerator(problemgen.NewRand(3), problemgen.DefaultConfig()),
		Tracker:    progress.NewTracker(st.ProgressRepo()),
		Events:     st.EventRepo(),
		Count:      3,
		Difficulty: lessons.DifficultyMedium,
	}
	qs, err := drillQuestions(deps, "", []string{"comparar"})
	require.NoError(t, err)

	wrong := strconv.Itoa((qs[1].CorrectIndex()+1)%len(qs[1].Choices) + 1)
	var out bytes.Buffer
	require.NoError(t, runDrill(ctx, strings.NewReader("\n"+wrong+"\n"), &out, deps, "", qs))

	assert.Contains(t, out.String(), "(omitida)")
	assert.Contains(t, out.String(), "(entrada cerrada)")
	assert.Contains(t, out.String(), "Resultado: 0/1 correctas (0%)")
	assert.NotContains(t, out.String(), "Lección completada")
}

func TestEnsureUnlocked(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	tr := progress.NewTracker(st.ProgressRepo())

	assert.NoError(t, ensureUnlocked(ctx, tr, "introduccion-fracciones"))
	assert.ErrorContains(t, ensureUnlocked(ctx, tr, "numeros-mixtos"), "locked")

	_, err := tr.RecordExam(ctx, "introduccion-fracciones", 5, 5)
	require.NoError(t, err)
	require.NoError(t, tr.Complete(ctx, "introduccion-fracciones"))
	assert.NoError(t, ensureUnlocked(ctx, tr, "numeros-mixtos"))
}

func TestDrill_RefusesLockedLesson(t *testing.T) {
	db := filepath.Join(t.TempDir(), "drill.db")
	_, err := execute(t, "", "drill", "--db", db, "--lesson", "division-fracciones")
	assert.ErrorContains(t, err, "locked")
}

func TestDrillQuestions_UnknownInputs(t *testing.T) {
	deps := quiz.Deps{
		Generator:  problemgen.NewGenerator(problemgen.NewRand(1), problemgen.DefaultConfig()),
		Count:      2,
		Difficulty: lessons.DifficultyEasy,
	}
	_, err := drillQuestions(deps, "no-existe", nil)
	assert.Error(t, err)
	_, err = drillQuestions(deps, "", []string{"potencias"})
	assert.ErrorIs(t, err, problemgen.ErrUnknownType)
}

func TestRunArith_SavesRound(t *testing.T) {
	ctx := context.Background()
	st := testStore(t)
	p, err := session.NewPractice(ctx, arith.New(42), 3, lessons.DifficultyEasy, session.WithEvents(st.EventRepo()))
	require.NoError(t, err)

	in := strconv.Itoa(p.Exercises[0].Answer) + "\nabc\n" + strconv.Itoa(p.Exercises[1].Answer+1) + "\nq\n"
	var out bytes.Buffer
	require.NoError(t, runArith(ctx, strings.NewReader(in), &out, p, st.SessionRepo()))

	assert.Contains(t, out.String(), "Escribe un número entero.")
	assert.Contains(t, out.String(), "Resueltos: 2/3  Aciertos: 1 (50%)")
	assert.Contains(t, out.String(), "Semilla: 42")
	assert.Contains(t, out.String(), "--resume "+p.ID)

	loaded, err := session.LoadPractice(ctx, st.SessionRepo(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Index())

	var rest bytes.Buffer
	require.NoError(t, runArith(ctx, strings.NewReader(strconv.Itoa(loaded.Exercises[2].Answer)+"\n"), &rest, loaded, st.SessionRepo()))
	assert.Contains(t, rest.String(), "Resueltos: 3/3")
	assert.NotContains(t, rest.String(), "--resume")
}

func TestLessonsAndReset(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "", "lessons", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "introduccion-fracciones")
	assert.Contains(t, out, "Bloqueado")
	assert.Contains(t, out, strconv.Itoa(len(lessons.All()))+" lecciones")

	out, err = execute(t, "no\n", "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelado.")

	out, err = execute(t, "", "reset", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Borrado todo el progreso")
}

func TestStats_EmptyStore(t *testing.T) {
	out, err := execute(t, "", "stats", "--db", filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "Lecciones completadas: 0/")
	assert.Contains(t, out, "Racha:                 0 días")
	assert.NotContains(t, out, "Sesiones recientes")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fractiz (devel)\n", out)
}
