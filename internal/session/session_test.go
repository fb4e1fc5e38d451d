package session

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/store"
)

// mockEventRepo implements store.EventRepo for session tests.
type mockEventRepo struct {
	answers  []store.AnswerEventData
	sessions []store.SessionEventData
}

func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, data store.AnswerEventData) error {
	m.answers = append(m.answers, data)
	return nil
}
func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessions = append(m.sessions, data)
	return nil
}
func (m *mockEventRepo) QueryAnswerEvents(_ context.Context, _ store.QueryOpts) ([]store.AnswerEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) TypeAccuracy(_ context.Context) (map[string]store.TypeAccuracy, error) {
	return nil, nil
}

// stepClock advances by step on every read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

func testQuestions() []*problemgen.Question {
	return []*problemgen.Question{
		{ID: "q1", Type: problemgen.TypeSimplify, Text: "Simplifica 4/8:", Choices: []string{"1/2", "2/4", "1/4", "4/2"}, Answer: "1/2"},
		{ID: "q2", Type: problemgen.TypeAdd, Text: "Calcula 1/2 + 1/3:", Choices: []string{"5/6", "2/5", "1/6", "2/6"}, Answer: "5/6"},
		{ID: "q3", Type: problemgen.TypeSimplify, Text: "Simplifica 6/9:", Choices: []string{"2/3", "3/6", "1/3", "6/3"}, Answer: "2/3"},
	}
}

func TestQuiz_AnswerFlow(t *testing.T) {
	ctx := context.Background()
	repo := &mockEventRepo{}
	clk := &stepClock{t: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC), step: 5 * time.Second}

	q, err := NewQuiz(ctx, "simplificacion-fracciones", testQuestions(), WithEvents(repo), WithClock(clk.now))
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}
	if _, err := uuid.Parse(q.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", q.ID, err)
	}
	if q.Phase != PhaseActive || q.Current().ID != "q1" {
		t.Fatalf("initial state: phase=%d current=%v", q.Phase, q.Current())
	}

	res, err := q.Answer(ctx, "1")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if !res.Correct || res.Given != "1/2" {
		t.Errorf("answer by index = %+v", res)
	}
	if q.Phase != PhaseFeedback {
		t.Errorf("phase after answer = %d, want feedback", q.Phase)
	}
	if _, err := q.Answer(ctx, "1"); !errors.Is(err, ErrFinished) {
		t.Errorf("second answer during feedback: err = %v", err)
	}

	if !q.Next() {
		t.Fatal("Next() = false with questions left")
	}
	res, _ = q.Answer(ctx, "2/5")
	if res.Correct {
		t.Error("2/5 accepted for 1/2 + 1/3")
	}
	q.Next()
	res, _ = q.Answer(ctx, "2 / 3")
	if !res.Correct {
		t.Error("spaced answer text rejected")
	}
	if q.Next() {
		t.Error("Next() = true after the last question")
	}
	if q.Phase != PhaseSummary || q.Current() != nil || !q.Done() {
		t.Errorf("end state: phase=%d done=%v", q.Phase, q.Done())
	}

	sum, err := q.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.TotalQuestions != 3 || sum.TotalCorrect != 2 || sum.Percent() != 67 {
		t.Errorf("summary totals = %+v", sum)
	}
	if sum.BestStreak != 1 {
		t.Errorf("BestStreak = %d, want 1", sum.BestStreak)
	}
	if len(sum.Missed) != 1 || sum.Missed[0].Question.ID != "q2" {
		t.Errorf("Missed = %+v", sum.Missed)
	}

	if len(repo.answers) != 3 || len(repo.sessions) != 2 {
		t.Fatalf("events: %d answers, %d sessions", len(repo.answers), len(repo.sessions))
	}
	if repo.sessions[0].Action != store.SessionStart || repo.sessions[1].Action != store.SessionEnd {
		t.Errorf("session actions = %s, %s", repo.sessions[0].Action, repo.sessions[1].Action)
	}
	if repo.sessions[1].CorrectAnswers != 2 || repo.sessions[1].LessonID != "simplificacion-fracciones" {
		t.Errorf("end event = %+v", repo.sessions[1])
	}
	if repo.answers[1].ExerciseType != "suma" || repo.answers[1].Correct {
		t.Errorf("second answer event = %+v", repo.answers[1])
	}
	if repo.answers[0].TimeMs != 5000 {
		t.Errorf("first answer took %dms, want 5000", repo.answers[0].TimeMs)
	}
}

func TestQuiz_NoQuestions(t *testing.T) {
	if _, err := NewQuiz(context.Background(), "", nil); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestQuiz_FinishEarly(t *testing.T) {
	ctx := context.Background()
	q, _ := NewQuiz(ctx, "", testQuestions())
	_, _ = q.Answer(ctx, "1/2")

	sum, err := q.Finish(ctx)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.TotalQuestions != 1 || sum.TotalCorrect != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestBuildSummary_TypeResultsInOrder(t *testing.T) {
	ctx := context.Background()
	q, _ := NewQuiz(ctx, "", testQuestions())
	for _, in := range []string{"1/2", "5/6", "1/3"} {
		_, _ = q.Answer(ctx, in)
		q.Next()
	}

	sum := BuildSummary(q)
	want := []TypeResult{
		{Type: problemgen.TypeSimplify, Attempted: 2, Correct: 1},
		{Type: problemgen.TypeAdd, Attempted: 1, Correct: 1},
	}
	if len(sum.TypeResults) != len(want) {
		t.Fatalf("TypeResults = %+v", sum.TypeResults)
	}
	for i := range want {
		if sum.TypeResults[i] != want[i] {
			t.Errorf("TypeResults[%d] = %+v, want %+v", i, sum.TypeResults[i], want[i])
		}
	}
	if sum.BestStreak != 2 {
		t.Errorf("BestStreak = %d, want 2", sum.BestStreak)
	}
}

func TestQuiz_WithGeneratedLesson(t *testing.T) {
	ctx := context.Background()
	gen := problemgen.NewGenerator(problemgen.NewRand(4), problemgen.DefaultConfig())
	qs, err := gen.GenerateForLesson("suma-fracciones", 5, lessons.DifficultyEasy)
	if err != nil {
		t.Fatalf("GenerateForLesson: %v", err)
	}
	q, err := NewQuiz(ctx, "suma-fracciones", qs)
	if err != nil {
		t.Fatalf("NewQuiz: %v", err)
	}
	for q.Current() != nil {
		cur := q.Current()
		res, err := q.Answer(ctx, strconv.Itoa(cur.CorrectIndex()+1))
		if err != nil || !res.Correct {
			t.Fatalf("choosing the answer to %q: %+v, %v", cur.Text, res, err)
		}
		q.Next()
	}
	sum, _ := q.Finish(ctx)
	if sum.Percent() != 100 {
		t.Errorf("Percent = %d, want 100", sum.Percent())
	}
}
