package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/store"
)

func testHistoryScreen(t *testing.T) (*HistoryScreen, store.EventRepo) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st.EventRepo()), st.EventRepo()
}

func TestHistoryScreen_Empty(t *testing.T) {
	s, _ := testHistoryScreen(t)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "Todavía no hay sesiones") {
		t.Error("expected the empty history message")
	}
}

func TestHistoryScreen_ExpandShowsAnswers(t *testing.T) {
	s, repo := testHistoryScreen(t)
	ctx := context.Background()
	events := []store.SessionEventData{
		{SessionID: "a", Kind: store.KindQuiz, Action: store.SessionStart, LessonID: "suma-fracciones"},
		{SessionID: "a", Kind: store.KindQuiz, Action: store.SessionEnd, LessonID: "suma-fracciones", QuestionsServed: 2, CorrectAnswers: 1, DurationSecs: 75},
	}
	for _, e := range events {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append session: %v", err)
		}
	}
	for _, a := range []store.AnswerEventData{
		{SessionID: "a", QuestionText: "Calcula 1/2 + 1/3:", CorrectAnswer: "5/6", LearnerAnswer: "5/6", Correct: true},
		{SessionID: "a", QuestionText: "Calcula 1/4 + 1/4:", CorrectAnswer: "1/2", LearnerAnswer: "2/8"},
	} {
		if err := repo.AppendAnswerEvent(ctx, a); err != nil {
			t.Fatalf("append answer: %v", err)
		}
	}

	s.Update(s.Init()())
	view := s.View(120, 30)
	if !strings.Contains(view, "Suma de Fracciones") || !strings.Contains(view, "50%") || !strings.Contains(view, "1:15") {
		t.Errorf("session line missing details:\n%s", view)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected answers to load on expand")
	}
	s.Update(cmd())
	view = s.View(120, 30)
	if !strings.Contains(view, "(era 1/2)") {
		t.Errorf("expanded view lacks the missed answer:\n%s", view)
	}
	first, second := strings.Index(view, "1/2 + 1/3"), strings.Index(view, "1/4 + 1/4")
	if first < 0 || second < first {
		t.Error("answers not shown in the order given")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s, _ := testHistoryScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
