// Package quiz is the screen that runs a lesson quiz.
package quiz

import (
	"context"
	"log/slog"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/problemgen"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/screens/summary"
	sess "github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/store"
	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/layout"
)

// Deps are the services a quiz needs.
type Deps struct {
	Generator  *problemgen.Generator
	Tracker    *progress.Tracker
	Events     store.EventRepo
	Count      int
	Difficulty lessons.Difficulty
}

// QuizScreen implements screen.Screen for one lesson quiz.
type QuizScreen struct {
	deps   Deps
	lesson lessons.Lesson

	quiz        *sess.Quiz
	choice      components.MultiChoice
	last        *sess.AnswerResult
	confirmQuit bool
	finishing   bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen for lesson.
func New(deps Deps, lesson lessons.Lesson) *QuizScreen {
	return &QuizScreen{deps: deps, lesson: lesson}
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.startQuiz()
}

func (s *QuizScreen) Title() string {
	return s.lesson.Title
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "cualquier tecla", Description: "Volver"}}
	case s.quiz == nil || s.finishing:
		return nil
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "S", Description: "Terminar"},
			{Key: "N", Description: "Seguir"},
		}
	case s.quiz.Phase == sess.PhaseFeedback:
		return []layout.KeyHint{{Key: "cualquier tecla", Description: "Continuar"}}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Responder"},
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Confirmar"},
		{Key: "Esc", Description: "Salir"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.quiz = msg.Quiz
		s.resetChoice()
		return s, nil

	case quizDoneMsg:
		if msg.Err != nil {
			s.finishing = false
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		next := summary.New(msg.Summary, msg.Outcome, s.lesson)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.quiz == nil || s.finishing {
		return s, nil
	}

	key := msg.String()
	if s.confirmQuit {
		switch key {
		case "s", "S", "y", "Y":
			s.confirmQuit = false
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch s.quiz.Phase {
	case sess.PhaseFeedback:
		if s.quiz.Next() {
			s.resetChoice()
			return s, nil
		}
		return s, s.finish()

	case sess.PhaseActive:
		if key == "esc" {
			s.confirmQuit = true
			return s, nil
		}
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			return s.submitAnswer()
		}
	}
	return s, nil
}

// submitAnswer checks the chosen option and switches to feedback.
func (s *QuizScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	res, err := s.quiz.Answer(context.Background(), strconv.Itoa(s.choice.ChosenIndex+1))
	if err != nil {
		if res.Question == nil {
			s.errMsg = err.Error()
			return s, nil
		}
		slog.Warn("answer not recorded", "session", s.quiz.ID, "error", err)
	}
	s.last = &res
	return s, nil
}

func (s *QuizScreen) resetChoice() {
	s.last = nil
	if q := s.quiz.Current(); q != nil {
		s.choice = components.NewMultiChoice(q.Choices, q.CorrectIndex())
	}
}

// startQuiz generates the questions off the UI loop.
func (s *QuizScreen) startQuiz() tea.Cmd {
	deps, lessonID := s.deps, s.lesson.ID
	return func() tea.Msg {
		qs, err := deps.Generator.GenerateForLesson(lessonID, deps.Count, deps.Difficulty)
		if err != nil {
			return quizReadyMsg{Err: err}
		}
		q, err := sess.NewQuiz(context.Background(), lessonID, qs, sess.WithEvents(deps.Events))
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

// finish closes the quiz and stores its results.
func (s *QuizScreen) finish() tea.Cmd {
	s.finishing = true
	q, tracker := s.quiz, s.deps.Tracker
	return func() tea.Msg {
		ctx := context.Background()
		sum, err := q.Finish(ctx)
		if err != nil {
			return quizDoneMsg{Err: err}
		}
		out, err := sess.RecordProgress(ctx, tracker, q, sum)
		return quizDoneMsg{Summary: sum, Outcome: out, Err: err}
	}
}
