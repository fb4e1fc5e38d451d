// Package lessons is the home screen: the lesson catalog with the
// learner's status in each lesson.
package lessons

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	catalog "github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/screens/history"
	"github.com/abhisek/fractiz/internal/screens/quiz"
	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

// overviewMsg carries the lesson states loaded from the tracker.
type overviewMsg struct {
	States []progress.LessonState
	Err    error
}

// LessonsScreen lists every lesson and starts quizzes.
type LessonsScreen struct {
	deps   quiz.Deps
	states []progress.LessonState
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*LessonsScreen)(nil)
var _ screen.KeyHintProvider = (*LessonsScreen)(nil)
var _ screen.Resumer = (*LessonsScreen)(nil)

// New creates a LessonsScreen. Quizzes it starts use deps.
func New(deps quiz.Deps) *LessonsScreen {
	return &LessonsScreen{deps: deps}
}

func (s *LessonsScreen) Init() tea.Cmd { return s.load() }

// Resume reloads statuses after a quiz.
func (s *LessonsScreen) Resume() tea.Cmd { return s.load() }

func (s *LessonsScreen) Title() string { return "Lecciones" }

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Empezar"},
		{Key: "H", Description: "Historial"},
		{Key: "Q", Description: "Salir"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.setStates(msg.States)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "h":
			next := history.New(s.deps.Events)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		case "enter":
			i, ok := s.menu.Current()
			if !ok {
				return s, nil
			}
			next := quiz.New(s.deps, s.states[i].Lesson)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		default:
			s.menu, _ = s.menu.Update(msg)
		}
	}
	return s, nil
}

// setStates rebuilds the menu, keeping the cursor where it was.
func (s *LessonsScreen) setStates(states []progress.LessonState) {
	prev := s.menu.Selected
	items := make([]components.MenuItem, len(states))
	for i, st := range states {
		items[i] = components.MenuItem{
			Label:    fmt.Sprintf("%d. %s", st.Lesson.Number, st.Lesson.Title),
			Badge:    badge(st),
			Disabled: st.Status == progress.StatusLocked,
		}
	}
	s.states = states
	s.menu = components.NewMenu(items)
	if prev > 0 && prev < len(items) && !items[prev].Disabled {
		s.menu.Selected = prev
	}
}

func badge(st progress.LessonState) string {
	switch st.Status {
	case progress.StatusCompleted:
		return fmt.Sprintf("✔ %d%%", st.Progress.BestAccuracy)
	case progress.StatusInProgress:
		return fmt.Sprintf("%s %d%%", st.Status.Label(), st.Progress.Accuracy)
	case progress.StatusLocked:
		return "🔒"
	}
	return st.Status.Label()
}

func (s *LessonsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.Incorrect.Render("\n  Error: " + s.errMsg)
	}
	if s.states == nil {
		return theme.Hint.Render("\n  Cargando lecciones...")
	}

	listWidth := min(width-4, 72)
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.menu.View(listWidth))

	if i, ok := s.menu.Current(); ok {
		b.WriteString("\n")
		b.WriteString(renderDetail(s.states[i].Lesson, listWidth))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderDetail shows the description and topics of the selected lesson.
func renderDetail(l catalog.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(theme.Selected.Render(fmt.Sprintf("%s  %s", l.Icon, l.Title)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width - 6).Render(l.Description))
	b.WriteString("\n")
	if len(l.Topics) > 0 {
		b.WriteString(theme.Muted.Render("Temas: " + strings.Join(l.Topics, " · ")))
		b.WriteString("\n")
	}
	b.WriteString(theme.Muted.Render(fmt.Sprintf("≈ %d min", l.EstimatedMins)))
	return theme.Card.Width(width).Render(b.String())
}

func (s *LessonsScreen) load() tea.Cmd {
	tracker := s.deps.Tracker
	return func() tea.Msg {
		states, err := tracker.Overview(context.Background())
		return overviewMsg{States: states, Err: err}
	}
}
