// Package app wires the screens into the Bubble Tea program.
package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	lessonscreen "github.com/abhisek/fractiz/internal/screens/lessons"
	"github.com/abhisek/fractiz/internal/screens/quiz"
	"github.com/abhisek/fractiz/internal/ui/layout"
)

// statsMsg refreshes the header figures.
type statsMsg layout.HeaderStats

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router   *router.Router
	deps     quiz.Deps
	stats    layout.HeaderStats
	initCmds []tea.Cmd
	width    int
	height   int
}

// newAppModel creates an AppModel rooted at root with stack pushed over it.
func newAppModel(deps quiz.Deps, root screen.Screen, stack ...screen.Screen) AppModel {
	m := AppModel{
		router:   router.New(root),
		deps:     deps,
		stats:    layout.HeaderStats{Lessons: len(lessons.All())},
		initCmds: []tea.Cmd{root.Init()},
	}
	for _, s := range stack {
		m.initCmds = append(m.initCmds, m.router.Push(s))
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(append(m.initCmds, m.loadStats())...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsMsg:
		m.stats = layout.HeaderStats(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		return m, tea.Batch(m.router.Update(msg), m.loadStats())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// loadStats reads the header figures from the tracker.
func (m AppModel) loadStats() tea.Cmd {
	tracker, total := m.deps.Tracker, m.stats.Lessons
	return func() tea.Msg {
		st, err := tracker.Stats(context.Background())
		if err != nil {
			slog.Warn("load stats", "error", err)
			return nil
		}
		return statsMsg{Completed: st.LessonsCompleted, Lessons: total, Streak: st.Streak}
	}
}

// Run starts the program on the lesson list.
func Run(deps quiz.Deps) error {
	return run(newAppModel(deps, lessonscreen.New(deps)))
}

// RunLesson starts the program on a quiz for lesson. Leaving the summary
// returns to the lesson list.
func RunLesson(deps quiz.Deps, lesson lessons.Lesson) error {
	return run(newAppModel(deps, lessonscreen.New(deps), quiz.New(deps, lesson)))
}

func run(m AppModel) error {
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("tui exited", "error", err)
		return err
	}
	return nil
}
