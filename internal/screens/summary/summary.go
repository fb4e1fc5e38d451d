// Package summary is the screen shown after a quiz ends.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/lessons"
	"github.com/abhisek/fractiz/internal/progress"
	"github.com/abhisek/fractiz/internal/router"
	"github.com/abhisek/fractiz/internal/screen"
	"github.com/abhisek/fractiz/internal/session"
	"github.com/abhisek/fractiz/internal/ui/layout"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

// maxMissed bounds how many missed questions are listed.
const maxMissed = 5

// SummaryScreen displays the quiz summary.
type SummaryScreen struct {
	summary *session.Summary
	outcome session.Outcome
	lesson  lessons.Lesson
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(sum *session.Summary, out session.Outcome, lesson lessons.Lesson) *SummaryScreen {
	return &SummaryScreen{summary: sum, outcome: out, lesson: lesson}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumen"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "Esc", Description: "Lecciones"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	title := "¡Quiz terminado!"
	if s.outcome.Passed {
		title = "¡Lección completada!"
	}
	b.WriteString(centered(width, theme.Title.Render(title)))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Subtitle.Render(s.lesson.Title)))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(centered(width, theme.Muted.Render(fmt.Sprintf("Duración: %d:%02d", mins, secs))))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Preguntas: %d        Correctas: %d        Precisión: %d%%",
		sum.TotalQuestions, sum.TotalCorrect, sum.Percent())
	b.WriteString(centered(width, theme.Body.Render(statsLine)))
	b.WriteString("\n")
	if !s.outcome.Passed && sum.TotalQuestions > 0 {
		b.WriteString(centered(width, theme.Muted.Render(
			fmt.Sprintf("Necesitas %d%% para completar la lección.", progress.PassPercent))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	divider := theme.Muted.Render(strings.Repeat("─", min(width-8, 60)))

	if len(sum.TypeResults) > 0 {
		b.WriteString(centered(width, theme.Muted.Render("Ejercicios")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, tr := range sum.TypeResults {
			line := fmt.Sprintf("%-18s %d/%d correctas", tr.Type.Label(), tr.Correct, tr.Attempted)
			style := theme.Body
			if tr.Correct == tr.Attempted {
				style = theme.Correct
			}
			b.WriteString(centered(width, style.Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.Missed) > 0 {
		b.WriteString(centered(width, theme.Muted.Render("Para repasar")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for i, m := range sum.Missed {
			if i == maxMissed {
				b.WriteString(centered(width, theme.Hint.Render(fmt.Sprintf("... y %d más", len(sum.Missed)-maxMissed))))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%s  →  %s", m.Question.Text, m.Question.Answer)
			b.WriteString(centered(width, theme.Body.Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.outcome.Streak > 0 {
		streak := fmt.Sprintf("★ Racha: %d", s.outcome.Streak)
		if s.outcome.Milestone {
			streak += "  ¡Nuevo hito!"
		}
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(streak)))
	}

	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
