package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/ui/components"
	"github.com/abhisek/fractiz/internal/ui/theme"
)

func (s *QuizScreen) View(width, _ int) string {
	switch {
	case s.errMsg != "":
		return centered(width, theme.Incorrect.Render("Error: "+s.errMsg)+"\n\n"+
			theme.Hint.Render("Pulsa cualquier tecla para volver."))
	case s.quiz == nil:
		return centered(width, "\n\n"+theme.Hint.Render("Preparando preguntas..."))
	case s.finishing:
		return centered(width, "\n\n"+theme.Hint.Render("Guardando resultados..."))
	case s.confirmQuit:
		return renderQuitConfirm(width)
	}
	return s.renderQuestion(width)
}

// renderQuestion shows the status line, the prompt, the options and,
// after an answer, the verdict with its explanation.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.quiz.Current()
	if q == nil {
		return ""
	}

	var b strings.Builder

	bar := components.StepsBar(len(s.quiz.Results), len(s.quiz.Questions), min(width/2, 40))
	right := theme.Muted.Render(fmt.Sprintf("Pregunta %d/%d   ", s.quiz.Index()+1, len(s.quiz.Questions))) +
		theme.Correct.Render(fmt.Sprintf("✔ %d", correctSoFar(s)))
	gap := max(width-lipgloss.Width(bar.View())-lipgloss.Width(right)-4, 1)
	b.WriteString("  " + bar.View() + strings.Repeat(" ", gap) + right + "\n")
	b.WriteString(theme.Muted.Render(strings.Repeat("─", max(width-4, 0))) + "\n\n")

	b.WriteString(centered(width, theme.Body.Bold(true).Render(q.Text)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	if s.last == nil {
		return b.String()
	}

	b.WriteString("\n")
	if s.last.Correct {
		b.WriteString(centered(width, theme.Correct.Render("¡Correcto!")))
	} else {
		b.WriteString(centered(width, theme.Incorrect.Render("Incorrecto. La respuesta es "+q.Answer)))
	}
	if q.Explanation != "" {
		b.WriteString("\n\n")
		exp := theme.Card.Width(min(width-8, 70)).Render(theme.Body.Render(q.Explanation))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

func correctSoFar(s *QuizScreen) int {
	n := 0
	for _, r := range s.quiz.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Body.Bold(true).Render("¿Terminar el quiz ahora?")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Muted.Render("Las respuestas dadas se guardarán.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Correct.Render("[S] Sí, terminar")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Selected.Render("[N] No, seguir")))
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
