// Package layout renders the app frame: header, footer and the
// terminal-too-small fallback.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fractiz/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats is the learner summary shown on the right of the header.
type HeaderStats struct {
	Completed int
	Lessons   int
	Streak    int
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage tells the learner how far to grow the window.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"¡Terminal muy pequeña!\n\nAgranda la ventana a\nal menos %d x %d\n\nActual: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// bar frames one line of content across the full width.
func bar(content string, width int) string {
	return barStyle.Width(width).Render(content)
}

// streakText pluralizes the streak in days.
func streakText(streak int) string {
	if streak == 1 {
		return "★ 1 día"
	}
	return fmt.Sprintf("★ %d días", streak)
}

// RenderHeader draws the app name on the left, title centered and the
// lesson and streak counters on the right.
func RenderHeader(title string, stats HeaderStats, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Fractiz")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	counters := lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("✔ %d/%d", stats.Completed, stats.Lessons)) +
		"   " +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(streakText(stats.Streak))

	// Border and padding take 4 columns.
	inner := max(width-4, 0)
	nameW, centerW, countersW := lipgloss.Width(name), lipgloss.Width(center), lipgloss.Width(counters)
	gapL := max((inner-centerW)/2-nameW, 1)
	gapR := max(inner-nameW-gapL-centerW-countersW, 1)

	return bar(name+strings.Repeat(" ", gapL)+center+strings.Repeat(" ", gapR)+counters, width)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, stretching the content
// to fill the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
