package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fractiz/internal/ui/theme"
)

// MenuItem is a single row of a Menu. Disabled rows are shown but
// skipped by navigation.
type MenuItem struct {
	Label    string
	Badge    string
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the cursor over enabled items.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	}
	return m, nil
}

// Current returns the selected item's index, or false when every item is
// disabled.
func (m Menu) Current() (int, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return 0, false
	}
	return m.Selected, true
}

// View renders the menu. Badges are right-aligned to width.
func (m Menu) View(width int) string {
	var b strings.Builder
	for i, item := range m.Items {
		prefix := "    "
		style := theme.Unselected
		switch {
		case item.Disabled:
			style = theme.Muted
		case i == m.Selected:
			prefix = "  ▸ "
			style = theme.Selected
		}

		line := prefix + item.Label
		if item.Badge != "" {
			gap := max(width-len([]rune(line))-len([]rune(item.Badge))-2, 2)
			line += strings.Repeat(" ", gap) + item.Badge
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}
