package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice([]string{"1/2", "2/4", "1/4", "4/2"}, 0)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	got, ok := m.Chosen()
	if !ok || got != "2/4" {
		t.Errorf("Chosen() = %q, %v", got, ok)
	}
	if m.IsCorrect() {
		t.Error("2/4 marked correct for index 0")
	}

	// Further keys are ignored once submitted.
	m, _ = m.Update(keyPress('1'))
	if m.ChosenIndex != 1 {
		t.Errorf("ChosenIndex changed to %d after submit", m.ChosenIndex)
	}
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	tests := []struct {
		key      rune
		want     int
		accepted bool
	}{
		{'1', 0, true},
		{'4', 3, true},
		{'5', -1, false},
		{'0', -1, false},
	}
	for _, tt := range tests {
		m := NewMultiChoice([]string{"a", "b", "c", "d"}, 3)
		m, _ = m.Update(keyPress(tt.key))
		if m.Submitted != tt.accepted || m.ChosenIndex != tt.want {
			t.Errorf("key %q: submitted=%v chosen=%d, want %v/%d", tt.key, m.Submitted, m.ChosenIndex, tt.accepted, tt.want)
		}
	}
}

func TestMultiChoice_ViewMarksAnswer(t *testing.T) {
	m := NewMultiChoice([]string{"3/4", "1/4"}, 0)
	if strings.Contains(m.View(), "✔") {
		t.Error("answer revealed before submission")
	}
	m, _ = m.Update(keyPress('2'))
	view := m.View()
	if !strings.Contains(view, "✔") || !strings.Contains(view, "✘") {
		t.Errorf("submitted view lacks marks:\n%s", view)
	}
}

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		done, total, width, want int
	}{
		{0, 10, 20, 0},
		{5, 10, 20, 10},
		{10, 10, 20, 20},
		{3, 0, 20, 0},
	}
	for _, tt := range tests {
		got := StepsBar(tt.done, tt.total, 40).Filled(tt.width)
		if got != tt.want {
			t.Errorf("StepsBar(%d, %d).Filled(%d) = %d, want %d", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
	if got := NewProgressBar("", 1.5, true, 40).Filled(8); got != 8 {
		t.Errorf("overfull bar filled %d of 8", got)
	}
}

func TestProgressBar_ViewLabel(t *testing.T) {
	view := StepsBar(3, 8, 40).View()
	if !strings.Contains(view, "3/8") {
		t.Errorf("view %q lacks its label", view)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Bloqueada", Disabled: true},
		{Label: "Uno"},
		{Label: "Bloqueada", Disabled: true},
		{Label: "Dos"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial Selected = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if i, ok := m.Current(); !ok || i != 3 {
		t.Errorf("after down: Current() = %d, %v, want 3", i, ok)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down past the end moved to %d", m.Selected)
	}
	m, _ = m.Update(keyPress('k'))
	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("up skipped to %d, want 1", m.Selected)
	}
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "x", Disabled: true}})
	if _, ok := m.Current(); ok {
		t.Error("Current() ok with every item disabled")
	}
}
