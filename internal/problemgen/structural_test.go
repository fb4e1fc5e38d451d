package problemgen

import (
	"strings"
	"testing"

	"github.com/abhisek/fractiz/internal/lessons"
)

func validQuestion() *Question {
	return &Question{
		ID:          "suma-1-1234",
		Type:        TypeAdd,
		Text:        "Calcula 1/2 + 1/3:",
		Choices:     []string{"5/6", "2/5", "2/3", "1/6"},
		Answer:      "5/6",
		Explanation: "Con denominador común 6: 3/6 + 2/6 = 5/6, que simplificado es 5/6",
		Difficulty:  lessons.DifficultyEasy,
	}
}

func TestStructural_ValidQuestion(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestStructural_EmptyText(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Text = ""
	err := v.Validate(q)
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if err.Validator != "structural" {
		t.Errorf("expected validator %q, got %q", "structural", err.Validator)
	}
	if !err.Retryable {
		t.Error("expected retryable")
	}
}

func TestStructural_TextTooLong(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Text = strings.Repeat("a", 501)
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for long text")
	}
}

func TestStructural_EmptyExplanation(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Explanation = ""
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for empty explanation")
	}
}

func TestStructural_ExplanationTooLong(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Explanation = strings.Repeat("a", 1001)
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for long explanation")
	}
}

func TestStructural_UnknownType(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.Type = "potencias"
	err := v.Validate(q)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if err.Retryable {
		t.Error("unknown type should not be retryable")
	}
}

func TestStructural_Difficulty(t *testing.T) {
	v := &StructuralValidator{}
	for _, d := range []lessons.Difficulty{"", "fácil", "extremo"} {
		q := validQuestion()
		q.Difficulty = d
		if err := v.Validate(q); err == nil {
			t.Errorf("difficulty %q: expected error", d)
		}
	}
}

func TestStructural_EmptyID(t *testing.T) {
	v := &StructuralValidator{}
	q := validQuestion()
	q.ID = ""
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for empty id")
	}
}
