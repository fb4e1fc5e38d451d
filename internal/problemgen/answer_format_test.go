package problemgen

import "testing"

func TestChoices_Valid(t *testing.T) {
	v := &ChoicesValidator{}
	if err := v.Validate(validQuestion()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestChoices_Count(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Choices = []string{"5/6", "2/5", "2/3"}
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for 3 choices")
	}
}

func TestChoices_Empty(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Choices[2] = "  "
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for empty choice")
	}
}

func TestChoices_Duplicate(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Choices = []string{"5/6", "2/5", "2 / 5", "1/6"}
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error for duplicate choices")
	}
}

func TestChoices_AnswerMissing(t *testing.T) {
	v := &ChoicesValidator{}
	q := validQuestion()
	q.Answer = "7/6"
	if err := v.Validate(q); err == nil {
		t.Fatal("expected error when answer is not a choice")
	}
}

func TestChoices_AnswerFormat(t *testing.T) {
	tests := []struct {
		typ     ExerciseType
		answer  string
		wantErr bool
	}{
		{TypeAdd, "5/6", false},
		{TypeAdd, "2", false},
		{TypeAdd, "10/12", true},
		{TypeSimplify, "2/3", false},
		{TypeSimplify, "4/6", true},
		{TypeEquivalent, "4/6", false},
		{TypeEquivalent, "4", true},
		{TypeMixedToImproper, "11/4", false},
		{TypeImproperToMixed, "2 3/4", false},
		{TypeImproperToMixed, "3", false},
		{TypeImproperToMixed, "2 5/4", true},
		{TypeIdentify, "Propia", false},
		{TypeCompare, ">", false},
	}

	v := &ChoicesValidator{}
	for _, tt := range tests {
		q := validQuestion()
		q.Type = tt.typ
		q.Answer = tt.answer
		q.Choices = []string{tt.answer, "x", "y", "z"}
		err := v.Validate(q)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s answer %q: err = %v, wantErr %v", tt.typ, tt.answer, err, tt.wantErr)
		}
	}
}
