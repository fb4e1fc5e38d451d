package lessons

import (
	"strings"
	"testing"
)

func TestValidate_EmbeddedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("embedded catalog validation failed: %v", err)
	}
}

func TestAll_Order(t *testing.T) {
	all := All()
	if len(all) != 9 {
		t.Fatalf("len(All()) = %d, want 9", len(all))
	}
	for i, l := range all {
		if l.Order != i+1 {
			t.Errorf("All()[%d].Order = %d, want %d", i, l.Order, i+1)
		}
	}
	if all[0].ID != "introduccion-fracciones" {
		t.Errorf("first lesson = %q, want introduccion-fracciones", all[0].ID)
	}
	if all[8].ID != "division-fracciones" {
		t.Errorf("last lesson = %q, want division-fracciones", all[8].ID)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Title = "changed"
	if All()[0].Title == "changed" {
		t.Error("All() should return a copy")
	}
}

func TestGet(t *testing.T) {
	l, err := Get("numeros-mixtos")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if l.Number != 2 || l.EstimatedMins != 30 {
		t.Errorf("Get(numeros-mixtos) = %+v", l)
	}
	if len(l.Prerequisites) != 1 || l.Prerequisites[0] != "introduccion-fracciones" {
		t.Errorf("Prerequisites = %v", l.Prerequisites)
	}

	if _, err := Get("nope"); err == nil {
		t.Error("expected error for unknown lesson")
	}
}

func TestIsUnlocked(t *testing.T) {
	if !IsUnlocked("introduccion-fracciones", nil) {
		t.Error("root lesson should be unlocked with nothing completed")
	}
	if IsUnlocked("numeros-mixtos", nil) {
		t.Error("numeros-mixtos should be locked with nothing completed")
	}
	done := map[string]bool{"introduccion-fracciones": true}
	if !IsUnlocked("numeros-mixtos", done) {
		t.Error("numeros-mixtos should unlock once the introduction is completed")
	}
	if IsUnlocked("unknown", done) {
		t.Error("unknown lesson should never be unlocked")
	}
}

func TestAvailable(t *testing.T) {
	got := Available(map[string]bool{"introduccion-fracciones": true})
	var ids []string
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	want := "numeros-mixtos,fracciones-equivalentes"
	if strings.Join(ids, ",") != want {
		t.Errorf("Available = %v, want %s", ids, want)
	}
}

func TestDependents(t *testing.T) {
	deps := Dependents("introduccion-fracciones")
	if len(deps) != 2 {
		t.Fatalf("len(Dependents) = %d, want 2", len(deps))
	}
	if p := Prerequisites("division-fracciones"); len(p) != 1 || p[0].ID != "multiplicacion-fracciones" {
		t.Errorf("Prerequisites(division-fracciones) = %v", p)
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	if _, err := parseCatalog([]byte("lessons: []\n")); err == nil {
		t.Error("expected error for empty catalog")
	}
	if _, err := parseCatalog([]byte("lessons: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateLessons_DetectsCycle(t *testing.T) {
	ls := []Lesson{
		{ID: "root", Order: 1, ExerciseTotal: 1, EstimatedMins: 1},
		{ID: "a", Order: 2, ExerciseTotal: 1, EstimatedMins: 1, Prerequisites: []string{"b"}},
		{ID: "b", Order: 3, ExerciseTotal: 1, EstimatedMins: 1, Prerequisites: []string{"a"}},
	}
	err := validateLessons(ls)
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Errorf("expected cycle error, got: %v", err)
	}
}

func TestValidateLessons_DetectsDanglingPrereq(t *testing.T) {
	ls := []Lesson{
		{ID: "a", Order: 1, ExerciseTotal: 1, EstimatedMins: 1},
		{ID: "b", Order: 2, ExerciseTotal: 1, EstimatedMins: 1, Prerequisites: []string{"nonexistent"}},
	}
	err := validateLessons(ls)
	if err == nil || !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("expected dangling prerequisite error, got: %v", err)
	}
}

func TestValidateLessons_DetectsDuplicates(t *testing.T) {
	ls := []Lesson{
		{ID: "a", Order: 1, ExerciseTotal: 1, EstimatedMins: 1},
		{ID: "a", Order: 1, ExerciseTotal: 1, EstimatedMins: 1},
	}
	err := validateLessons(ls)
	if err == nil {
		t.Fatal("expected error for duplicates, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplicate, got: %v", err)
	}
	if !strings.Contains(err.Error(), "share order") {
		t.Errorf("error should mention shared order, got: %v", err)
	}
}

func TestValidateLessons_RequiresRoot(t *testing.T) {
	ls := []Lesson{
		{ID: "a", Order: 1, ExerciseTotal: 1, EstimatedMins: 1, Prerequisites: []string{"b"}},
		{ID: "b", Order: 2, ExerciseTotal: 1, EstimatedMins: 1, Prerequisites: []string{"a"}},
	}
	err := validateLessons(ls)
	if err == nil || !strings.Contains(err.Error(), "root") {
		t.Errorf("expected root error, got: %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"facil", DifficultyEasy, false},
		{"fácil", DifficultyEasy, false},
		{"medium", DifficultyMedium, false},
		{"dificil", DifficultyHard, false},
		{"imposible", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
