package problemgen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/fractiz/internal/lessons"
)

func TestValidateJSON_QuestionRoundTrip(t *testing.T) {
	gen := NewGenerator(NewRand(1), DefaultConfig())
	for _, typ := range AllExerciseTypes() {
		q, err := gen.Generate(typ, lessons.DifficultyMedium)
		if err != nil {
			t.Fatalf("Generate(%s) error: %v", typ, err)
		}
		raw, err := json.Marshal(q)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		back, err := UnmarshalQuestion(raw)
		if err != nil {
			t.Fatalf("%s: UnmarshalQuestion error: %v\n%s", typ, err, raw)
		}
		if back.Answer != q.Answer || back.Text != q.Text {
			t.Errorf("%s: round trip changed the question", typ)
		}
	}
}

func TestValidateJSON_RejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing answer", `{"id":"a","type":"suma","text":"t","choices":["1","2","3","4"],"explanation":"e","difficulty":"facil"}`},
		{"three choices", `{"id":"a","type":"suma","text":"t","choices":["1","2","3"],"answer":"1","explanation":"e","difficulty":"facil"}`},
		{"unknown type", `{"id":"a","type":"potencias","text":"t","choices":["1","2","3","4"],"answer":"1","explanation":"e","difficulty":"facil"}`},
		{"zero denominator", `{"id":"a","type":"simplificar","text":"t","choices":["1","2","3","4"],"answer":"1","explanation":"e","difficulty":"facil","denominator":0}`},
		{"extra field", `{"id":"a","type":"suma","text":"t","choices":["1","2","3","4"],"answer":"1","explanation":"e","difficulty":"facil","hint":"x"}`},
	}

	for _, tt := range tests {
		if _, err := UnmarshalQuestion([]byte(tt.raw)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestMarshalBatch(t *testing.T) {
	gen := NewGenerator(NewRand(2), DefaultConfig())
	qs, err := gen.GenerateBatch(DefaultBatchConfig())
	if err != nil {
		t.Fatalf("GenerateBatch error: %v", err)
	}
	seed := uint64(2)
	raw, err := MarshalBatch(Batch{Seed: &seed, Difficulty: string(lessons.DifficultyMedium), Questions: qs})
	if err != nil {
		t.Fatalf("MarshalBatch error: %v", err)
	}
	if !strings.Contains(string(raw), `"seed": 2`) {
		t.Errorf("batch JSON missing seed:\n%s", raw)
	}

	if _, err := MarshalBatch(Batch{Difficulty: "medio"}); err == nil {
		t.Error("expected error for a batch without a questions list")
	}
	if _, err := MarshalBatch(Batch{Difficulty: "medio", Questions: []*Question{}}); err != nil {
		t.Errorf("empty batch: %v", err)
	}
}
