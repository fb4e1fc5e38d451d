package problemgen

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// QuestionSchema describes one serialized Question.
var QuestionSchema = &Schema{
	Name: "fraction-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "string", "minLength": 1},
			"type": map[string]any{"type": "string", "enum": exerciseTypeEnum()},
			"text": map[string]any{"type": "string", "minLength": 1, "maxLength": 500},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "minLength": 1},
				"minItems":    4,
				"maxItems":    4,
				"uniqueItems": true,
			},
			"answer":      map[string]any{"type": "string", "minLength": 1},
			"explanation": map[string]any{"type": "string", "minLength": 1, "maxLength": 1000},
			"difficulty":  map[string]any{"type": "string", "enum": []any{"facil", "medio", "dificil"}},
			"numerator":   map[string]any{"type": "integer", "minimum": 0},
			"denominator": map[string]any{"type": "integer", "minimum": 1},
			"whole":       map[string]any{"type": "integer", "minimum": 0},
		},
		"required":             []any{"id", "type", "text", "choices", "answer", "explanation", "difficulty"},
		"additionalProperties": false,
	},
}

// BatchSchema describes an exported batch of questions.
var BatchSchema = &Schema{
	Name: "fraction-question-batch",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"seed":       map[string]any{"type": "integer"},
			"difficulty": map[string]any{"type": "string", "enum": []any{"facil", "medio", "dificil"}},
			"questions": map[string]any{
				"type":     "array",
				"items":    QuestionSchema.Definition,
			},
		},
		"required":             []any{"difficulty", "questions"},
		"additionalProperties": false,
	},
}

func exerciseTypeEnum() []any {
	ts := AllExerciseTypes()
	out := make([]any, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// ValidateJSON validates raw JSON against the given Schema.
func ValidateJSON(schema *Schema, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// Batch is the exported form of a generated batch.
type Batch struct {
	Seed       *uint64     `json:"seed,omitempty"`
	Difficulty string      `json:"difficulty"`
	Questions  []*Question `json:"questions"`
}

// MarshalBatch encodes b as indented JSON and checks it against
// BatchSchema.
func MarshalBatch(b Batch) ([]byte, error) {
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}
	if err := ValidateJSON(BatchSchema, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UnmarshalQuestion decodes one question record after checking it against
// QuestionSchema.
func UnmarshalQuestion(raw []byte) (*Question, error) {
	if err := ValidateJSON(QuestionSchema, raw); err != nil {
		return nil, err
	}
	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return &q, nil
}
