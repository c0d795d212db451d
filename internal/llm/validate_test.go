package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var choiceSchema = &Schema{
	Name: "choice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"points":   map[string]any{"type": "integer", "minimum": 1},
			"type":     map[string]any{"type": "string", "enum": []any{"multiple", "boolean"}},
		},
		"required": []any{"question", "points"},
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"all fields", `{"question":"Q","points":2,"type":"boolean"}`, true},
		{"optional omitted", `{"question":"Q","points":1}`, true},
		{"missing required", `{"question":"Q"}`, false},
		{"wrong type", `{"question":"Q","points":"two"}`, false},
		{"below minimum", `{"question":"Q","points":0}`, false},
		{"not in enum", `{"question":"Q","points":1,"type":"essay"}`, false},
		{"not json", `{question`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(choiceSchema, json.RawMessage(tt.raw))
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
			if string(inv.Content) != tt.raw {
				t.Fatalf("content not carried: %s", inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatal(err)
	}
}

func TestValidateResponse_CompilesOnce(t *testing.T) {
	raw := json.RawMessage(`{"question":"Q","points":1}`)
	_ = validateResponse(choiceSchema, raw)
	first, ok := compiled.Load(choiceSchema)
	if !ok {
		t.Fatal("schema not cached")
	}
	_ = validateResponse(choiceSchema, raw)
	if again, _ := compiled.Load(choiceSchema); again != first {
		t.Fatal("schema recompiled")
	}
}
