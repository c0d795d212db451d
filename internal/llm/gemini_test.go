package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestGeminiSchema_BatchShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": float64(10),
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string", "description": "prompt"},
						"type":     map[string]any{"type": "string", "enum": []any{"multiple", "boolean"}},
					},
					"required":             []any{"question", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required": []string{"questions"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "questions" {
		t.Fatalf("required = %v", schema.Required)
	}
	qs := schema.Properties["questions"]
	if qs == nil || qs.Type != "ARRAY" {
		t.Fatalf("questions = %+v", qs)
	}
	if qs.MinItems == nil || *qs.MinItems != 1 || qs.MaxItems == nil || *qs.MaxItems != 10 {
		t.Fatalf("item bounds = %v, %v", qs.MinItems, qs.MaxItems)
	}
	item := qs.Items
	if item.Type != "OBJECT" || len(item.Required) != 2 {
		t.Fatalf("item = %+v", item)
	}
	if item.Properties["question"].Description != "prompt" {
		t.Errorf("description lost: %+v", item.Properties["question"])
	}
	if len(item.Properties["type"].Enum) != 2 {
		t.Errorf("enum = %v", item.Properties["type"].Enum)
	}
}

func TestGeminiSchema_UnknownTypeIsString(t *testing.T) {
	if s := geminiSchema(map[string]any{"type": "null"}); s.Type != "STRING" {
		t.Fatalf("got %s", s.Type)
	}
}
