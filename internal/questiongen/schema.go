package questiongen

import "github.com/abhisek/trivia/internal/llm"

// BatchSchema defines the JSON schema for LLM trivia batch responses.
var BatchSchema = &llm.Schema{
	Name:        "trivia-batch",
	Description: "A batch of trivia questions for one category and difficulty",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt in plain text",
						},
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple", "boolean"},
							"description": "multiple: four options. boolean: True or False.",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The exact text of the correct option",
						},
						"incorrect_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Three wrong options for multiple, the other of True/False for boolean",
						},
					},
					"required":             []any{"question", "type", "correct_answer", "incorrect_answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
