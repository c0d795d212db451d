package questiongen

import (
	"strings"
	"testing"

	"github.com/abhisek/trivia/internal/trivia"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "structural", Message: "question is empty"}
	if got := err.Error(); got != `validator "structural": question is empty` {
		t.Errorf("got %q", got)
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "uniqueness", "repeat"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name string
		q    trivia.Question
		ok   bool
	}{
		{
			name: "multiple ok",
			q:    trivia.Question{Kind: trivia.KindMultiple, Prompt: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
			ok:   true,
		},
		{
			name: "boolean ok",
			q:    trivia.Question{Kind: trivia.KindBoolean, Prompt: "Q", CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
			ok:   true,
		},
		{
			name: "empty prompt",
			q:    trivia.Question{Kind: trivia.KindMultiple, Prompt: "  ", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
		},
		{
			name: "long prompt",
			q:    trivia.Question{Kind: trivia.KindMultiple, Prompt: strings.Repeat("x", 301), CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
		},
		{
			name: "two incorrect",
			q:    trivia.Question{Kind: trivia.KindMultiple, Prompt: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C"}},
		},
		{
			name: "blank incorrect",
			q:    trivia.Question{Kind: trivia.KindMultiple, Prompt: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "", "D"}},
		},
		{
			name: "boolean yes/no",
			q:    trivia.Question{Kind: trivia.KindBoolean, Prompt: "Q", CorrectAnswer: "Yes", IncorrectAnswers: []string{"No"}},
		},
		{
			name: "boolean same twice",
			q:    trivia.Question{Kind: trivia.KindBoolean, Prompt: "Q", CorrectAnswer: "True", IncorrectAnswers: []string{"True"}},
		},
		{
			name: "unknown kind",
			q:    trivia.Question{Kind: "essay", Prompt: "Q", CorrectAnswer: "A"},
		},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.q, BatchInput{})
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestUniquenessValidator(t *testing.T) {
	v := &UniquenessValidator{}

	ok := trivia.Question{CorrectAnswer: "Paris", IncorrectAnswers: []string{"Rome", "Berlin", "Madrid"}}
	if err := v.Validate(&ok, BatchInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := trivia.Question{CorrectAnswer: "Paris", IncorrectAnswers: []string{"Rome", " paris ", "Madrid"}}
	if err := v.Validate(&dup, BatchInput{}); err == nil {
		t.Fatal("expected duplicate correct answer to fail")
	}
}

func TestRepeatValidator(t *testing.T) {
	v := &RepeatValidator{}
	input := BatchInput{PriorPrompts: []string{"What is the capital of France?"}}

	q := trivia.Question{Prompt: "what is the  capital of france?"}
	if err := v.Validate(&q, input); err == nil {
		t.Fatal("expected repeat to fail")
	}
	q.Prompt = "What is the capital of Spain?"
	if err := v.Validate(&q, input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 5); got != "None" {
		t.Errorf("empty: got %q", got)
	}
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("got %q", got)
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(BatchInput{
		Category:     trivia.Category{ID: 23, Name: "History"},
		Difficulty:   trivia.DifficultyEasy,
		Amount:       3,
		PriorPrompts: []string{"Who was the first emperor of Rome?"},
	}, DefaultConfig())

	for _, want := range []string{"Category: History", "Difficulty: easy", "Number of questions: 3", "1. Who was the first emperor of Rome?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
