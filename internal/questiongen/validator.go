package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/trivia/internal/trivia"
)

// BatchInput is the context a question was generated for.
type BatchInput struct {
	Category     trivia.Category
	Difficulty   trivia.Difficulty
	Amount       int
	PriorPrompts []string
}

// Validator checks a generated question.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if q passes the check.
	Validate(q *trivia.Question, input BatchInput) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// maxPromptLen bounds prompts so they fit the question screen.
const maxPromptLen = 300

// StructuralValidator checks required fields and the answer shape for
// each question kind.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *trivia.Question, _ BatchInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if strings.TrimSpace(q.Prompt) == "" {
		return fail("question is empty")
	}
	if len(q.Prompt) > maxPromptLen {
		return fail(fmt.Sprintf("question exceeds %d characters", maxPromptLen))
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fail("correct_answer is empty")
	}

	switch q.Kind {
	case trivia.KindMultiple:
		if len(q.IncorrectAnswers) != 3 {
			return fail(fmt.Sprintf("multiple choice needs 3 incorrect answers, got %d", len(q.IncorrectAnswers)))
		}
		for _, a := range q.IncorrectAnswers {
			if strings.TrimSpace(a) == "" {
				return fail("incorrect answer is empty")
			}
		}
	case trivia.KindBoolean:
		if q.CorrectAnswer != "True" && q.CorrectAnswer != "False" {
			return fail(`boolean correct_answer must be "True" or "False"`)
		}
		if len(q.IncorrectAnswers) != 1 || q.IncorrectAnswers[0] == q.CorrectAnswer ||
			(q.IncorrectAnswers[0] != "True" && q.IncorrectAnswers[0] != "False") {
			return fail("boolean incorrect_answers must hold the other of True/False")
		}
	default:
		return fail(`type must be "multiple" or "boolean"`)
	}
	return nil
}

// UniquenessValidator rejects questions whose options are not distinct.
type UniquenessValidator struct{}

func (v *UniquenessValidator) Name() string { return "uniqueness" }

func (v *UniquenessValidator) Validate(q *trivia.Question, _ BatchInput) *ValidationError {
	seen := make(map[string]bool, 1+len(q.IncorrectAnswers))
	for _, a := range q.Answers() {
		key := normalize(a)
		if seen[key] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("answer %q appears more than once", a),
			}
		}
		seen[key] = true
	}
	return nil
}

// RepeatValidator rejects prompts already served under the same token.
type RepeatValidator struct{}

func (v *RepeatValidator) Name() string { return "repeat" }

func (v *RepeatValidator) Validate(q *trivia.Question, input BatchInput) *ValidationError {
	key := normalize(q.Prompt)
	for _, p := range input.PriorPrompts {
		if normalize(p) == key {
			return &ValidationError{Validator: v.Name(), Message: "question was already asked"}
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
