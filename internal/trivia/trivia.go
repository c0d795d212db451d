package trivia

import (
	"context"
	"fmt"
	"strings"
)

// Difficulty is the question difficulty requested from a Source.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the supported difficulties in menu order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts a user-supplied string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q: must be easy, medium or hard", s)
}

// Valid reports whether d is one of the supported difficulties.
func (d Difficulty) Valid() bool {
	_, err := ParseDifficulty(string(d))
	return err == nil
}

// DisplayName returns the capitalized name, e.g. "Medium".
func (d Difficulty) DisplayName() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Kind is the answer format of a question.
type Kind string

const (
	KindMultiple Kind = "multiple"
	KindBoolean  Kind = "boolean"
)

// Category is an entry of the source's category table.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question is a single trivia question as delivered by a Source.
// All text fields are plain text (entities already decoded).
type Question struct {
	Category         string     `json:"category"`
	Kind             Kind       `json:"type"`
	Difficulty       Difficulty `json:"difficulty"`
	Prompt           string     `json:"question"`
	CorrectAnswer    string     `json:"correct_answer"`
	IncorrectAnswers []string   `json:"incorrect_answers"`
}

// Answers returns the correct answer followed by the incorrect ones.
func (q Question) Answers() []string {
	out := make([]string, 0, 1+len(q.IncorrectAnswers))
	out = append(out, q.CorrectAnswer)
	return append(out, q.IncorrectAnswers...)
}

// Query describes a question batch request.
type Query struct {
	Amount int

	// CategoryID is nil for "any category".
	CategoryID *int

	Difficulty Difficulty
	Token      string
}

// Source is the remote trivia service the game depends on.
type Source interface {
	// RequestSessionToken obtains a token that keeps the source from
	// repeating questions within one play-through.
	RequestSessionToken(ctx context.Context) (string, error)

	// ListCategories returns the category table in source order.
	ListCategories(ctx context.Context) ([]Category, error)

	// FetchQuestions returns up to q.Amount questions. An empty slice with
	// a nil error means the source had nothing matching the query.
	FetchQuestions(ctx context.Context, q Query) ([]Question, error)
}

// IntPtr returns a pointer to v, for building a Query.
func IntPtr(v int) *int { return &v }
