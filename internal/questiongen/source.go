// Package questiongen implements trivia.Source on top of an LLM provider.
package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/trivia"
)

// anyCategory labels batches requested without a category.
var anyCategory = trivia.Category{ID: 0, Name: "Any Category"}

// Source generates question batches with an LLM. Session tokens are local
// and scope the repeat check.
type Source struct {
	provider llm.Provider
	config   Config
	logger   *log.Logger

	mu     sync.Mutex
	served map[string][]string
}

var _ trivia.Source = (*Source)(nil)

// New creates a Source. A nil logger discards validation diagnostics.
func New(provider llm.Provider, cfg Config, logger *log.Logger) *Source {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Source{
		provider: provider,
		config:   cfg,
		logger:   logger,
		served:   make(map[string][]string),
	}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Question         string   `json:"question"`
	Type             string   `json:"type"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// RequestSessionToken issues a new local token.
func (s *Source) RequestSessionToken(_ context.Context) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.served[token] = nil
	s.mu.Unlock()
	return token, nil
}

// ListCategories returns the built-in category table.
func (s *Source) ListCategories(_ context.Context) ([]trivia.Category, error) {
	return Categories(), nil
}

// FetchQuestions generates up to q.Amount validated questions. Questions
// failing validation are dropped, so the batch may come back short.
func (s *Source) FetchQuestions(ctx context.Context, q trivia.Query) ([]trivia.Question, error) {
	if q.Amount < 1 || (s.config.MaxBatch > 0 && q.Amount > s.config.MaxBatch) {
		return nil, fmt.Errorf("%w: amount %d", trivia.ErrInvalidParameter, q.Amount)
	}

	input := BatchInput{
		Category:   anyCategory,
		Difficulty: q.Difficulty,
		Amount:     q.Amount,
	}
	if q.CategoryID != nil {
		cat, ok := lookupCategory(*q.CategoryID)
		if !ok {
			return nil, fmt.Errorf("%w: category %d", trivia.ErrInvalidParameter, *q.CategoryID)
		}
		input.Category = cat
	}
	if input.Difficulty == "" {
		input.Difficulty = trivia.DifficultyMedium
	}

	if q.Token != "" {
		prior, ok := s.prior(q.Token)
		if !ok {
			return nil, trivia.ErrTokenNotFound
		}
		input.PriorPrompts = prior
	}

	var out []trivia.Question
	for attempt := 0; attempt < s.config.MaxAttempts && len(out) < q.Amount; attempt++ {
		want := input
		want.Amount = q.Amount - len(out)

		batch, err := s.generate(ctx, want)
		if err != nil {
			return nil, err
		}
		for _, gq := range batch {
			if len(out) == q.Amount {
				break
			}
			if verr := s.validate(&gq, input); verr != nil {
				s.logf("questiongen: dropped question in %q: %v", input.Category.Name, verr)
				continue
			}
			out = append(out, gq)
			input.PriorPrompts = append(input.PriorPrompts, gq.Prompt)
		}
	}

	if q.Token != "" {
		s.remember(q.Token, out)
	}
	if out == nil {
		out = []trivia.Question{}
	}
	return out, nil
}

func (s *Source) generate(ctx context.Context, input BatchInput) ([]trivia.Question, error) {
	ctx = llm.WithPurpose(ctx, "trivia-batch")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, s.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &trivia.UnavailableError{Op: "generate", Err: err}
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", trivia.ErrMalformedResponse, err)
	}

	qs := make([]trivia.Question, 0, len(raw.Questions))
	for _, r := range raw.Questions {
		qs = append(qs, trivia.Question{
			Category:         input.Category.Name,
			Kind:             trivia.Kind(r.Type),
			Difficulty:       input.Difficulty,
			Prompt:           r.Question,
			CorrectAnswer:    r.CorrectAnswer,
			IncorrectAnswers: r.IncorrectAnswers,
		})
	}
	return qs, nil
}

func (s *Source) validate(q *trivia.Question, input BatchInput) *ValidationError {
	for _, v := range s.config.Validators {
		if verr := v.Validate(q, input); verr != nil {
			return verr
		}
	}
	return nil
}

func (s *Source) prior(token string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.served[token]
	return append([]string(nil), p...), ok
}

func (s *Source) remember(token string, qs []trivia.Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range qs {
		s.served[token] = append(s.served[token], q.Prompt)
	}
}

func (s *Source) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
