package questiongen

// Config controls the behavior of the generated Source.
type Config struct {
	// Validators run in order on every generated question. A question
	// failing any of them is dropped from the batch.
	Validators []Validator

	// MaxTokens is the token budget for one batch response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAttempts bounds the generation calls made to fill one batch.
	MaxAttempts int

	// MaxPriorQuestions caps the already-served prompts listed in the
	// request.
	MaxPriorQuestions int

	// MaxBatch is the largest amount accepted per request.
	MaxBatch int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&UniquenessValidator{},
			&RepeatValidator{},
		},
		MaxTokens:         1024,
		Temperature:       0.8,
		MaxAttempts:       2,
		MaxPriorQuestions: 12,
		MaxBatch:          10,
	}
}
