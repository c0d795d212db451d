package llm

import "errors"

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider speaks the OpenAI wire format to OpenRouter. Model
// ids such as "anthropic/claude-3-haiku" are sent as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = openRouterURL
	}
	inner, err := NewOpenAIProvider(OpenAIConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
