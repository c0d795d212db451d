package llm

import (
	"context"
	"fmt"
	"log"
)

// NewProvider builds the configured vendor provider. Calls go through
// retry first and then logging, so every attempt is logged. A nil logger
// skips the logging layer. The mock provider is returned bare.
func NewProvider(ctx context.Context, cfg Config, logger *log.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "mock":
		return NewMockProvider(), nil
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", cfg.Provider, err)
	}

	if logger != nil {
		base = WithLogging(base, logger)
	}
	return WithRetry(base, cfg.Retry), nil
}
