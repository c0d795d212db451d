package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// LoggingProvider is a decorator that logs every LLM request.
type LoggingProvider struct {
	inner  Provider
	logger *log.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger *log.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start).Milliseconds()

	purpose := PurposeFrom(ctx)
	if err != nil {
		l.logger.Printf("llm %s failed model=%s latency_ms=%d prompt_chars=%d err=%v",
			purpose, l.inner.ModelID(), latency, promptSize(req), err)
		return nil, err
	}

	var cost string
	if mc := LookupCost(resp.Model); mc != nil {
		cost = fmt.Sprintf(" cost_usd=%.6f", mc.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
	}
	l.logger.Printf("llm %s ok model=%s latency_ms=%d in=%d out=%d%s",
		purpose, resp.Model, latency, resp.Usage.InputTokens, resp.Usage.OutputTokens, cost)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// promptSize is the character count of the system prompt and messages.
func promptSize(req Request) int {
	var b strings.Builder
	b.WriteString(req.System)
	for _, m := range req.Messages {
		b.WriteString(m.Content)
	}
	return b.Len()
}
