// Package llm talks to hosted language models through one small
// interface. Requests carry an optional JSON schema; replies are checked
// against it before they are returned.
package llm

import (
	"context"
	"encoding/json"
	"net/http"
)

// Provider generates one reply per request.
type Provider interface {
	// Generate returns the model's reply. With req.Schema set, Content is
	// JSON that passed the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn prompt. Trivia batches send one user message.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its structured output mode. Nil
	// means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 to 1
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the Anthropic tool name
// and the OpenAI schema name, so it must be kebab-case.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // the model that actually served the request
	StopReason string // StopEnd or StopMaxTokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// normalizeStop looks up a vendor stop reason. Unknown reasons count as
// StopEnd.
func normalizeStop[K comparable](table map[K]string, reason K) string {
	if s, ok := table[reason]; ok {
		return s
	}
	return StopEnd
}

// finish builds the Response for a vendor reply. When a schema was
// requested, a reply cut off at MaxTokens is rejected and the rest are
// validated against the schema.
func finish(req Request, content json.RawMessage, model, stop string, usage Usage) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// classifyStatus maps a vendor HTTP status onto the error types the retry
// layer understands.
func classifyStatus(status int, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrAuth{Status: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are passed through as direct IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
