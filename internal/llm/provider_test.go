package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_FIFOAndRecording(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"c":3}`)})

	resp, err := mock.Generate(context.Background(), Request{System: "sys"})
	if err != nil {
		t.Fatal(err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != StopEnd {
		t.Fatalf("unexpected first response: %+v", resp)
	}

	var rl *ErrRateLimit
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if resp, _ := mock.Generate(context.Background(), Request{}); string(resp.Content) != `{"c":3}` {
		t.Fatalf("appended response not served: %+v", resp)
	}

	var unavail *ErrProviderUnavailable
	if _, err := mock.Generate(context.Background(), Request{}); !errors.As(err, &unavail) {
		t.Fatalf("empty queue should be unavailable, got %v", err)
	}
	if mock.CallCount() != 4 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls not recorded: %d", mock.CallCount())
	}
}

func TestPurposeContext(t *testing.T) {
	if p := PurposeFrom(context.Background()); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if p := PurposeFrom(WithPurpose(context.Background(), "trivia-batch")); p != "trivia-batch" {
		t.Fatalf("expected 'trivia-batch', got %q", p)
	}
}

func TestNormalizeStop(t *testing.T) {
	table := map[string]string{"length": StopMaxTokens}
	if got := normalizeStop(table, "length"); got != StopMaxTokens {
		t.Errorf("length -> %q", got)
	}
	if got := normalizeStop(table, "whatever"); got != StopEnd {
		t.Errorf("unknown reason -> %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
