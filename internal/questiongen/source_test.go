package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/trivia"
)

func batchJSON(prompts ...string) json.RawMessage {
	type q struct {
		Question         string   `json:"question"`
		Type             string   `json:"type"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	}
	out := struct {
		Questions []q `json:"questions"`
	}{}
	for _, p := range prompts {
		out.Questions = append(out.Questions, q{
			Question:         p,
			Type:             "multiple",
			CorrectAnswer:    "Mars",
			IncorrectAnswers: []string{"Venus", "Jupiter", "Saturn"},
		})
	}
	b, _ := json.Marshal(out)
	return b
}

func TestFetchQuestions_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON("Q1", "Q2", "Q3")})
	src := New(mock, DefaultConfig(), nil)

	qs, err := src.FetchQuestions(context.Background(), trivia.Query{
		Amount:     3,
		CategoryID: trivia.IntPtr(17),
		Difficulty: trivia.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].Category != "Science & Nature" || qs[0].Difficulty != trivia.DifficultyHard {
		t.Errorf("unexpected labels: %+v", qs[0])
	}
	if qs[0].Kind != trivia.KindMultiple {
		t.Errorf("kind = %q", qs[0].Kind)
	}

	req := mock.Calls[0]
	if req.Schema != BatchSchema {
		t.Error("request did not use the batch schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Category: Science & Nature") || !strings.Contains(msg, "Difficulty: hard") {
		t.Errorf("unexpected user message: %q", msg)
	}
}

func TestFetchQuestions_DropsInvalidAndRefills(t *testing.T) {
	bad := json.RawMessage(`{"questions":[
		{"question":"Good one","type":"multiple","correct_answer":"A","incorrect_answers":["B","C","D"]},
		{"question":"Dup options","type":"multiple","correct_answer":"A","incorrect_answers":["a","C","D"]},
		{"question":"","type":"multiple","correct_answer":"A","incorrect_answers":["B","C","D"]}
	]}`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: bad},
		llm.MockResponse{Content: batchJSON("Refill 1", "Refill 2")},
	)
	src := New(mock, DefaultConfig(), nil)

	qs, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3, CategoryID: trivia.IntPtr(9)})
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if qs[0].Prompt != "Good one" || qs[1].Prompt != "Refill 1" {
		t.Fatalf("unexpected prompts: %q, %q", qs[0].Prompt, qs[1].Prompt)
	}
	if !strings.Contains(mock.Calls[1].Messages[0].Content, "Number of questions: 2") {
		t.Errorf("refill did not ask for the remainder: %q", mock.Calls[1].Messages[0].Content)
	}
}

func TestFetchQuestions_ShortAfterAttempts(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: batchJSON("Only one")},
		llm.MockResponse{Content: batchJSON()},
	)
	src := New(mock, DefaultConfig(), nil)

	qs, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 attempts, got %d", mock.CallCount())
	}
}

func TestFetchQuestions_TokenScopesRepeats(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: batchJSON("Q1", "Q2", "Q3")},
		llm.MockResponse{Content: batchJSON("Q1", "Q4", "Q5")},
		llm.MockResponse{Content: batchJSON("Q6")},
	)
	src := New(mock, DefaultConfig(), nil)
	token, _ := src.RequestSessionToken(context.Background())

	if _, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3, Token: token}); err != nil {
		t.Fatal(err)
	}
	qs, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3, Token: token})
	if err != nil {
		t.Fatal(err)
	}

	var prompts []string
	for _, q := range qs {
		prompts = append(prompts, q.Prompt)
	}
	if strings.Join(prompts, ",") != "Q4,Q5,Q6" {
		t.Fatalf("prompts = %v, want Q4,Q5,Q6", prompts)
	}
	if !strings.Contains(mock.Calls[1].Messages[0].Content, "1. Q1") {
		t.Error("prior prompts missing from second request")
	}
}

func TestFetchQuestions_UnknownToken(t *testing.T) {
	src := New(llm.NewMockProvider(), DefaultConfig(), nil)
	_, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3, Token: "nope"})
	if !errors.Is(err, trivia.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestFetchQuestions_InvalidParameters(t *testing.T) {
	src := New(llm.NewMockProvider(), DefaultConfig(), nil)

	for _, q := range []trivia.Query{
		{Amount: 0},
		{Amount: 50},
		{Amount: 3, CategoryID: trivia.IntPtr(4)},
	} {
		if _, err := src.FetchQuestions(context.Background(), q); !errors.Is(err, trivia.ErrInvalidParameter) {
			t.Errorf("query %+v: expected ErrInvalidParameter, got %v", q, err)
		}
	}
}

func TestFetchQuestions_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	src := New(mock, DefaultConfig(), nil)

	_, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3})
	var ue *trivia.UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	var pu *llm.ErrProviderUnavailable
	if !errors.As(err, &pu) {
		t.Fatal("provider error not wrapped")
	}
}

func TestFetchQuestions_MalformedContent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"just text"`)})
	src := New(mock, DefaultConfig(), nil)

	_, err := src.FetchQuestions(context.Background(), trivia.Query{Amount: 3})
	if !errors.Is(err, trivia.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestListCategories_BuiltinTable(t *testing.T) {
	src := New(llm.NewMockProvider(), DefaultConfig(), nil)
	cats, err := src.ListCategories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 24 || cats[0].ID != 9 || cats[len(cats)-1].ID != 32 {
		t.Fatalf("unexpected categories: %v", cats)
	}
	cats[0].Name = "changed"
	if Categories()[0].Name != "General Knowledge" {
		t.Fatal("table mutated through returned slice")
	}
}

func TestRequestSessionToken_Unique(t *testing.T) {
	src := New(llm.NewMockProvider(), DefaultConfig(), nil)
	a, _ := src.RequestSessionToken(context.Background())
	b, _ := src.RequestSessionToken(context.Background())
	if a == "" || a == b {
		t.Fatalf("tokens not unique: %q %q", a, b)
	}
}
