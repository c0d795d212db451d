package trivia

import (
	"context"
	"sync"
)

// MockBatch is a canned FetchQuestions result for the MockSource.
type MockBatch struct {
	Questions []Question
	Err       error
}

// MockSource is a deterministic Source for testing.
// Batches are returned in FIFO order and all queries are recorded.
type MockSource struct {
	mu sync.Mutex

	Token         string
	TokenErr      error
	Categories    []Category
	CategoriesErr error

	batches []MockBatch

	TokenCalls    int
	CategoryCalls int
	Queries       []Query
}

// NewMockSource creates a MockSource with the given canned batches.
func NewMockSource(batches ...MockBatch) *MockSource {
	return &MockSource{Token: "mock-token", batches: batches}
}

func (m *MockSource) RequestSessionToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokenCalls++
	if m.TokenErr != nil {
		return "", m.TokenErr
	}
	return m.Token, nil
}

func (m *MockSource) ListCategories(_ context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CategoryCalls++
	if m.CategoriesErr != nil {
		return nil, m.CategoriesErr
	}
	return append([]Category(nil), m.Categories...), nil
}

// FetchQuestions returns the next canned batch, or an UnavailableError
// once the queue is empty.
func (m *MockSource) FetchQuestions(_ context.Context, q Query) ([]Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, q)
	if len(m.batches) == 0 {
		return nil, &UnavailableError{Op: "questions"}
	}

	b := m.batches[0]
	m.batches = m.batches[1:]
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Questions, nil
}

// AddBatch appends a canned batch to the queue.
func (m *MockSource) AddBatch(b MockBatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, b)
}

// QueryCount returns the number of FetchQuestions calls made.
func (m *MockSource) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
