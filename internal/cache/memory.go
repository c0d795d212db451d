package cache

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/trivia/internal/trivia"
)

// Memory is an in-process CategoryCache. A zero TTL never expires.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	cats    []trivia.Category
	expires time.Time
	set     bool
}

// NewMemory creates a Memory cache using the wall clock.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, now: time.Now}
}

func (m *Memory) Get(_ context.Context) ([]trivia.Category, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, false, nil
	}
	if m.ttl > 0 && !m.now().Before(m.expires) {
		m.cats, m.set = nil, false
		return nil, false, nil
	}
	return clone(m.cats), true, nil
}

func (m *Memory) Set(_ context.Context, cats []trivia.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cats = clone(cats)
	m.set = true
	m.expires = m.now().Add(m.ttl)
	return nil
}
