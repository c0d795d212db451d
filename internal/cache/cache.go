// Package cache keeps the public category list close to the game so that
// repeated category screens do not hit the question source.
package cache

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/trivia/internal/trivia"
)

// CategoryCache stores the category list.
type CategoryCache interface {
	// Get returns the cached list. ok is false on a miss.
	Get(ctx context.Context) (cats []trivia.Category, ok bool, err error)

	// Set replaces the cached list.
	Set(ctx context.Context, cats []trivia.Category) error
}

// CachedSource serves ListCategories from a CategoryCache and delegates
// everything else to the wrapped source.
type CachedSource struct {
	trivia.Source
	cache  CategoryCache
	logger *log.Logger
	sf     singleflight.Group
}

var _ trivia.Source = (*CachedSource)(nil)

// WithCategoryCache wraps src. A nil logger discards cache diagnostics.
func WithCategoryCache(src trivia.Source, c CategoryCache, logger *log.Logger) *CachedSource {
	return &CachedSource{Source: src, cache: c, logger: logger}
}

// ListCategories returns the cached list, loading it from the source on a
// miss. Concurrent misses share one upstream call. A failing cache is
// treated as a miss.
func (s *CachedSource) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	if cats, ok := s.lookup(ctx); ok {
		return cats, nil
	}

	v, err, _ := s.sf.Do("categories", func() (any, error) {
		if cats, ok := s.lookup(ctx); ok {
			return cats, nil
		}
		cats, err := s.Source.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cats); err != nil {
			s.logf("cache: set categories: %v", err)
		}
		return cats, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]trivia.Category)), nil
}

func (s *CachedSource) lookup(ctx context.Context) ([]trivia.Category, bool) {
	cats, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logf("cache: get categories: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return cats, true
}

func (s *CachedSource) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func clone(cats []trivia.Category) []trivia.Category {
	if cats == nil {
		return nil
	}
	return append([]trivia.Category(nil), cats...)
}
