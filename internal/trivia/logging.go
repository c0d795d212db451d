package trivia

import (
	"context"
	"fmt"
	"log"
	"time"
)

// LoggingSource is a decorator that logs every source call.
type LoggingSource struct {
	inner  Source
	logger *log.Logger
}

// WithLogging wraps a Source with request logging. A nil logger
// returns s unchanged.
func WithLogging(s Source, logger *log.Logger) Source {
	if logger == nil {
		return s
	}
	return &LoggingSource{inner: s, logger: logger}
}

func (l *LoggingSource) RequestSessionToken(ctx context.Context) (string, error) {
	start := time.Now()
	token, err := l.inner.RequestSessionToken(ctx)
	l.record("token", start, err, "")
	return token, err
}

func (l *LoggingSource) ListCategories(ctx context.Context) ([]Category, error) {
	start := time.Now()
	cats, err := l.inner.ListCategories(ctx)
	l.record("categories", start, err, "count=%d", len(cats))
	return cats, err
}

func (l *LoggingSource) FetchQuestions(ctx context.Context, q Query) ([]Question, error) {
	start := time.Now()
	qs, err := l.inner.FetchQuestions(ctx, q)
	category := -1
	if q.CategoryID != nil {
		category = *q.CategoryID
	}
	l.record("questions", start, err, "amount=%d category=%d difficulty=%s got=%d",
		q.Amount, category, q.Difficulty, len(qs))
	return qs, err
}

func (l *LoggingSource) record(op string, start time.Time, err error, format string, args ...any) {
	latency := time.Since(start).Milliseconds()
	detail := ""
	if format != "" {
		detail = " " + fmt.Sprintf(format, args...)
	}
	if err != nil {
		l.logger.Printf("trivia %s failed latency_ms=%d%s err=%v", op, latency, detail, err)
		return
	}
	l.logger.Printf("trivia %s ok latency_ms=%d%s", op, latency, detail)
}
