package screen

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/trivia"
)

// Flow builds the screen for each game phase. The app implements it so
// that phase screens never import each other.
type Flow interface {
	Setup() Screen
	Categories() Screen
	Question(req game.BatchRequest) Screen
	Summary() Screen
}

// Env is what every game screen shares.
type Env struct {
	Game   *game.Controller
	Source trivia.Source
	Flow   Flow
	Logger *log.Logger

	// Timeout bounds each Source call. Zero means no limit.
	Timeout time.Duration
}

// Context returns a context for one Source call.
func (e *Env) Context() (context.Context, context.CancelFunc) {
	if e.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), e.Timeout)
}

var discard = log.New(io.Discard, "", 0)

// Log returns the diagnostic logger, never nil.
func (e *Env) Log() *log.Logger {
	if e.Logger == nil {
		return discard
	}
	return e.Logger
}
