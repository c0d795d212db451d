package game

import "errors"

var (
	// ErrSetupFailure wraps a failed session-token acquisition. Setup can be
	// retried with the same inputs.
	ErrSetupFailure = errors.New("setup failed")
	// ErrNoCategoriesAvailable is returned when a random pick finds every
	// category consumed.
	ErrNoCategoriesAvailable = errors.New("no categories available")
	// ErrEmptyQuestionBatch means the source returned too few questions to
	// play a round.
	ErrEmptyQuestionBatch = errors.New("empty question batch")
	// ErrStaleResponse means an async result arrived for a request that is no
	// longer current. The result was discarded.
	ErrStaleResponse = errors.New("stale response")

	// ErrInvalidIdentity is returned for an empty player name.
	ErrInvalidIdentity = errors.New("player name must not be empty")
	// ErrInvalidDifficulty is returned for a difficulty outside easy, medium, hard.
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")
	// ErrCategoryConsumed is returned when a category was already played.
	ErrCategoryConsumed = errors.New("category already played")
	// ErrUnknownCategory is returned for an id missing from the category list.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrWrongState is returned when an operation is invoked in a state that
	// does not accept it.
	ErrWrongState = errors.New("operation not allowed in current state")
	// ErrQuestionIndex is returned when an answer targets a question other
	// than the current one.
	ErrQuestionIndex = errors.New("answer does not match current question")
)
