package trivia

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidParameter means the source rejected the query arguments.
	ErrInvalidParameter = errors.New("trivia source rejected the query parameters")
	// ErrTokenNotFound means the session token is unknown to the source.
	ErrTokenNotFound = errors.New("session token not found")
	// ErrTokenExhausted means every question reachable with the token has been served.
	ErrTokenExhausted = errors.New("session token has no questions left")
	// ErrMalformedResponse means the source returned a payload that could not be decoded.
	ErrMalformedResponse = errors.New("malformed response from trivia source")
)

// RateLimitError indicates the source throttled the request.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("trivia source rate limited (retry after %s)", e.RetryAfter)
}

// UnavailableError wraps transport failures and unexpected HTTP statuses.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trivia source unavailable (%s): %v", e.Op, e.Err)
	}
	return fmt.Sprintf("trivia source unavailable (%s)", e.Op)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
