// Package opentdb implements trivia.Source against the Open Trivia DB API.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/trivia/internal/trivia"
)

// DefaultBaseURL is the public Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// rateLimitWindow is the documented per-IP limit: one request every 5 seconds.
const rateLimitWindow = 5 * time.Second

// API response codes.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimit     = 5
)

// Client talks to the Open Trivia DB HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

// New creates a Client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ trivia.Source = (*Client)(nil)

type tokenResponse struct {
	ResponseCode    int    `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	Token           string `json:"token"`
}

type categoriesResponse struct {
	TriviaCategories []trivia.Category `json:"trivia_categories"`
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []trivia.Question `json:"results"`
}

// RequestSessionToken asks the API for a new session token.
func (c *Client) RequestSessionToken(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.getJSON(ctx, "token", "/api_token.php", url.Values{"command": {"request"}}, &resp); err != nil {
		return "", err
	}
	if err := codeError(resp.ResponseCode); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: empty token", trivia.ErrMalformedResponse)
	}
	return resp.Token, nil
}

// ListCategories returns the category table with names decoded.
func (c *Client) ListCategories(ctx context.Context) ([]trivia.Category, error) {
	var resp categoriesResponse
	if err := c.getJSON(ctx, "categories", "/api_category.php", nil, &resp); err != nil {
		return nil, err
	}
	if resp.TriviaCategories == nil {
		return nil, fmt.Errorf("%w: missing trivia_categories", trivia.ErrMalformedResponse)
	}
	cats := make([]trivia.Category, len(resp.TriviaCategories))
	for i, cat := range resp.TriviaCategories {
		cats[i] = trivia.Category{ID: cat.ID, Name: html.UnescapeString(cat.Name)}
	}
	return cats, nil
}

// FetchQuestions fetches a batch. When the token is exhausted it is reset
// once and the fetch is repeated.
func (c *Client) FetchQuestions(ctx context.Context, q trivia.Query) ([]trivia.Question, error) {
	qs, err := c.fetch(ctx, q)
	if errors.Is(err, trivia.ErrTokenExhausted) && q.Token != "" {
		if rerr := c.resetToken(ctx, q.Token); rerr != nil {
			return nil, fmt.Errorf("reset exhausted token: %w", rerr)
		}
		return c.fetch(ctx, q)
	}
	return qs, err
}

func (c *Client) fetch(ctx context.Context, q trivia.Query) ([]trivia.Question, error) {
	if q.Amount < 1 {
		return nil, fmt.Errorf("%w: amount must be positive", trivia.ErrInvalidParameter)
	}

	params := url.Values{"amount": {strconv.Itoa(q.Amount)}}
	if q.CategoryID != nil {
		params.Set("category", strconv.Itoa(*q.CategoryID))
	}
	if q.Difficulty != "" {
		params.Set("difficulty", string(q.Difficulty))
	}
	if q.Token != "" {
		params.Set("token", q.Token)
	}

	var resp questionsResponse
	if err := c.getJSON(ctx, "questions", "/api.php", params, &resp); err != nil {
		return nil, err
	}
	if resp.ResponseCode == codeNoResults {
		return []trivia.Question{}, nil
	}
	if err := codeError(resp.ResponseCode); err != nil {
		return nil, err
	}

	out := make([]trivia.Question, len(resp.Results))
	for i, r := range resp.Results {
		out[i] = decodeQuestion(r)
	}
	return out, nil
}

func (c *Client) resetToken(ctx context.Context, token string) error {
	var resp tokenResponse
	params := url.Values{"command": {"reset"}, "token": {token}}
	if err := c.getJSON(ctx, "reset", "/api_token.php", params, &resp); err != nil {
		return err
	}
	return codeError(resp.ResponseCode)
}

func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &trivia.UnavailableError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &trivia.RateLimitError{RetryAfter: rateLimitWindow}
	case resp.StatusCode != http.StatusOK:
		return &trivia.UnavailableError{Op: op, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &trivia.UnavailableError{Op: op, Err: err}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", trivia.ErrMalformedResponse, op, err)
	}
	return nil
}

func codeError(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeInvalidParam:
		return trivia.ErrInvalidParameter
	case codeTokenNotFound:
		return trivia.ErrTokenNotFound
	case codeTokenEmpty:
		return trivia.ErrTokenExhausted
	case codeRateLimit:
		return &trivia.RateLimitError{RetryAfter: rateLimitWindow}
	default:
		return fmt.Errorf("%w: response_code %d", trivia.ErrMalformedResponse, code)
	}
}

func decodeQuestion(q trivia.Question) trivia.Question {
	incorrect := make([]string, len(q.IncorrectAnswers))
	for i, a := range q.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(a)
	}
	return trivia.Question{
		Category:         html.UnescapeString(q.Category),
		Kind:             q.Kind,
		Difficulty:       q.Difficulty,
		Prompt:           html.UnescapeString(q.Prompt),
		CorrectAnswer:    html.UnescapeString(q.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
}
