// Package game implements the trivia game flow: setup, category rounds,
// timed answering and the final summary.
package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/trivia/internal/trivia"
)

// Controller owns the Session and every transition of the game flow.
// It is not safe for concurrent use; the TUI calls it from Update only.
type Controller struct {
	source trivia.Source
	rng    Rand
	newID  func() string

	state   State
	session *Session

	categories []trivia.Category
	round      *Round

	setupSeq uint64
	roundSeq uint64

	timerSeq  uint64
	timerID   TimerID
	remaining int
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand injects the randomness source.
func WithRand(r Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewController creates a Controller in the Setup state. The source is
// only used by CompleteSetup; async callers perform I/O themselves.
func NewController(src trivia.Source, opts ...Option) *Controller {
	c := &Controller{
		source: src,
		rng:    globalRand{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = &Session{ID: c.newID()}
	return c
}

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Session returns a copy of the session.
func (c *Controller) Session() Session { return c.session.clone() }

// Round returns a copy of the active round.
func (c *Controller) Round() (Round, bool) {
	if c.round == nil {
		return Round{}, false
	}
	return c.round.clone(), true
}

// CurrentQuestion returns the question under the cursor and its shuffled
// choices.
func (c *Controller) CurrentQuestion() (trivia.Question, []string, bool) {
	r := c.round
	if c.state != StateAnswering || r == nil || r.Status != RoundReady || r.Cursor >= len(r.Questions) {
		return trivia.Question{}, nil, false
	}
	return r.Questions[r.Cursor], append([]string(nil), r.Choices[r.Cursor]...), true
}

// CompleteSetup validates the input, acquires a session token and moves
// to CategoryPick.
func (c *Controller) CompleteSetup(ctx context.Context, identity string, d trivia.Difficulty) error {
	if c.source == nil {
		return fmt.Errorf("%w: no trivia source configured", ErrSetupFailure)
	}
	t, err := c.BeginSetup(identity, d)
	if err != nil {
		return err
	}
	token, err := c.source.RequestSessionToken(ctx)
	return c.FinishSetup(t, token, err)
}

// BeginSetup validates the input and issues a ticket for the token
// request. A later BeginSetup supersedes earlier tickets.
func (c *Controller) BeginSetup(identity string, d trivia.Difficulty) (SetupTicket, error) {
	if c.state != StateSetup {
		return SetupTicket{}, fmt.Errorf("%w: setup in %s", ErrWrongState, c.state)
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return SetupTicket{}, ErrInvalidIdentity
	}
	if !d.Valid() {
		return SetupTicket{}, ErrInvalidDifficulty
	}
	c.setupSeq++
	return SetupTicket{ID: c.setupSeq, Identity: identity, Difficulty: d}, nil
}

// FinishSetup applies the outcome of the token request for t.
func (c *Controller) FinishSetup(t SetupTicket, token string, err error) error {
	if c.state != StateSetup || t.ID != c.setupSeq {
		return ErrStaleResponse
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSetupFailure, err)
	}
	if token == "" {
		return fmt.Errorf("%w: empty session token", ErrSetupFailure)
	}

	c.session.PlayerIdentity = t.Identity
	c.session.Difficulty = t.Difficulty
	c.session.AuthToken = token
	c.state = StateCategoryPick
	return nil
}

// SetCategories stores the category list used to resolve picks.
func (c *Controller) SetCategories(cats []trivia.Category) {
	c.categories = slices.Clone(cats)
}

// Categories returns the full category list in source order.
func (c *Controller) Categories() []trivia.Category {
	return slices.Clone(c.categories)
}

// AvailableCategories returns the unconsumed categories in source order.
func (c *Controller) AvailableCategories() []trivia.Category {
	var out []trivia.Category
	for _, cat := range c.categories {
		if !slices.Contains(c.session.ConsumedCategories, cat.ID) {
			out = append(out, cat)
		}
	}
	return out
}

// PickCategory starts a round and returns the batch request the caller
// must perform. Nothing is mutated when an error is returned.
func (c *Controller) PickCategory(choice CategoryChoice) (BatchRequest, error) {
	if c.state != StateCategoryPick {
		return BatchRequest{}, fmt.Errorf("%w: pick category in %s", ErrWrongState, c.state)
	}

	var cat trivia.Category
	if choice.Random {
		avail := c.AvailableCategories()
		if len(avail) == 0 {
			return BatchRequest{}, ErrNoCategoriesAvailable
		}
		cat = avail[c.rng.IntN(len(avail))]
	} else {
		if slices.Contains(c.session.ConsumedCategories, choice.ID) {
			return BatchRequest{}, fmt.Errorf("%w: %d", ErrCategoryConsumed, choice.ID)
		}
		found, ok := c.lookupCategory(choice.ID)
		if !ok && c.categories != nil {
			return BatchRequest{}, fmt.Errorf("%w: %d", ErrUnknownCategory, choice.ID)
		}
		cat = found
		cat.ID = choice.ID
	}

	c.session.ConsumedCategories = append(c.session.ConsumedCategories, cat.ID)
	c.session.ActiveCategory = trivia.IntPtr(cat.ID)
	c.state = StateAnswering
	return c.startRound(cat), nil
}

func (c *Controller) lookupCategory(id int) (trivia.Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return trivia.Category{}, false
}

func (c *Controller) startRound(cat trivia.Category) BatchRequest {
	c.roundSeq++
	c.round = &Round{
		ID:           c.roundSeq,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Status:       RoundLoading,
	}
	return BatchRequest{
		RoundID: c.round.ID,
		Query: trivia.Query{
			Amount:     QuestionsPerRound,
			CategoryID: trivia.IntPtr(cat.ID),
			Difficulty: c.session.Difficulty,
			Token:      c.session.AuthToken,
		},
	}
}

// ReceiveBatch applies the result of a round's fetch. Results for any
// round other than the loading one are discarded with ErrStaleResponse.
func (c *Controller) ReceiveBatch(roundID uint64, qs []trivia.Question, fetchErr error) error {
	r := c.round
	if c.state != StateAnswering || r == nil || r.ID != roundID || r.Status != RoundLoading {
		return ErrStaleResponse
	}

	if fetchErr != nil {
		r.Status = RoundFailed
		r.Err = fetchErr
		return fmt.Errorf("fetch questions: %w", fetchErr)
	}
	if len(qs) < QuestionsPerRound {
		r.Status = RoundEmpty
		return fmt.Errorf("%w: got %d of %d questions", ErrEmptyQuestionBatch, len(qs), QuestionsPerRound)
	}

	r.Questions = slices.Clone(qs[:QuestionsPerRound])
	r.Choices = make([][]string, len(r.Questions))
	for i, q := range r.Questions {
		r.Choices[i] = c.shuffle(q.Answers())
	}
	if r.CategoryName == "" {
		r.CategoryName = r.Questions[0].Category
	}
	r.Status = RoundReady
	r.Cursor = 0
	c.startTimer()
	return nil
}

func (c *Controller) shuffle(in []string) []string {
	out := slices.Clone(in)
	for i := len(out) - 1; i > 0; i-- {
		j := c.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// RetryRound re-issues the fetch for a failed round under a new round id.
func (c *Controller) RetryRound() (BatchRequest, error) {
	if c.state != StateAnswering || c.round == nil || c.round.Status != RoundFailed {
		return BatchRequest{}, fmt.Errorf("%w: no failed round to retry", ErrWrongState)
	}
	return c.startRound(trivia.Category{ID: c.round.CategoryID, Name: c.round.CategoryName}), nil
}

// AbandonRound leaves an empty or failed round. The category stays
// consumed and the round does not count toward the game. If no category
// is left to play the game ends.
func (c *Controller) AbandonRound() error {
	if c.state != StateAnswering || c.round == nil ||
		(c.round.Status != RoundEmpty && c.round.Status != RoundFailed) {
		return fmt.Errorf("%w: no unplayable round to abandon", ErrWrongState)
	}

	c.leaveRound()
	return nil
}

// AnswerQuestion resolves the question at index. Manual submissions,
// manual skips and timer expiry all go through here.
func (c *Controller) AnswerQuestion(index int, a Answer) (AnswerRecord, error) {
	r := c.round
	if c.state != StateAnswering || r == nil || r.Status != RoundReady {
		return AnswerRecord{}, fmt.Errorf("%w: answer in %s", ErrWrongState, c.state)
	}
	if index != r.Cursor {
		return AnswerRecord{}, fmt.Errorf("%w: got %d, current is %d", ErrQuestionIndex, index, r.Cursor)
	}

	q := r.Questions[r.Cursor]
	budget := int(TimeBudget(c.session.Difficulty).Seconds())
	rec := AnswerRecord{
		Question:  q.Prompt,
		Category:  q.Category,
		Skipped:   a.Skipped,
		TimeTaken: max(budget-c.remaining, 0),
	}
	if rec.Category == "" {
		rec.Category = r.CategoryName
	}
	if !a.Skipped {
		rec.Answer = a.Text
		rec.Correct = a.Text == q.CorrectAnswer
	}

	c.session.AnswerLog = append(c.session.AnswerLog, rec)
	c.session.TotalAnswered++
	if rec.Correct {
		c.session.Score++
	}

	r.Cursor++
	if r.Cursor < len(r.Questions) {
		c.startTimer()
		return rec, nil
	}

	c.session.RoundsCompleted++
	c.leaveRound()
	return rec, nil
}

// leaveRound closes the active round. The game ends once RoundsPerGame
// rounds are complete or no category is left to play.
func (c *Controller) leaveRound() {
	c.round = nil
	c.session.ActiveCategory = nil
	if c.session.RoundsCompleted >= RoundsPerGame ||
		(c.categories != nil && len(c.AvailableCategories()) == 0) {
		c.finish()
		return
	}
	c.stopTimer()
	c.state = StateCategoryPick
}

func (c *Controller) finish() {
	c.stopTimer()
	c.session.Completed = true
	c.state = StateSummary
}

// Summary derives the results from the answer log.
func (c *Controller) Summary() Summary {
	return BuildSummary(c.session.AnswerLog)
}

// NewGame discards the session and returns to Setup. Outstanding setup
// tickets, rounds and timers become stale.
func (c *Controller) NewGame() {
	c.stopTimer()
	c.round = nil
	c.setupSeq++
	c.roundSeq++
	c.session = &Session{ID: c.newID()}
	c.state = StateSetup
}
