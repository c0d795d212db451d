package game

import (
	"time"

	"github.com/abhisek/trivia/internal/trivia"
)

const (
	// QuestionsPerRound is the fixed round size N.
	QuestionsPerRound = 3

	// RoundsPerGame is the number of completed rounds M that ends a game.
	RoundsPerGame = 3
)

// TimeBudget returns the per-question countdown for a difficulty.
func TimeBudget(d trivia.Difficulty) time.Duration {
	switch d {
	case trivia.DifficultyEasy:
		return 90 * time.Second
	case trivia.DifficultyMedium:
		return 60 * time.Second
	case trivia.DifficultyHard:
		return 30 * time.Second
	default:
		return 0
	}
}

// State is the phase of the game flow.
type State int

const (
	StateSetup        State = iota // Waiting for name and difficulty
	StateCategoryPick              // Choosing the next category
	StateAnswering                 // A round is loading or in progress
	StateSummary                   // Game over
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "setup"
	case StateCategoryPick:
		return "category-pick"
	case StateAnswering:
		return "answering"
	case StateSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Session is the record of one play-through.
type Session struct {
	// ID identifies the play-through in logs.
	ID string

	// PlayerIdentity is the display name, set once at setup.
	PlayerIdentity string

	// Difficulty is set once at setup and picks the time budget.
	Difficulty trivia.Difficulty

	// AuthToken is the source session token used for every fetch.
	AuthToken string

	// ConsumedCategories lists category ids in the order they were picked.
	ConsumedCategories []int

	// ActiveCategory is the category being played, nil between rounds.
	ActiveCategory *int

	// Score counts correct, non-skipped answers.
	Score int

	// TotalAnswered counts resolved questions. Always len(AnswerLog).
	TotalAnswered int

	// AnswerLog is append-only.
	AnswerLog []AnswerRecord

	// RoundsCompleted counts rounds that resolved all their questions.
	RoundsCompleted int

	// Completed is set once, when the game ends.
	Completed bool
}

func (s *Session) clone() Session {
	out := *s
	out.ConsumedCategories = append([]int(nil), s.ConsumedCategories...)
	out.AnswerLog = append([]AnswerRecord(nil), s.AnswerLog...)
	if s.ActiveCategory != nil {
		out.ActiveCategory = trivia.IntPtr(*s.ActiveCategory)
	}
	return out
}

// AnswerRecord is the immutable log entry for one resolved question.
type AnswerRecord struct {
	Question string
	Category string
	Answer   string // empty when skipped
	Correct  bool
	Skipped  bool

	// TimeTaken is whole seconds spent on the question.
	TimeTaken int
}

// Answer is the player's response to a question.
type Answer struct {
	Text    string
	Skipped bool
}

// Choose returns an Answer selecting text.
func Choose(text string) Answer { return Answer{Text: text} }

// Skip returns an Answer that skips the question.
func Skip() Answer { return Answer{Skipped: true} }

// CategoryChoice is either a concrete category id or a random pick.
type CategoryChoice struct {
	ID     int
	Random bool
}

// Random returns a choice asking the controller to pick uniformly among
// the unconsumed categories.
func Random() CategoryChoice { return CategoryChoice{Random: true} }

// PickID returns a choice for a concrete category.
func PickID(id int) CategoryChoice { return CategoryChoice{ID: id} }

// RoundStatus is the load status of the active round.
type RoundStatus int

const (
	RoundLoading RoundStatus = iota
	RoundReady
	RoundEmpty
	RoundFailed
)

// Round is the category currently being played.
type Round struct {
	ID           uint64
	CategoryID   int
	CategoryName string
	Status       RoundStatus

	Questions []trivia.Question

	// Choices holds the shuffled answers for each question, fixed for the
	// lifetime of the round.
	Choices [][]string

	// Cursor is the index of the current question.
	Cursor int

	// Err is the fetch error of a failed round.
	Err error
}

func (r *Round) clone() Round {
	out := *r
	out.Questions = append([]trivia.Question(nil), r.Questions...)
	out.Choices = make([][]string, len(r.Choices))
	for i, c := range r.Choices {
		out.Choices[i] = append([]string(nil), c...)
	}
	return out
}

// SetupTicket identifies one setup attempt.
type SetupTicket struct {
	ID         uint64
	Identity   string
	Difficulty trivia.Difficulty
}

// BatchRequest is the fetch a screen must perform for a round.
type BatchRequest struct {
	RoundID uint64
	Query   trivia.Query
}

// TimerID identifies one running countdown. Zero means no timer.
type TimerID uint64

// TickResult reports the effect of a countdown tick.
type TickResult struct {
	Remaining int

	// Expired is set when the tick reached zero and skipped the question.
	Expired bool
	Record  AnswerRecord
}

// Rand is the randomness used for category picks and answer shuffling.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}
