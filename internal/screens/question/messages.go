package question

import (
	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/trivia"
)

// batchMsg is sent when a round's question fetch finishes.
type batchMsg struct {
	roundID   uint64
	questions []trivia.Question
	err       error
}

// timerTickMsg is sent once a second for the countdown it was started for.
type timerTickMsg struct {
	id game.TimerID
}

// continueMsg ends the end-of-round recap.
type continueMsg struct{}

// feedback describes the previous answer, shown above the next question.
type feedback struct {
	record  game.AnswerRecord
	correct string
	expired bool
}
