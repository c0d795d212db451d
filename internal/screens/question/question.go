// Package question runs one round: it fetches the batch, shows each
// question with its countdown and records answers.
package question

import (
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
)

// QuestionScreen implements screen.Screen for an active round.
type QuestionScreen struct {
	env     *screen.Env
	req     game.BatchRequest
	choices components.MultiChoice
	spin    spinner.Model
	last    *feedback

	// recap holds the screen to show next while the last answer of the
	// round stays on screen.
	recap screen.Screen
	done  bool
}

// recapDelay is how long the end-of-round recap stays up without input.
const recapDelay = 4 * time.Second

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)

// New creates a QuestionScreen for the round started by req.
func New(env *screen.Env, req game.BatchRequest) *QuestionScreen {
	return &QuestionScreen{
		env:  env,
		req:  req,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *QuestionScreen) Init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.fetch(s.req))
}

func (s *QuestionScreen) Title() string {
	if s.recap != nil {
		return "Round complete"
	}
	rd, ok := s.env.Game.Round()
	if !ok || rd.CategoryName == "" {
		return "Round"
	}
	return rd.CategoryName
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	if s.recap != nil {
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
	rd, ok := s.env.Game.Round()
	if !ok {
		return nil
	}
	switch rd.Status {
	case game.RoundReady:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "S", Description: "Skip"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case game.RoundFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Other category"},
		}
	case game.RoundEmpty:
		return []layout.KeyHint{{Key: "Enter", Description: "Other category"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *QuestionScreen) fetch(req game.BatchRequest) tea.Cmd {
	src, env := s.env.Source, s.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		qs, err := src.FetchQuestions(ctx, req.Query)
		return batchMsg{roundID: req.RoundID, questions: qs, err: err}
	}
}

// tick schedules the next countdown tick for id.
func tick(id game.TimerID) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{id: id}
	})
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if s.recap != nil {
		return s.updateRecap(msg)
	}

	switch msg := msg.(type) {
	case batchMsg:
		return s.handleBatch(msg)

	case timerTickMsg:
		return s.handleTick(msg)

	case spinner.TickMsg:
		if rd, ok := s.env.Game.Round(); !ok || rd.Status != game.RoundLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuestionScreen) handleBatch(msg batchMsg) (screen.Screen, tea.Cmd) {
	err := s.env.Game.ReceiveBatch(msg.roundID, msg.questions, msg.err)
	if errors.Is(err, game.ErrStaleResponse) {
		return s, nil
	}
	if err != nil {
		s.env.Log().Printf("question: round %d: %v", msg.roundID, err)
		return s, nil
	}
	s.resetChoices()
	return s, tick(s.env.Game.TimerID())
}

// handleTick advances the countdown. Ticks for a replaced timer end their
// chain here.
func (s *QuestionScreen) handleTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	correct := s.currentCorrect()
	res, ok := s.env.Game.Tick(msg.id)
	if !ok {
		return s, nil
	}
	if !res.Expired {
		return s, tick(msg.id)
	}
	s.last = &feedback{record: res.Record, correct: correct, expired: true}
	return s.afterAnswer()
}

func (s *QuestionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	rd, ok := s.env.Game.Round()
	if !ok {
		return s, nil
	}

	switch rd.Status {
	case game.RoundReady:
		if msg.String() == "s" {
			return s.answer(rd.Cursor, game.Skip())
		}
		var picked int
		s.choices, picked = s.choices.Update(msg)
		if picked >= 0 {
			return s.answer(rd.Cursor, game.Choose(s.choices.Options[picked]))
		}

	case game.RoundFailed:
		switch msg.String() {
		case "r":
			req, err := s.env.Game.RetryRound()
			if err != nil {
				return s, nil
			}
			s.req = req
			return s, tea.Batch(s.spin.Tick, s.fetch(req))
		case "enter":
			return s.abandon()
		}

	case game.RoundEmpty:
		if msg.String() == "enter" {
			return s.abandon()
		}
	}
	return s, nil
}

func (s *QuestionScreen) answer(index int, a game.Answer) (screen.Screen, tea.Cmd) {
	correct := s.currentCorrect()
	rec, err := s.env.Game.AnswerQuestion(index, a)
	if err != nil {
		s.env.Log().Printf("question: answer: %v", err)
		return s, nil
	}
	s.last = &feedback{record: rec, correct: correct}
	return s.afterAnswer()
}

// afterAnswer moves to the next question. Once the round is over the
// screen shows a recap of the last answer before moving on.
func (s *QuestionScreen) afterAnswer() (screen.Screen, tea.Cmd) {
	switch s.env.Game.State() {
	case game.StateAnswering:
		s.resetChoices()
		return s, tick(s.env.Game.TimerID())
	case game.StateSummary:
		s.recap = s.env.Flow.Summary()
	default:
		s.recap = s.env.Flow.Categories()
	}
	return s, tea.Tick(recapDelay, func(time.Time) tea.Msg { return continueMsg{} })
}

// updateRecap waits for Enter, space or the recap timeout. Countdown ticks
// from the finished round are dropped here.
func (s *QuestionScreen) updateRecap(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case continueMsg:
		return s.leave(s.recap)
	case tea.KeyPressMsg:
		if k := msg.String(); k == "enter" || k == "space" {
			return s.leave(s.recap)
		}
	}
	return s, nil
}

func (s *QuestionScreen) abandon() (screen.Screen, tea.Cmd) {
	if err := s.env.Game.AbandonRound(); err != nil {
		return s, nil
	}
	if s.env.Game.State() == game.StateSummary {
		return s.leave(s.env.Flow.Summary())
	}
	return s.leave(s.env.Flow.Categories())
}

func (s *QuestionScreen) leave(next screen.Screen) (screen.Screen, tea.Cmd) {
	s.done = true
	return s, router.Go(next)
}

func (s *QuestionScreen) resetChoices() {
	if _, choices, ok := s.env.Game.CurrentQuestion(); ok {
		s.choices = components.NewMultiChoice(choices)
	}
}

func (s *QuestionScreen) currentCorrect() string {
	q, _, _ := s.env.Game.CurrentQuestion()
	return q.CorrectAnswer
}
