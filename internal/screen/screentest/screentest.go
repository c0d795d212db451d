// Package screentest provides helpers for testing game screens without a
// running Bubble Tea program.
package screentest

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/trivia"
)

// Stub is a placeholder screen returned by Flow.
type Stub struct {
	Name string
	Req  game.BatchRequest
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Name }
func (s *Stub) Title() string                           { return s.Name }

// Flow records which phase screens were requested.
type Flow struct {
	Calls []string
}

var _ screen.Flow = (*Flow)(nil)

func (f *Flow) Setup() screen.Screen      { return f.record(&Stub{Name: "setup"}) }
func (f *Flow) Categories() screen.Screen { return f.record(&Stub{Name: "categories"}) }
func (f *Flow) Summary() screen.Screen    { return f.record(&Stub{Name: "summary"}) }

func (f *Flow) Question(req game.BatchRequest) screen.Screen {
	return f.record(&Stub{Name: "question", Req: req})
}

func (f *Flow) record(s *Stub) screen.Screen {
	f.Calls = append(f.Calls, s.Name)
	return s
}

// Last returns the most recent request, or "".
func (f *Flow) Last() string {
	if len(f.Calls) == 0 {
		return ""
	}
	return f.Calls[len(f.Calls)-1]
}

// fixedRand always returns 0 so shuffles and random picks are predictable.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

// NewEnv wires a controller over src with deterministic randomness.
func NewEnv(src trivia.Source) (*screen.Env, *Flow) {
	flow := &Flow{}
	return &screen.Env{
		Game:   game.NewController(src, game.WithRand(fixedRand{}), game.WithSessionIDs(func() string { return "test-session" })),
		Source: src,
		Flow:   flow,
	}, flow
}

// Key builds a key press from its String() form, e.g. "enter", "s", "2".
func Key(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(k)
	return tea.KeyPressMsg{Code: r[0], Text: k}
}

// Type sends each rune of text as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return s
}

// Collect runs cmd and returns every message it produces, expanding
// batches. Commands that sleep (tea.Tick) must not be passed in.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Deliver feeds every message from cmd back into s, returning the
// resulting screen and the commands it produced.
func Deliver(s screen.Screen, cmd tea.Cmd) (screen.Screen, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, msg := range Collect(cmd) {
		var next tea.Cmd
		s, next = s.Update(msg)
		if next != nil {
			cmds = append(cmds, next)
		}
	}
	return s, cmds
}
