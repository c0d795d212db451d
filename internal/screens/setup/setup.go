// Package setup collects the player's name and difficulty and opens the
// game session.
package setup

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/trivia"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
	"github.com/abhisek/trivia/internal/ui/theme"
)

const maxNameLen = 24

type field int

const (
	fieldName field = iota
	fieldDifficulty
	fieldStart
)

// tokenMsg carries the outcome of the session token request.
type tokenMsg struct {
	ticket game.SetupTicket
	token  string
	err    error
}

// SetupScreen is the first screen of every game.
type SetupScreen struct {
	env        *screen.Env
	name       components.TextInput
	difficulty int
	focus      field
	spin       spinner.Model
	pending    bool
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a SetupScreen. The difficulty defaults to medium.
func New(env *screen.Env) *SetupScreen {
	return &SetupScreen{
		env:        env,
		name:       components.NewTextInput("Your name", maxNameLen),
		difficulty: 1,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *SetupScreen) Title() string {
	return "New Game"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.pending {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if s.focus == fieldDifficulty {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Difficulty"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *SetupScreen) selected() trivia.Difficulty {
	return trivia.Difficulties[s.difficulty]
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tokenMsg:
		return s.handleToken(msg)

	case spinner.TickMsg:
		if !s.pending {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.pending {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.focus == fieldName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % 3)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + 2) % 3)
	case "enter":
		if s.focus == fieldName {
			return s, s.setFocus(fieldDifficulty)
		}
		return s.start()
	}

	if s.focus == fieldDifficulty {
		switch msg.String() {
		case "left", "h":
			s.difficulty = (s.difficulty + len(trivia.Difficulties) - 1) % len(trivia.Difficulties)
		case "right", "l":
			s.difficulty = (s.difficulty + 1) % len(trivia.Difficulties)
		case "1", "2", "3":
			s.difficulty = int(msg.String()[0] - '1')
		}
		return s, nil
	}

	if s.focus == fieldName {
		s.errMsg = ""
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldName {
		return s.name.Focus()
	}
	s.name.Blur()
	return nil
}

// start validates the form and requests a session token.
func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	ticket, err := s.env.Game.BeginSetup(s.name.Value(), s.selected())
	if err != nil {
		if errors.Is(err, game.ErrInvalidIdentity) {
			s.name.Submit(false)
			s.errMsg = "Please enter a name."
			return s, s.setFocus(fieldName)
		}
		s.errMsg = err.Error()
		return s, nil
	}

	s.pending = true
	s.errMsg = ""
	s.name.Submit(true)
	return s, tea.Batch(s.spin.Tick, s.requestToken(ticket))
}

func (s *SetupScreen) requestToken(t game.SetupTicket) tea.Cmd {
	src, env := s.env.Source, s.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		token, err := src.RequestSessionToken(ctx)
		return tokenMsg{ticket: t, token: token, err: err}
	}
}

func (s *SetupScreen) handleToken(msg tokenMsg) (screen.Screen, tea.Cmd) {
	err := s.env.Game.FinishSetup(msg.ticket, msg.token, msg.err)
	if errors.Is(err, game.ErrStaleResponse) {
		return s, nil
	}
	s.pending = false
	if err != nil {
		s.env.Log().Printf("setup: %v", err)
		s.errMsg = fmt.Sprintf("Could not start the game (%v). Press Enter to try again.", err)
		return s, nil
	}

	s.env.Log().Printf("setup: session %s started for %q on %s",
		s.env.Game.Session().ID, msg.ticket.Identity, msg.ticket.Difficulty)
	next := s.env.Flow.Categories()
	return s, router.Go(next)
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw).Render("Who's playing?"))
	b.WriteString("\n\n")

	b.WriteString(s.label("Name", fieldName))
	b.WriteString("\n")
	b.WriteString(s.name.View())
	b.WriteString("\n\n")

	b.WriteString(s.label("Difficulty", fieldDifficulty))
	b.WriteString("\n")
	b.WriteString(s.renderDifficulties())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d seconds per question",
		int(game.TimeBudget(s.selected()).Seconds()))))
	b.WriteString("\n\n")

	switch {
	case s.pending:
		b.WriteString(s.spin.View() + " Opening a session...")
	default:
		b.WriteString(components.NewButton("Start", s.focus == fieldStart).View())
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cw).Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(b.String(), cw))
}

func (s *SetupScreen) label(text string, f field) string {
	if s.focus == f {
		return theme.Selected.Render(text)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(text)
}

func (s *SetupScreen) renderDifficulties() string {
	parts := make([]string, len(trivia.Difficulties))
	for i, d := range trivia.Difficulties {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.TextDim)
		if i == s.difficulty {
			style = style.Bold(true).Foreground(theme.BgDark).Background(theme.DifficultyColor(d))
		}
		parts[i] = style.Render(d.DisplayName())
	}
	return strings.Join(parts, " ")
}
