// Package app wires the game screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/screens/categories"
	"github.com/abhisek/trivia/internal/screens/question"
	"github.com/abhisek/trivia/internal/screens/setup"
	"github.com/abhisek/trivia/internal/screens/summary"
	"github.com/abhisek/trivia/internal/screens/welcome"
	"github.com/abhisek/trivia/internal/ui/layout"
)

// flow builds the phase screens over a shared Env.
type flow struct {
	env *screen.Env
}

var _ screen.Flow = (*flow)(nil)

func (f *flow) Setup() screen.Screen      { return setup.New(f.env) }
func (f *flow) Categories() screen.Screen { return categories.New(f.env) }
func (f *flow) Summary() screen.Screen    { return summary.New(f.env) }

func (f *flow) Question(req game.BatchRequest) screen.Screen {
	return question.New(f.env, req)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screen.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel starting at the welcome screen. It sets
// env.Flow.
func newAppModel(env *screen.Env) AppModel {
	f := &flow{env: env}
	env.Flow = f
	return AppModel{
		env:    env,
		router: router.New(welcome.New(f.Setup)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the frame around the active screen.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	sess := m.env.Game.Session()
	header := layout.RenderHeader(title, layout.Status{
		Player:   sess.PlayerIdentity,
		Score:    sess.Score,
		Answered: sess.TotalAnswered,
	}, m.width)

	footerHints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program over env.
func Run(env *screen.Env) error {
	p := tea.NewProgram(newAppModel(env))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
