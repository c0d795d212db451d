// Package router holds the active screen and swaps it as the game moves
// from one phase to the next.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/screen"
)

// ReplaceScreenMsg makes Screen the active screen. The previous screen is
// discarded; the game never navigates back.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Go returns a command that navigates to s.
func Go(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router owns the active screen.
type Router struct {
	active screen.Screen
	visits int
}

// New creates a Router showing initial. Its Init is left to the caller.
func New(initial screen.Screen) *Router {
	return &Router{active: initial, visits: 1}
}

// Replace activates s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	r.visits++
	return s.Init()
}

// Active returns the screen currently shown.
func (r *Router) Active() screen.Screen { return r.active }

// Visits counts the screens shown so far, the initial one included.
func (r *Router) Visits() int { return r.visits }

// Update handles navigation and forwards everything else to the active
// screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(m.Screen)
	}
	if r.active == nil {
		return nil
	}
	var cmd tea.Cmd
	r.active, cmd = r.active.Update(msg)
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
