// Package screen defines the contract between the app model and the
// per-phase game screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/ui/layout"
)

// Screen is one phase of the game as shown in the content area. The app
// draws the header and footer around View.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
