package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

// MultiChoice is a numbered answer picker. Number keys pick directly,
// arrows move the cursor and Enter picks the highlighted option.
type MultiChoice struct {
	Options  []string
	Selected int
}

// NewMultiChoice creates a picker with the first option highlighted.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options}
}

// Update handles a key press. The int is the picked option index, or -1
// when the key did not pick anything.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Options) > 0 {
			return m, m.Selected
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				return m, i
			}
		}
	}
	return m, -1
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render(fmt.Sprintf("▸ %d)  %s", i+1, opt)))
		} else {
			b.WriteString(theme.Unselected.Render(fmt.Sprintf("  %d)  %s", i+1, opt)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
