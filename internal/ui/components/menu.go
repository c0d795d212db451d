package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = max(len(m.Items)-1, 0)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders every item.
func (m Menu) View() string {
	return m.ViewWindow(len(m.Items))
}

// ViewWindow renders at most rows items, scrolled so the selection stays
// visible. Scroll markers show when items are hidden.
func (m Menu) ViewWindow(rows int) string {
	if rows <= 0 || len(m.Items) == 0 {
		return ""
	}
	start, end := 0, len(m.Items)
	if end > rows {
		start = min(max(m.Selected-rows/2, 0), len(m.Items)-rows)
		end = start + rows
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	if start > 0 {
		b.WriteString(dim.Render("    ↑ more") + "\n")
	}
	for i := start; i < end; i++ {
		item := m.Items[i]
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ "+item.Label) + "\n")
		case item.Disabled:
			b.WriteString(dim.Render("    "+item.Label) + "\n")
		default:
			b.WriteString(theme.Unselected.Render("    "+item.Label) + "\n")
		}
	}
	if end < len(m.Items) {
		b.WriteString(dim.Render("    ↓ more") + "\n")
	}
	return b.String()
}
