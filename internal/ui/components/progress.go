package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/ui/theme"
)

// ProgressBar displays a horizontal bar. The summary screen stacks several
// of them as a bar chart.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Color       color.Color // Fill color; defaults to theme.Secondary
	Suffix      string      // Replaces the percentage when set
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	tail := ""
	switch {
	case p.Suffix != "":
		tail = "  " + p.Suffix
	case p.ShowPercent:
		tail = fmt.Sprintf("  %d%%", int(p.Percent*100))
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(tail), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}

	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	if tail != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(tail)
	}
	return result
}
