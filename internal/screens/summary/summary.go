// Package summary shows the result report once a game ends.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
	"github.com/abhisek/trivia/internal/ui/theme"
)

// SummaryScreen displays the game summary.
type SummaryScreen struct {
	env     *screen.Env
	player  string
	summary game.Summary
	done    bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen from the controller's answer log.
func New(env *screen.Env) *SummaryScreen {
	return &SummaryScreen{
		env:     env,
		player:  env.Game.Session().PlayerIdentity,
		summary: env.Game.Summary(),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	sum := s.summary
	s.env.Log().Printf("summary: %s correct=%d incorrect=%d skipped=%d time=%ds",
		s.player, sum.Correct, sum.Incorrect, sum.Skipped, sum.TotalTime)
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "N", Description: "New game"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || s.done {
		return s, nil
	}
	switch kmsg.String() {
	case "n", "enter":
		s.done = true
		s.env.Game.NewGame()
		next := s.env.Flow.Setup()
		return s, router.Go(next)
	case "q", "esc":
		return s, tea.Quit
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(s.player, sum)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Score: %d/%d        Accuracy: %.0f%%        Time: %s",
		sum.Correct, sum.Total, sum.Accuracy*100, layout.Clock(sum.TotalTime))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	bars := []struct {
		label string
		count int
		color color.Color
	}{
		{"Correct  ", sum.Correct, theme.Success},
		{"Incorrect", sum.Incorrect, theme.Error},
		{"Skipped  ", sum.Skipped, theme.Warning},
	}
	for _, bar := range bars {
		pb := components.ProgressBar{
			Label:   bar.label,
			Percent: share(bar.count, sum.Total),
			Width:   cw,
			Color:   bar.color,
			Suffix:  fmt.Sprintf("%d", bar.count),
		}
		b.WriteString(components.Center(pb.View(), width))
		b.WriteString("\n")
	}

	if len(sum.Categories) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Categories")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")

		for _, cb := range sum.Categories {
			line := fmt.Sprintf("%-28s %d/%d correct   %d skipped   %s",
				cb.Category, cb.Correct, cb.Total, cb.Skipped, layout.Clock(cb.TotalTime))
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if cb.Total > 0 && cb.Correct == cb.Total {
				style = style.Foreground(theme.Success)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func headline(player string, sum game.Summary) string {
	switch {
	case sum.Total == 0:
		return "Game over"
	case sum.Correct == sum.Total:
		return fmt.Sprintf("Perfect game, %s!", player)
	case sum.Accuracy >= 0.5:
		return fmt.Sprintf("Well played, %s!", player)
	default:
		return fmt.Sprintf("Thanks for playing, %s!", player)
	}
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
