package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	rulesAt      = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// cardArt is the question card drawn above the banner.
const cardArt = `╭─────────╮
│  ╭───╮  │
│  ╰─╮ │  │
│    ╰─╯  │
│    ●    │
╰─────────╯`

var blink = []string{"?", "!"}

type tickMsg time.Time

// WelcomeScreen shows a short splash and then hands over to setup.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Go(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	card := lipgloss.NewStyle().Foreground(theme.Accent).Render(cardArt)
	if w.elapsed >= bannerAt {
		mark := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(blink[w.ticks%len(blink)])
		lines := strings.Split(card, "\n")
		lines[0] = mark + "  " + lines[0] + "  " + mark
		card = strings.Join(lines, "\n")
	}
	sections := []string{card}

	if w.elapsed >= bannerAt {
		sections = append(sections, "", RenderBanner(width))
	}

	if w.elapsed >= rulesAt {
		rules := fmt.Sprintf("%d rounds · %d questions each · beat the clock",
			game.RoundsPerGame, game.QuestionsPerRound)
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(rules))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to start"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
