// Package categories lets the player pick the category for the next round.
package categories

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

// listMsg carries the fetched category list.
type listMsg struct {
	cats []trivia.Category
	err  error
}

// pickMsg is emitted by a menu item.
type pickMsg struct {
	choice game.CategoryChoice
}

// CategoriesScreen shows the categories left to play.
type CategoriesScreen struct {
	env     *screen.Env
	menu    components.Menu
	spin    spinner.Model
	loading bool
	errMsg  string
}

var _ screen.Screen = (*CategoriesScreen)(nil)
var _ screen.KeyHintProvider = (*CategoriesScreen)(nil)

// New creates a CategoriesScreen. The list is fetched once per process and
// kept on the controller.
func New(env *screen.Env) *CategoriesScreen {
	s := &CategoriesScreen{
		env:  env,
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	if env.Game.Categories() != nil {
		s.buildMenu()
	}
	return s
}

func (s *CategoriesScreen) Init() tea.Cmd {
	if s.env.Game.Categories() != nil {
		return nil
	}
	return s.load()
}

func (s *CategoriesScreen) Title() string {
	return fmt.Sprintf("Round %d of %d", s.env.Game.Session().RoundsCompleted+1, game.RoundsPerGame)
}

func (s *CategoriesScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "R", Description: "Random"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CategoriesScreen) load() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	src, env := s.env.Source, s.env
	fetch := func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		cats, err := src.ListCategories(ctx)
		return listMsg{cats: cats, err: err}
	}
	return tea.Batch(s.spin.Tick, fetch)
}

func (s *CategoriesScreen) buildMenu() {
	items := []components.MenuItem{{
		Label:  "Random",
		Action: pick(game.Random()),
	}}
	for _, c := range s.env.Game.AvailableCategories() {
		items = append(items, components.MenuItem{
			Label:  c.Name,
			Action: pick(game.PickID(c.ID)),
		})
	}
	s.menu = components.NewMenu(items)
}

func pick(choice game.CategoryChoice) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return pickMsg{choice: choice} }
	}
}

func (s *CategoriesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case listMsg:
		s.loading = false
		if msg.err != nil {
			s.env.Log().Printf("categories: %v", msg.err)
			s.errMsg = fmt.Sprintf("Could not load categories (%v).", msg.err)
			return s, nil
		}
		if len(msg.cats) == 0 {
			s.errMsg = "The question source has no categories."
			return s, nil
		}
		s.env.Game.SetCategories(msg.cats)
		s.buildMenu()
		return s, nil

	case pickMsg:
		return s.start(msg.choice)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		if s.errMsg != "" && s.env.Game.Categories() == nil {
			if msg.String() == "r" {
				return s, s.load()
			}
			return s, nil
		}
		if msg.String() == "r" {
			return s.start(game.Random())
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *CategoriesScreen) start(choice game.CategoryChoice) (screen.Screen, tea.Cmd) {
	req, err := s.env.Game.PickCategory(choice)
	if err != nil {
		s.env.Log().Printf("categories: pick: %v", err)
		switch {
		case errors.Is(err, game.ErrNoCategoriesAvailable):
			s.errMsg = "Every category has been played."
		default:
			s.errMsg = err.Error()
		}
		return s, nil
	}
	next := s.env.Flow.Question(req)
	return s, router.Go(next)
}

func (s *CategoriesScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Loading categories...")
	}

	cw := components.ContentWidth(width)
	sess := s.env.Game.Session()

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Pick a category"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf("%s · %d seconds per question",
		sess.Difficulty.DisplayName(), int(game.TimeBudget(sess.Difficulty).Seconds()))))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Width(cw).Render(s.errMsg))
		b.WriteString("\n\n")
	}

	rows := height - 10
	if layout.IsCompactHeight(height) {
		rows = height - 12
	}
	b.WriteString(s.menu.ViewWindow(max(rows, 3)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
