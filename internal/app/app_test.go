package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/router"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/trivia"
)

func testEnv() *screen.Env {
	src := trivia.NewMockSource()
	return &screen.Env{Game: game.NewController(src), Source: src}
}

func TestNewAppModel_SetsFlow(t *testing.T) {
	env := testEnv()
	m := newAppModel(env)
	if env.Flow == nil {
		t.Fatal("Flow not set")
	}
	if m.router.Visits() != 1 {
		t.Fatalf("Visits = %d", m.router.Visits())
	}
	if m.Init() == nil {
		t.Fatal("welcome screen should start its animation")
	}
}

func TestFlow_BuildsPhaseScreens(t *testing.T) {
	env := testEnv()
	newAppModel(env)

	for name, s := range map[string]screen.Screen{
		"setup":      env.Flow.Setup(),
		"categories": env.Flow.Categories(),
		"summary":    env.Flow.Summary(),
		"question":   env.Flow.Question(game.BatchRequest{}),
	} {
		if s == nil {
			t.Errorf("%s: nil screen", name)
		}
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(testEnv())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected QuitMsg")
	}
}

func TestAppModel_ReplaceNavigates(t *testing.T) {
	env := testEnv()
	m := newAppModel(env)

	next := env.Flow.Setup()
	updated, _ := m.Update(router.ReplaceScreenMsg{Screen: next})
	model := updated.(AppModel)
	if model.router.Active() != next || model.router.Visits() != 2 {
		t.Fatal("replace should swap the active screen")
	}
}

func TestAppModel_ViewShowsStatus(t *testing.T) {
	env := testEnv()
	ticket, err := env.Game.BeginSetup("Ada", trivia.DifficultyEasy)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.Game.FinishSetup(ticket, "tok", nil); err != nil {
		t.Fatal(err)
	}
	m := newAppModel(env)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := updated.(AppModel).render()
	for _, want := range []string{"Trivia", "Ada", "★ 0/0", "Ctrl+C"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(testEnv())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if view := updated.(AppModel).render(); view == "" {
		t.Fatal("expected a size warning")
	}
}
