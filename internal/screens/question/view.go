package question

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/trivia"
	"github.com/abhisek/trivia/internal/ui/components"
	"github.com/abhisek/trivia/internal/ui/layout"
	"github.com/abhisek/trivia/internal/ui/theme"
)

func (s *QuestionScreen) View(width, height int) string {
	if s.recap != nil {
		return s.renderRecap(width, height)
	}
	rd, ok := s.env.Game.Round()
	if !ok {
		return ""
	}

	switch rd.Status {
	case game.RoundLoading:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			s.spin.View()+" Fetching questions...")
	case game.RoundFailed:
		return renderNotice(width, height, "Could not fetch questions.",
			fmt.Sprintf("%v\n\nPress R to retry or Enter to pick another category.", rd.Err))
	case game.RoundEmpty:
		return renderNotice(width, height, "Not enough questions in this category.",
			"Press Enter to pick another category.")
	}
	return s.renderQuestion(width, rd)
}

func renderNotice(width, height int, title, body string) string {
	cw := components.ContentWidth(width)
	content := theme.ErrorText.Width(cw).Align(lipgloss.Center).Render(title) + "\n\n" +
		theme.Subtitle.Width(cw).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderQuestion renders the info line, the question and its choices.
func (s *QuestionScreen) renderQuestion(width int, rd game.Round) string {
	q, _, ok := s.env.Game.CurrentQuestion()
	if !ok {
		return ""
	}
	sess := s.env.Game.Session()
	budget := int(game.TimeBudget(sess.Difficulty).Seconds())

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Round %d/%d · Question %d/%d",
			sess.RoundsCompleted+1, game.RoundsPerGame, rd.Cursor+1, len(rd.Questions)))

	remaining := s.env.Game.Remaining()
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TimerColor(remaining, budget)).
		Bold(true).
		Render("⏱ " + layout.Clock(remaining))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	timer := components.ProgressBar{
		Percent: float64(remaining) / float64(max(budget, 1)),
		Width:   width - 4,
		Color:   theme.TimerColor(remaining, budget),
	}
	b.WriteString("  " + timer.View())
	b.WriteString("\n\n")

	if s.last != nil {
		b.WriteString(components.Center(renderFeedback(*s.last), width))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n")
	if q.Kind == trivia.KindBoolean {
		b.WriteString(theme.Hint.Render("True or false?"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.choices.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press a number, or S to skip"))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderRecap shows the last answer of the round and the round score.
func (s *QuestionScreen) renderRecap(width, height int) string {
	sess := s.env.Game.Session()
	played := sess.AnswerLog[max(len(sess.AnswerLog)-game.QuestionsPerRound, 0):]
	correct := 0
	for _, rec := range played {
		if rec.Correct {
			correct++
		}
	}

	headline := fmt.Sprintf("Round %d of %d complete", sess.RoundsCompleted, game.RoundsPerGame)
	if sess.Completed {
		headline = "Game complete"
	}

	var b strings.Builder
	if s.last != nil {
		b.WriteString(renderFeedback(*s.last))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Title.Render(headline))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d/%d correct this round", correct, len(played))))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter to continue"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderFeedback(f feedback) string {
	switch {
	case f.expired:
		return theme.Skipped.Render("Time's up!") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(" The answer was "+f.correct+".")
	case f.record.Skipped:
		return theme.Skipped.Render("Skipped.") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(" The answer was "+f.correct+".")
	case f.record.Correct:
		return theme.Correct.Render("Correct!")
	default:
		return theme.Incorrect.Render("Not quite.") +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(" The answer was "+f.correct+".")
	}
}
