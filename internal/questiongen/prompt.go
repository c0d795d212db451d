package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a quiz master writing trivia questions for a timed quiz game.

Rules:
- Write exactly the requested number of questions, all in the given category and at the given difficulty.
- Use plain text. No markdown, no HTML entities.
- Every question must have one unambiguous correct answer that is a well-established fact.
- Use "multiple" for four-option questions: one correct_answer and exactly three incorrect_answers, all distinct and plausible.
- Use "boolean" for true/false statements: correct_answer is "True" or "False" and incorrect_answers holds the other one.
- Prefer "multiple". Use at most one "boolean" per batch.
- Keep each question under 200 characters.
- Do not repeat any question from the "already asked" list.`

// buildUserMessage constructs the per-batch request.
func buildUserMessage(input BatchInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", input.Category.Name)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", input.Amount)

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorPrompts, cfg.MaxPriorQuestions))

	return b.String()
}

// buildDedup formats prior prompts, keeping the most recent max.
// Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
