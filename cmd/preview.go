package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/trivia"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch a question batch and answer it at the prompt (no TUI)",
	Long: `Fetch one batch from the configured source and answer it interactively.

This is a developer tool for checking question quality. No timer runs and
nothing is scored beyond the final tally.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("category", 0, "Category id (0 for any)")
	previewCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium or hard")
	previewCmd.Flags().Int("count", 3, "Number of questions to fetch")
}

func runPreview(cmd *cobra.Command, args []string) error {
	categoryID, _ := cmd.Flags().GetInt("category")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	difficulty, err := trivia.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	src, closeSrc, err := buildSource(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer closeSrc()

	q := trivia.Query{Amount: count, Difficulty: difficulty}
	if categoryID != 0 {
		q.CategoryID = trivia.IntPtr(categoryID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetching %d %s questions...\n\n", count, difficulty)

	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg))
	defer cancel()
	qs, err := src.FetchQuestions(ctx, q)
	if err != nil {
		return fmt.Errorf("fetch questions: %w", err)
	}

	correct := quiz(cmd.InOrStdin(), out, qs, rand.Shuffle)
	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, len(qs))
	return nil
}

// quiz asks each question on out, reads numbered answers from in and
// returns the number answered correctly. An empty line skips.
func quiz(in io.Reader, out io.Writer, qs []trivia.Question, shuffle func(int, func(i, j int))) int {
	scanner := bufio.NewScanner(in)
	var correct int

	for i, q := range qs {
		choices := q.Answers()
		shuffle(len(choices), func(a, b int) { choices[a], choices[b] = choices[b], choices[a] })

		fmt.Fprintf(out, "── Question %d/%d · %s ──\n", i+1, len(qs), q.Category)
		fmt.Fprintln(out, q.Prompt)
		for j, c := range choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprintf(out, "(skipped) Answer: %s\n\n", q.CorrectAnswer)
			continue
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(choices) && choices[n-1] == q.CorrectAnswer {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		fmt.Fprintln(out)
	}
	return correct
}
