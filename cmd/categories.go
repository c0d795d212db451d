package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/trivia"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories offered by the configured source",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		src, closeSrc, err := buildSource(cmd.Context(), cfg, nil)
		if err != nil {
			return err
		}
		defer closeSrc()

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout(cfg))
		defer cancel()
		cats, err := src.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		printCategories(cmd.OutOrStdout(), cats)
		return nil
	},
}

func printCategories(w io.Writer, cats []trivia.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories found.")
		return
	}
	fmt.Fprintf(w, "%-4s  %s\n", "ID", "Name")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, c := range cats {
		fmt.Fprintf(w, "%-4d  %s\n", c.ID, c.Name)
	}
}
