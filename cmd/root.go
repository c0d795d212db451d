package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "trivia",
	Short: "Terminal trivia quiz",
	Long:  "Trivia: three rounds of three questions against the clock, from Open Trivia DB or an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides TRIVIA_CONFIG)")
	rootCmd.PersistentFlags().String("source", "", "Question source: opentdb or llm (overrides TRIVIA_SOURCE)")
	rootCmd.PersistentFlags().String("debug-log", "", "Write diagnostic logs to this file (overrides TRIVIA_DEBUG_LOG)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the configuration and applies the persistent flags,
// which take precedence over the file and the environment.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path := flagString(cmd, "config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if s := flagString(cmd, "source"); s != "" {
		cfg.Source = s
	}
	if p := flagString(cmd, "debug-log"); p != "" {
		cfg.DebugLog = p
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// flagString reads a local or inherited flag before or after parsing.
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
