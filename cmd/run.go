package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/trivia/internal/app"
	"github.com/abhisek/trivia/internal/cache"
	"github.com/abhisek/trivia/internal/config"
	"github.com/abhisek/trivia/internal/game"
	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/questiongen"
	"github.com/abhisek/trivia/internal/screen"
	"github.com/abhisek/trivia/internal/trivia"
	"github.com/abhisek/trivia/internal/trivia/opentdb"
)

// runApp loads the configuration, builds the question source and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg.DebugLog)
	if err != nil {
		return err
	}
	defer closeLog()

	src, closeSrc, err := buildSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSrc()

	env := &screen.Env{
		Game:    game.NewController(src),
		Source:  src,
		Logger:  logger,
		Timeout: requestTimeout(cfg),
	}
	return app.Run(env)
}

// openLog directs diagnostics to path. The alt screen owns the terminal,
// so without a path logging is disabled and the returned logger is nil.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := tea.LogToFile(path, "trivia")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

// requestTimeout bounds one Source call from a screen.
func requestTimeout(cfg config.Config) time.Duration {
	if cfg.Source == config.SourceLLM && cfg.LLM.Timeout > 0 {
		return cfg.LLM.Timeout
	}
	return cfg.RequestTimeout()
}

// buildSource assembles the configured source:
// caller → category cache → logging → retry → client.
// The returned func releases cache connections.
func buildSource(ctx context.Context, cfg config.Config, logger *log.Logger) (trivia.Source, func(), error) {
	var src trivia.Source
	switch cfg.Source {
	case config.SourceLLM:
		provider, err := llmProvider(ctx, cfg.LLM, logger)
		if err != nil {
			return nil, nil, err
		}
		src = questiongen.New(provider, questiongen.DefaultConfig(), logger)
	default:
		client := opentdb.New(cfg.OpenTDB.URL,
			opentdb.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout()}))
		src = trivia.WithRetry(client, trivia.DefaultRetryConfig())
	}
	src = trivia.WithLogging(src, logger)

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.WithCategoryCache(src, cache.NewMemory(cfg.CacheTTL()), logger), func() {}, nil
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		key := cfg.Redis.Key
		if key == "" {
			key = cache.DefaultRedisKey
		}
		rc := cache.NewRedis(client, key, cfg.CacheTTL())
		return cache.WithCategoryCache(src, rc, logger), func() { client.Close() }, nil
	}
	return src, func() {}, nil
}

// llmProvider builds a provider from cfg, falling back to whichever
// vendor key is present in the environment.
func llmProvider(ctx context.Context, cfg llm.Config, logger *log.Logger) (llm.Provider, error) {
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("llm source: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Using %s from the environment.\n", discovered.Provider)
		cfg = discovered
	}
	p, err := llm.NewProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("llm source: %w", err)
	}
	return p, nil
}
