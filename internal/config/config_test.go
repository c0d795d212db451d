package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load("", filepath.Join(t.TempDir(), ".env"), envMap(map[string]string{
		"XDG_CONFIG_HOME": t.TempDir(),
	}))
	require.NoError(t, err)
	assert.Equal(t, SourceOpenTDB, cfg.Source)
	assert.Equal(t, "https://opentdb.com", cfg.OpenTDB.URL)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL())
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
source: llm
opentdb:
  timeout: 3s
cache:
  backend: redis
  ttl: 30m
redis:
  addr: localhost:6379
  db: 2
llm:
  provider: gemini
  gemini:
    api_key: from-file
debug_log: /tmp/trivia.log
`)
	cfg, err := load(path, filepath.Join(t.TempDir(), ".env"), envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, SourceLLM, cfg.Source)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout())
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "/tmp/trivia.log", cfg.DebugLog)
	// Defaults survive for keys the file leaves out.
	assert.Equal(t, "https://opentdb.com", cfg.OpenTDB.URL)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "source: llm\ncache:\n  backend: none\n")
	cfg, err := load(path, filepath.Join(t.TempDir(), ".env"), envMap(map[string]string{
		"TRIVIA_SOURCE":      "opentdb",
		"TRIVIA_OPENTDB_URL": "http://localhost:8080",
		"TRIVIA_CACHE":       "redis",
		"TRIVIA_REDIS_ADDR":  "redis:6379",
		"TRIVIA_DEBUG_LOG":   "debug.log",
	}))
	require.NoError(t, err)
	assert.Equal(t, SourceOpenTDB, cfg.Source)
	assert.Equal(t, "http://localhost:8080", cfg.OpenTDB.URL)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "debug.log", cfg.DebugLog)
}

func TestLoad_DotEnv(t *testing.T) {
	dotenv := writeFile(t, ".env", "TRIVIA_SOURCE=llm\nTRIVIA_ANTHROPIC_API_KEY=sk-dotenv\n")

	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"), dotenv, envMap(nil))
	require.Error(t, err, "explicit path must exist")

	cfg, err := load("", dotenv, envMap(map[string]string{
		"XDG_CONFIG_HOME": t.TempDir(),
	}))
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, cfg.Source)
	assert.Equal(t, "sk-dotenv", cfg.LLM.Anthropic.APIKey)

	// The real environment wins over .env.
	cfg, err = load("", dotenv, envMap(map[string]string{
		"XDG_CONFIG_HOME": t.TempDir(),
		"TRIVIA_SOURCE":   "opentdb",
	}))
	require.NoError(t, err)
	assert.Equal(t, SourceOpenTDB, cfg.Source)
}

func TestLoad_TriviaConfigEnv(t *testing.T) {
	path := writeFile(t, "alt.yaml", "source: llm\n")
	cfg, err := load("", filepath.Join(t.TempDir(), ".env"), envMap(map[string]string{
		"TRIVIA_CONFIG": path,
	}))
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, cfg.Source)

	_, err = load("", filepath.Join(t.TempDir(), ".env"), envMap(map[string]string{
		"TRIVIA_CONFIG": path + ".missing",
	}))
	require.Error(t, err)
}

func TestLoad_XDGFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "trivia"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trivia", "config.yaml"), []byte("cache:\n  backend: none\n"), 0o600))

	cfg, err := load("", filepath.Join(t.TempDir(), ".env"), envMap(map[string]string{
		"XDG_CONFIG_HOME": dir,
	}))
	require.NoError(t, err)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "source: [unterminated\n")
	_, err := load(path, filepath.Join(t.TempDir(), ".env"), envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "llm source", mutate: func(c *Config) { c.Source = SourceLLM }},
		{name: "no cache", mutate: func(c *Config) { c.Cache.Backend = CacheNone }},
		{name: "unknown source", mutate: func(c *Config) { c.Source = "jservice" }, wantErr: `unknown source "jservice"`},
		{name: "unknown cache", mutate: func(c *Config) { c.Cache.Backend = "memcached" }, wantErr: `unknown cache backend "memcached"`},
		{name: "redis without addr", mutate: func(c *Config) { c.Cache.Backend = CacheRedis }, wantErr: "TRIVIA_REDIS_ADDR"},
		{name: "redis with addr", mutate: func(c *Config) {
			c.Cache.Backend = CacheRedis
			c.Redis.Addr = "localhost:6379"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTTLDuration(t *testing.T) {
	assert.Equal(t, time.Minute, TTLDuration("", time.Minute))
	assert.Equal(t, 90*time.Second, TTLDuration("90s", time.Minute))
	assert.Equal(t, time.Minute, TTLDuration("soon", time.Minute))
}
