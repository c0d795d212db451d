// Package config loads the trivia configuration from an optional YAML
// file, an optional .env file and TRIVIA_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/trivia/internal/llm"
	"github.com/abhisek/trivia/internal/trivia/opentdb"
)

// Question sources.
const (
	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
)

// Category cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

const (
	DefaultCacheTTL       = 24 * time.Hour
	DefaultRequestTimeout = 10 * time.Second
)

type Config struct {
	Source string `yaml:"source"`

	OpenTDB struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"opentdb"`

	Cache struct {
		Backend string `yaml:"backend"`
		TTL     string `yaml:"ttl"`
	} `yaml:"cache"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Key      string `yaml:"key"`
	} `yaml:"redis"`

	LLM llm.Config `yaml:"llm"`

	// DebugLog is a file path for diagnostic logs. Empty disables logging.
	DebugLog string `yaml:"debug_log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	var cfg Config
	cfg.Source = SourceOpenTDB
	cfg.OpenTDB.URL = opentdb.DefaultBaseURL
	cfg.Cache.Backend = CacheMemory
	cfg.LLM = llm.DefaultConfig()
	return cfg
}

// Load builds the configuration. An explicit path must exist. Without one,
// TRIVIA_CONFIG and then the user config dir are tried, and a missing
// file there is not an error. A .env file in the working directory is
// read but does not override the real environment.
func Load(path string) (Config, error) {
	return load(path, ".env", os.Getenv)
}

func load(path, dotenvPath string, getenv func(string) string) (Config, error) {
	cfg := Default()

	file, explicit := path, path != ""
	if file == "" {
		if file = getenv("TRIVIA_CONFIG"); file != "" {
			explicit = true
		} else {
			file = defaultPath(getenv)
		}
	}
	if file != "" {
		if err := cfg.readFile(file); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	dotenv, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read %s: %w", dotenvPath, err)
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	cfg.ApplyEnv(lookup)

	return cfg, cfg.Validate()
}

// DefaultPath is $XDG_CONFIG_HOME/trivia/config.yaml, or empty when no
// config dir can be determined.
func DefaultPath() string {
	return defaultPath(os.Getenv)
}

func defaultPath(getenv func(string) string) string {
	dir := getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "trivia", "config.yaml")
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from TRIVIA_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Source, "TRIVIA_SOURCE")
	set(&c.OpenTDB.URL, "TRIVIA_OPENTDB_URL")
	set(&c.OpenTDB.Timeout, "TRIVIA_OPENTDB_TIMEOUT")
	set(&c.Cache.Backend, "TRIVIA_CACHE")
	set(&c.Cache.TTL, "TRIVIA_CACHE_TTL")
	set(&c.Redis.Addr, "TRIVIA_REDIS_ADDR")
	set(&c.Redis.Password, "TRIVIA_REDIS_PASSWORD")
	set(&c.DebugLog, "TRIVIA_DEBUG_LOG")
	c.LLM.ApplyEnv(getenv)
}

// Validate reports settings that cannot be acted on.
func (c Config) Validate() error {
	switch c.Source {
	case SourceOpenTDB, SourceLLM:
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Source, SourceOpenTDB, SourceLLM)
	}
	switch c.Cache.Backend {
	case "", CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return errors.New("cache backend redis needs redis.addr or TRIVIA_REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// CacheTTL is the parsed cache.ttl, or DefaultCacheTTL.
func (c Config) CacheTTL() time.Duration {
	return TTLDuration(c.Cache.TTL, DefaultCacheTTL)
}

// RequestTimeout is the parsed opentdb.timeout, or DefaultRequestTimeout.
func (c Config) RequestTimeout() time.Duration {
	return TTLDuration(c.OpenTDB.Timeout, DefaultRequestTimeout)
}

// TTLDuration parses a duration string or returns the fallback if empty
// or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
