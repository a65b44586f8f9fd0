// Package config loads runtime settings from lingo.yml with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML accepts "30m"-style strings.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds everything the CLI needs to wire the pipeline.
type Config struct {
	// Language is the processing target language tag, e.g. "ko".
	Language string `yaml:"language"`

	// RedisURL enables the shared result cache when non-empty.
	RedisURL string `yaml:"redisUrl,omitempty"`

	// CacheTTL bounds the lifetime of cached results. Zero means no
	// expiry.
	CacheTTL Duration `yaml:"cacheTtl,omitempty"`

	// DatabaseDSN enables the cross-run translation memory when
	// non-empty. Accepts postgres:// URLs or SQLite file paths.
	DatabaseDSN string `yaml:"databaseDsn,omitempty"`

	// MaxRefs caps the reference pairs supplied per unit.
	MaxRefs int `yaml:"maxRefs,omitempty"`

	// MemorySeed caps how many remembered pairs seed each run's pool.
	MemorySeed int `yaml:"memorySeed,omitempty"`

	// Concurrency bounds parallel documents in batch mode.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Pattern selects document files in batch mode.
	Pattern string `yaml:"pattern,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language:    "ko",
		MaxRefs:     5,
		MemorySeed:  50,
		Concurrency: 4,
		Pattern:     "*.md",
		LogLevel:    "info",
	}
}

// Load reads lingo.yml or lingo.yaml from dir, applies environment
// overrides, and fills defaults. A missing file is not an error; a
// malformed one is.
func Load(dir string) (*Config, error) {
	cfg := Default()

	for _, name := range []string{"lingo.yml", "lingo.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		break
	}

	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Language = getEnv("LINGO_LANGUAGE", c.Language)
	c.RedisURL = getEnv("LINGO_REDIS_URL", c.RedisURL)
	c.DatabaseDSN = getEnv("LINGO_DATABASE_DSN", c.DatabaseDSN)
	c.Pattern = getEnv("LINGO_PATTERN", c.Pattern)
	c.LogLevel = getEnv("LINGO_LOG_LEVEL", c.LogLevel)
	c.MaxRefs = getEnvInt("LINGO_MAX_REFS", c.MaxRefs)
	c.MemorySeed = getEnvInt("LINGO_MEMORY_SEED", c.MemorySeed)
	c.Concurrency = getEnvInt("LINGO_CONCURRENCY", c.Concurrency)
	if v := os.Getenv("LINGO_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = Duration(d)
		}
	}
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.MaxRefs <= 0 {
		c.MaxRefs = def.MaxRefs
	}
	if c.MemorySeed <= 0 {
		c.MemorySeed = def.MemorySeed
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Pattern == "" {
		c.Pattern = def.Pattern
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
