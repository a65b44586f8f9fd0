package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ko", cfg.Language)
	assert.Equal(t, 5, cfg.MaxRefs)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "*.md", cfg.Pattern)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	data := `language: ja
redisUrl: redis://localhost:6379/0
databaseDsn: lingo.db
maxRefs: 3
cacheTtl: 24h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lingo.yml"), []byte(data), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "lingo.db", cfg.DatabaseDSN)
	assert.Equal(t, 3, cfg.MaxRefs)
	assert.Equal(t, Duration(24*time.Hour), cfg.CacheTTL)
	// Unset fields keep defaults.
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lingo.yml"), []byte("language: [broken"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lingo.yml"), []byte("language: ja\n"), 0o644))

	t.Setenv("LINGO_LANGUAGE", "de")
	t.Setenv("LINGO_MAX_REFS", "7")
	t.Setenv("LINGO_CACHE_TTL", "30m")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 7, cfg.MaxRefs)
	assert.Equal(t, Duration(30*time.Minute), cfg.CacheTTL)
}

func TestInvalidEnvIntIgnored(t *testing.T) {
	t.Setenv("LINGO_CONCURRENCY", "lots")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestYamlExtensionFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lingo.yaml"), []byte("language: fr\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Language)
}
