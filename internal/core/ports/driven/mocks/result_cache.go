package mocks

import (
	"context"
	"fmt"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Ensure MockResultCache implements ResultCache
var _ driven.ResultCache = (*MockResultCache)(nil)

// MockResultCache is a map-backed result cache.
type MockResultCache struct {
	Entries map[string]string
	Hits    int
	Misses  int
}

// NewMockResultCache creates an empty cache.
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{Entries: make(map[string]string)}
}

func cacheKey(language, source string) string {
	return language + "\x00" + source
}

// Get returns the cached text or domain.ErrCacheMiss.
func (m *MockResultCache) Get(ctx context.Context, language, source string) (string, error) {
	if v, ok := m.Entries[cacheKey(language, source)]; ok {
		m.Hits++
		return v, nil
	}
	m.Misses++
	return "", fmt.Errorf("source %q: %w", source, domain.ErrCacheMiss)
}

// Set stores the text for a (language, source) pair.
func (m *MockResultCache) Set(ctx context.Context, language, source, processed string) error {
	m.Entries[cacheKey(language, source)] = processed
	return nil
}

// Put pre-loads an entry.
func (m *MockResultCache) Put(language, source, processed string) {
	m.Entries[cacheKey(language, source)] = processed
}
