package mocks

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Ensure MockMemoryStore implements MemoryStore
var _ driven.MemoryStore = (*MockMemoryStore)(nil)

type memoryRow struct {
	language string
	pair     domain.ReferencePair
}

// MockMemoryStore is a slice-backed translation memory.
type MockMemoryStore struct {
	rows   []memoryRow
	AddErr error
}

// NewMockMemoryStore creates an empty memory store.
func NewMockMemoryStore() *MockMemoryStore {
	return &MockMemoryStore{}
}

// Add appends a pair, overwriting a previous entry for the same source.
func (m *MockMemoryStore) Add(ctx context.Context, language, source, processed string) error {
	if m.AddErr != nil {
		return m.AddErr
	}
	for i := range m.rows {
		if m.rows[i].language == language && m.rows[i].pair.Source == source {
			m.rows[i].pair.Processed = processed
			return nil
		}
	}
	m.rows = append(m.rows, memoryRow{language: language, pair: domain.ReferencePair{Source: source, Processed: processed}})
	return nil
}

// RecentPairs returns pairs for a language, most recent first.
func (m *MockMemoryStore) RecentPairs(ctx context.Context, language string, limit int) ([]domain.ReferencePair, error) {
	var out []domain.ReferencePair
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if m.rows[i].language == language {
			out = append(out, m.rows[i].pair)
		}
	}
	return out, nil
}

// Close is a no-op.
func (m *MockMemoryStore) Close() error {
	return nil
}
