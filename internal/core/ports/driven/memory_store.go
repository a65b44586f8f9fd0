package driven

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// MemoryStore is the cross-run translation memory: completed
// (source, processed) pairs per language, persisted in SQL. It seeds the
// per-run reference pool before the catalog's own pairs so that a fresh
// document still gets consistent few-shot context. Failures here degrade
// the run, never abort it.
type MemoryStore interface {
	// Add records one completed pair for a language. Duplicate sources
	// overwrite the previous processed text.
	Add(ctx context.Context, language, source, processed string) error

	// RecentPairs returns up to limit pairs for a language, most recent
	// first.
	RecentPairs(ctx context.Context, language string, limit int) ([]domain.ReferencePair, error)

	// Close releases the underlying connection pool.
	Close() error
}
