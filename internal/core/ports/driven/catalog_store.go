package driven

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// CatalogStore persists catalogs as bilingual message-catalog files
// (gettext PO semantics).
type CatalogStore interface {
	// Load reads an existing catalog, preserving every entry field and
	// flag. A missing file yields a fresh catalog carrying the given
	// language tag; an unreadable or corrupt file is an error wrapping
	// domain.ErrCatalogCorrupt.
	Load(ctx context.Context, path, language string) (*domain.Catalog, error)

	// Save writes the catalog back to disk, creating parent directories
	// as needed. Called after every document-processing attempt
	// regardless of outcome.
	Save(ctx context.Context, path string, cat *domain.Catalog) error
}
