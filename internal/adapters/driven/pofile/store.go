// Package pofile persists catalogs as GNU gettext PO files: one entry per
// translation unit, msgctxt carrying the context ID, the fuzzy flag
// mirroring staleness and "#~" marking obsolescence.
package pofile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CatalogStore = (*Store)(nil)

// Store reads and writes PO catalogs on the local filesystem.
type Store struct{}

// NewStore creates a PO file store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the catalog at path. A missing file yields a fresh, empty
// catalog tagged with the given language; unreadable or unparsable files
// fail with an error wrapping domain.ErrCatalogCorrupt.
func (s *Store) Load(ctx context.Context, path, language string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewCatalog(language), nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrCatalogCorrupt, path, err)
	}

	cat, err := Decode(string(data), language)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}

// Save writes the catalog to path, creating parent directories as needed.
func (s *Store) Save(ctx context.Context, path string, cat *domain.Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create catalog dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(Encode(cat)), 0o644); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return nil
}
