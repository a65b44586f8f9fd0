package mocks

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Ensure MockCatalogStore implements CatalogStore
var _ driven.CatalogStore = (*MockCatalogStore)(nil)

// MockCatalogStore keeps catalogs in memory, keyed by path.
type MockCatalogStore struct {
	Catalogs map[string]*domain.Catalog

	LoadErr error
	SaveErr error

	// SaveCalls counts Save invocations, used to assert the
	// save-regardless-of-outcome guarantee.
	SaveCalls int
}

// NewMockCatalogStore creates an empty in-memory catalog store.
func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{Catalogs: make(map[string]*domain.Catalog)}
}

// Load returns the stored catalog or a fresh one when the path is unknown.
func (m *MockCatalogStore) Load(ctx context.Context, path, language string) (*domain.Catalog, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if cat, ok := m.Catalogs[path]; ok {
		return cat, nil
	}
	return domain.NewCatalog(language), nil
}

// Save stores the catalog under the path.
func (m *MockCatalogStore) Save(ctx context.Context, path string, cat *domain.Catalog) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Catalogs[path] = cat
	return nil
}
