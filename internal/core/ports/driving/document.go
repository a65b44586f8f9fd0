package driving

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// ProcessRequest describes one document-processing run.
type ProcessRequest struct {
	SourcePath  string
	TargetPath  string
	CatalogPath string

	// ResetSeed discards the catalog and rebuilds it from the current
	// segmentation with processed text seeded from the source. Used
	// after structural edits.
	ResetSeed bool

	// Inplace re-segments the rebuilt output and re-seeds the catalog
	// from it, so the catalog's source texts track the rewritten
	// document.
	Inplace bool
}

// DocumentService is the driving port the CLI and worker call.
type DocumentService interface {
	// ProcessDocument runs the full pipeline for one document. Per-unit
	// processor failures are reported in the result's stats, not as an
	// error; the error return is reserved for fatal conditions
	// (unreadable source, corrupt catalog, persistence failure,
	// cancellation). The catalog is persisted even when units fail.
	ProcessDocument(ctx context.Context, req ProcessRequest) (*domain.DocumentResult, error)

	// Stats reports catalog statistics and coverage without invoking
	// the processor.
	Stats(ctx context.Context, sourcePath, catalogPath string) (*domain.CatalogStats, *domain.Coverage, error)

	// Report renders a human-readable coverage report.
	Report(ctx context.Context, sourcePath, catalogPath string) (string, error)
}
