// Package rebuild merges catalog state back into the original document
// shape. Anything the segmenter did not claim, and any unit without a
// current processed text, is copied through verbatim, so the output is
// never half-substituted.
package rebuild

import (
	"strings"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// Reconstructor rebuilds documents and computes coverage. Stateless; one
// value may serve concurrent documents.
type Reconstructor struct{}

// New creates a Reconstructor.
func New() *Reconstructor {
	return &Reconstructor{}
}

// Rebuild walks blocks in order over the raw source lines (without
// trailing newlines) and emits the document text. Gaps between blocks are
// copied verbatim, skip-kind and incomplete blocks keep their original
// text, and complete units contribute their processed text. Every output
// line is terminated with a single newline regardless of the source's
// line-ending style.
func (r *Reconstructor) Rebuild(sourceLines []string, blocks []domain.Block, cat *domain.Catalog) string {
	var out []string
	pos := 0

	for _, b := range blocks {
		if pos < b.Start {
			out = append(out, sourceLines[pos:b.Start]...)
		}

		unit, ok := cat.Get(b.ContextID())
		if cat.Skipped(b.Kind) || !ok || unit.Processed == "" {
			out = append(out, sourceLines[b.Start:b.End]...)
		} else {
			out = append(out, strings.Split(unit.Processed, "\n")...)
		}

		pos = b.End
	}

	if pos < len(sourceLines) {
		out = append(out, sourceLines[pos:]...)
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

// Coverage counts how many blocks carry a current processed text, overall
// and per kind.
func (r *Reconstructor) Coverage(blocks []domain.Block, cat *domain.Catalog) domain.Coverage {
	cov := domain.Coverage{
		Total:  len(blocks),
		ByKind: make(map[domain.BlockKind]*domain.KindCoverage),
	}

	for _, b := range blocks {
		kc, ok := cov.ByKind[b.Kind]
		if !ok {
			kc = &domain.KindCoverage{}
			cov.ByKind[b.Kind] = kc
		}
		kc.Total++

		if cat.Skipped(b.Kind) {
			continue
		}
		kc.Translatable++
		cov.Translatable++

		unit, ok := cat.Get(b.ContextID())
		switch {
		case !ok || unit.Processed == "":
			cov.Untranslated++
		case unit.Stale:
			cov.Stale++
			kc.Stale++
		default:
			cov.Complete++
			kc.Complete++
		}
	}

	if cov.Translatable > 0 {
		cov.Percentage = float64(cov.Complete) / float64(cov.Translatable) * 100
	}
	return cov
}
