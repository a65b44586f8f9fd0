package rebuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// Report renders a human-readable coverage report for one document.
func (r *Reconstructor) Report(sourcePath string, blocks []domain.Block, cat *domain.Catalog) string {
	cov := r.Coverage(blocks, cat)

	var b strings.Builder
	b.WriteString("# Coverage Report\n\n")
	fmt.Fprintf(&b, "**Source:** %s\n", sourcePath)
	if cat.Language != "" {
		fmt.Fprintf(&b, "**Language:** %s\n", cat.Language)
	}
	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "- Total blocks: %d\n", cov.Total)
	fmt.Fprintf(&b, "- Translatable: %d\n", cov.Translatable)
	fmt.Fprintf(&b, "- Complete: %d\n", cov.Complete)
	fmt.Fprintf(&b, "- Stale: %d\n", cov.Stale)
	fmt.Fprintf(&b, "- Untranslated: %d\n", cov.Untranslated)
	fmt.Fprintf(&b, "- Coverage: %.1f%%\n", cov.Percentage)

	b.WriteString("\n## By Block Kind\n\n")
	kinds := make([]string, 0, len(cov.ByKind))
	for kind := range cov.ByKind {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	for _, kind := range kinds {
		kc := cov.ByKind[domain.BlockKind(kind)]
		if kc.Translatable == 0 {
			fmt.Fprintf(&b, "- %s: %d (not translatable)\n", kind, kc.Total)
			continue
		}
		pct := float64(kc.Complete) / float64(kc.Translatable) * 100
		fmt.Fprintf(&b, "- %s: %d/%d (%.1f%%)\n", kind, kc.Complete, kc.Translatable, pct)
	}

	return b.String()
}
