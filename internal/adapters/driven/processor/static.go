// Package processor contains Processor adapters. The real collaborator is
// an external service; Static is the offline stand-in used for dry runs
// and tests.
package processor

import (
	"context"
	"fmt"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Processor = (*Static)(nil)

// Static transforms text from a fixed mapping, falling back to a marker
// prefix for unmapped sources. Deterministic, never fails.
type Static struct {
	prefix   string
	language string
	mapping  map[string]string
	caps     domain.ProcessorCapabilities
}

// StaticConfig configures a Static processor.
type StaticConfig struct {
	// Prefix marks unmapped sources. Defaults to "[processed] ".
	Prefix string
	// Language is included in the marker when set.
	Language string
	// Mapping overrides specific source texts.
	Mapping map[string]string
}

// NewStatic creates a Static processor. It advertises reference and
// target-language support so the orchestration paths that feed context
// pairs stay exercised.
func NewStatic(cfg StaticConfig) *Static {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "[processed] "
		if cfg.Language != "" {
			prefix = fmt.Sprintf("[%s] ", cfg.Language)
		}
	}
	return &Static{
		prefix:   prefix,
		language: cfg.Language,
		mapping:  cfg.Mapping,
		caps:     domain.ProcessorCapabilities{References: true, TargetLanguage: cfg.Language != ""},
	}
}

// Process returns the mapped text or the marked source.
func (s *Static) Process(ctx context.Context, source string, refs []domain.ReferencePair) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if mapped, ok := s.mapping[source]; ok {
		return mapped, nil
	}
	return s.prefix + source, nil
}

// Capabilities reports what this processor accepts.
func (s *Static) Capabilities() domain.ProcessorCapabilities {
	return s.caps
}
