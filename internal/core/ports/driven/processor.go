package driven

import (
	"context"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// Processor is the external text-transformation collaborator (a
// translation or rewriting service). Implementations declare what their
// signature supports via Capabilities, resolved once at construction; the
// pipeline never probes per call.
type Processor interface {
	// Process transforms source text. refs carries few-shot context
	// pairs; implementations whose Capabilities do not include
	// references receive nil.
	Process(ctx context.Context, source string, refs []domain.ReferencePair) (string, error)

	// Capabilities reports which optional inputs the processor accepts.
	Capabilities() domain.ProcessorCapabilities
}
