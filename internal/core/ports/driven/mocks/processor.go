package mocks

import (
	"context"
	"errors"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/core/ports/driven"
)

// Ensure MockProcessor implements Processor
var _ driven.Processor = (*MockProcessor)(nil)

// MockProcessor prefixes source text with a marker. Sources listed in
// FailOn fail with a ProcessingError-compatible error instead.
type MockProcessor struct {
	Prefix string
	Caps   domain.ProcessorCapabilities

	// FailOn maps source texts to forced failures.
	FailOn map[string]bool

	// Calls records every processed source in order.
	Calls []string
	// RefCounts records how many reference pairs accompanied each call.
	RefCounts []int
}

// NewMockProcessor creates a processor that supports references.
func NewMockProcessor() *MockProcessor {
	return &MockProcessor{
		Prefix: "[T] ",
		Caps:   domain.ProcessorCapabilities{References: true, TargetLanguage: true},
		FailOn: make(map[string]bool),
	}
}

// Process returns Prefix + source, or fails when the source is in FailOn.
func (m *MockProcessor) Process(ctx context.Context, source string, refs []domain.ReferencePair) (string, error) {
	m.Calls = append(m.Calls, source)
	m.RefCounts = append(m.RefCounts, len(refs))
	if m.FailOn[source] {
		return "", errors.New("mock processor failure")
	}
	return m.Prefix + source, nil
}

// Capabilities reports the configured capability set.
func (m *MockProcessor) Capabilities() domain.ProcessorCapabilities {
	return m.Caps
}
