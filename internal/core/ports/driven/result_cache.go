package driven

import "context"

// ResultCache is a content-addressed cache of processed text, keyed by the
// target language and the source text. It short-circuits repeat processor
// calls across documents sharing identical units. Optional: a nil cache
// disables the shortcut.
type ResultCache interface {
	// Get returns the cached text, or an error wrapping
	// domain.ErrCacheMiss.
	Get(ctx context.Context, language, source string) (string, error)

	// Set stores processed text for a (language, source) pair.
	Set(ctx context.Context, language, source, processed string) error
}
