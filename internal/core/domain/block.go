package domain

import (
	"strconv"
	"strings"
)

// BlockKind identifies the structural type of a block. The string values
// are embedded in Context IDs and therefore in persisted catalogs, so they
// must never change.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "para"
	KindUList     BlockKind = "ulist"
	KindOList     BlockKind = "olist"
	KindQuote     BlockKind = "quote"
	KindTable     BlockKind = "table"
	KindCode      BlockKind = "code"
	KindRule      BlockKind = "hr"
)

// DefaultSkipKinds are block kinds exempt from processing and staleness
// tracking. Their source text is still tracked for change detection.
var DefaultSkipKinds = map[BlockKind]bool{
	KindRule: true,
}

// Block is one contiguous span of source lines recognized as a structural
// unit. Blocks are ephemeral: they are rebuilt from scratch on every run.
type Block struct {
	Kind BlockKind `json:"kind"`
	// Text is the verbatim multi-line span with original line breaks,
	// without trailing newlines per line.
	Text string `json:"text"`
	// Path is the stack of heading slugs enclosing this block.
	Path []string `json:"path"`
	// Start and End are line offsets in the source, half-open [Start, End).
	Start int `json:"start"`
	End   int `json:"end"`
	// IdxInSection is the zero-based position among blocks sharing the
	// same (Path, Kind), assigned in document order.
	IdxInSection int `json:"idx_in_section"`
}

// ContextID derives the stable identity of a block. It is a function of
// (Path, Kind, IdxInSection) only, never of the text, so a block keeps its
// identity across runs even when its content changes.
func (b Block) ContextID() string {
	return strings.Join(b.Path, "/") + "::" + string(b.Kind) + ":" + strconv.Itoa(b.IdxInSection)
}

// KindFromContextID extracts the block kind encoded in a context ID.
// Returns an empty kind when the ID is malformed.
func KindFromContextID(id string) BlockKind {
	start := strings.Index(id, "::")
	if start == -1 {
		return ""
	}
	rest := id[start+2:]
	end := strings.Index(rest, ":")
	if end == -1 {
		return ""
	}
	return BlockKind(rest[:end])
}
