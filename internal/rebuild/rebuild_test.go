package rebuild

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
	"github.com/tidemark-labs/lingo-core/internal/segment"
)

func segmentDoc(doc string) ([]string, []domain.Block) {
	lines := strings.Split(doc, "\n")
	return lines, segment.New().Segment(lines)
}

// Processing every unit and rebuilding substitutes processed text while
// preserving blank lines and skip-kind blocks verbatim.
func TestRebuildSubstitutesProcessedText(t *testing.T) {
	doc := "# Title\n\nHello world\n\n---\n\nGoodbye"
	lines, blocks := segmentDoc(doc)
	require.Len(t, blocks, 4)

	cat := domain.NewCatalog("ko")
	cat.Reconcile(blocks)
	for _, u := range cat.Pending() {
		u.Processed = "[T] " + u.Source
		cat.MarkComplete(u)
	}

	got := New().Rebuild(lines, blocks, cat)
	assert.Equal(t, "[T] # Title\n\n[T] Hello world\n\n---\n\n[T] Goodbye\n", got)
}

// With processed text equal to source text, rebuilding reproduces the
// document byte for byte.
func TestRebuildRoundTrip(t *testing.T) {
	docs := []string{
		"# Title\n\nHello world\n\n---\n\nGoodbye\n",
		"plain paragraph\n",
		"# A\n\n```go\ncode()\n```\n\n- one\n- two\n\n| a |\n| b |\n\n> quote\n",
		"\n\nleading blanks\n\n\ntrailing blanks\n\n",
		"### Deep\n\ntext\n\n### Deep\n\nmore\n",
	}

	for _, doc := range docs {
		lines := strings.Split(strings.TrimSuffix(doc, "\n"), "\n")
		blocks := segment.New().Segment(lines)

		cat := domain.NewCatalog("ko")
		cat.Reconcile(blocks)
		for _, u := range cat.Pending() {
			u.Processed = u.Source
			cat.MarkComplete(u)
		}

		assert.Equal(t, doc, New().Rebuild(lines, blocks, cat), "round trip for %q", doc)
	}
}

func TestRebuildFallsBackToSourceForIncompleteUnits(t *testing.T) {
	doc := "first paragraph\n\nsecond paragraph"
	lines, blocks := segmentDoc(doc)

	cat := domain.NewCatalog("ko")
	cat.Reconcile(blocks)
	u, _ := cat.Get("::para:0")
	u.Processed = "translated first"
	cat.MarkComplete(u)

	got := New().Rebuild(lines, blocks, cat)
	assert.Equal(t, "translated first\n\nsecond paragraph\n", got)
}

// A stale unit keeps contributing its previous processed text rather than
// falling back to the source.
func TestRebuildUsesRetainedTextForStaleUnits(t *testing.T) {
	doc := "edited paragraph"
	lines, blocks := segmentDoc(doc)

	cat := domain.NewCatalog("ko")
	require.NoError(t, cat.Add(&domain.Unit{
		ContextID: "::para:0",
		Source:    "edited paragraph",
		Processed: "previous translation",
		Stale:     true,
	}))

	got := New().Rebuild(lines, blocks, cat)
	assert.Equal(t, "previous translation\n", got)
}

func TestRebuildMultiLineProcessedText(t *testing.T) {
	doc := "- one\n- two"
	lines, blocks := segmentDoc(doc)

	cat := domain.NewCatalog("ko")
	cat.Reconcile(blocks)
	u, _ := cat.Get("::ulist:0")
	u.Processed = "- 하나\n- 둘"
	cat.MarkComplete(u)

	assert.Equal(t, "- 하나\n- 둘\n", New().Rebuild(lines, blocks, cat))
}

func TestRebuildEmptyDocument(t *testing.T) {
	cat := domain.NewCatalog("ko")
	assert.Equal(t, "", New().Rebuild(nil, nil, cat))
}

func TestCoverage(t *testing.T) {
	doc := "# Title\n\nHello\n\n---\n\nWorld"
	_, blocks := segmentDoc(doc)

	cat := domain.NewCatalog("ko")
	cat.Reconcile(blocks)

	r := New()
	cov := r.Coverage(blocks, cat)
	assert.Equal(t, 4, cov.Total)
	assert.Equal(t, 3, cov.Translatable, "the rule is not translatable")
	assert.Equal(t, 3, cov.Untranslated)
	assert.Equal(t, 0.0, cov.Percentage)

	u, _ := cat.Get("title::para:0")
	u.Processed = "안녕"
	cat.MarkComplete(u)

	stale, _ := cat.Get("title::para:1")
	stale.Processed = "오래됨"
	stale.Stale = true

	cov = r.Coverage(blocks, cat)
	assert.Equal(t, 1, cov.Complete)
	assert.Equal(t, 1, cov.Stale)
	assert.Equal(t, 1, cov.Untranslated)
	assert.InDelta(t, 100.0/3.0, cov.Percentage, 1e-9)

	require.Contains(t, cov.ByKind, domain.KindRule)
	assert.Equal(t, 1, cov.ByKind[domain.KindRule].Total)
	assert.Equal(t, 0, cov.ByKind[domain.KindRule].Translatable)
	assert.Equal(t, 2, cov.ByKind[domain.KindParagraph].Translatable)
}

func TestCoverageEmpty(t *testing.T) {
	cov := New().Coverage(nil, domain.NewCatalog("ko"))
	assert.Equal(t, 0.0, cov.Percentage, "0% when nothing is translatable")
	assert.Zero(t, cov.Total)
}

func TestReport(t *testing.T) {
	doc := "# Title\n\nHello"
	_, blocks := segmentDoc(doc)

	cat := domain.NewCatalog("ko")
	cat.Reconcile(blocks)
	for _, u := range cat.Pending() {
		u.Processed = u.Source
		cat.MarkComplete(u)
	}

	report := New().Report("docs/readme.md", blocks, cat)
	assert.Contains(t, report, "# Coverage Report")
	assert.Contains(t, report, "docs/readme.md")
	assert.Contains(t, report, "**Language:** ko")
	assert.Contains(t, report, "Coverage: 100.0%")
	assert.Contains(t, report, "- para: 1/1 (100.0%)")
}
