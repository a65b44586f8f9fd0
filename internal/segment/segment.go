// Package segment turns raw document lines into an ordered list of typed,
// non-overlapping blocks with stable structural identity. Recognition is
// single-pass and heuristic; anything ambiguous degrades to a paragraph,
// never to an error.
package segment

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.*)`)
	listItemRe   = regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+`)
	orderedRe    = regexp.MustCompile(`^\s*\d+\.`)
	tableStartRe = regexp.MustCompile(`^\s*\|`)
	slugStripRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
)

// Segmenter parses documents into blocks. It holds no per-parse state, so
// one value may serve any number of documents concurrently.
type Segmenter struct{}

// New creates a Segmenter.
func New() *Segmenter {
	return &Segmenter{}
}

// Segment parses lines (without trailing newlines) into blocks covering the
// input in disjoint, order-preserving ranges. Blank-line-only spans are not
// emitted; the reconstructor copies them back from the raw lines.
func (s *Segmenter) Segment(lines []string) []domain.Block {
	p := &parser{lines: lines, slugCounters: make(map[int]map[string]int)}
	p.run()
	assignSectionIndices(p.blocks)
	return p.blocks
}

// parser carries the cursor and heading state for a single Segment call.
type parser struct {
	lines        []string
	blocks       []domain.Block
	path         []string
	slugCounters map[int]map[string]int
}

func (p *parser) run() {
	i := 0
	for i < len(p.lines) {
		line := p.lines[i]

		switch {
		case isFence(line):
			i = p.parseCode(i)
		case headingRe.MatchString(line):
			i = p.parseHeading(i)
		case isRule(line):
			p.emit(domain.KindRule, []string{line}, i, i+1)
			i++
		case isQuote(line):
			i = p.parseQuote(i)
		case listItemRe.MatchString(line):
			i = p.parseList(i)
		case isTableStart(line):
			i = p.parseTable(i)
		case strings.TrimSpace(line) == "":
			i++
		default:
			i = p.parseParagraph(i)
		}
	}
}

func (p *parser) emit(kind domain.BlockKind, chunk []string, start, end int) {
	p.blocks = append(p.blocks, domain.Block{
		Kind:  kind,
		Text:  strings.Join(chunk, "\n"),
		Path:  append([]string(nil), p.path...),
		Start: start,
		End:   end,
	})
}

// parseCode consumes a fenced code block through the matching closing fence
// or, when none is found, to end of input.
func (p *parser) parseCode(start int) int {
	fence := strings.TrimSpace(p.lines[start])[:3]
	i := start + 1
	for i < len(p.lines) && !strings.HasPrefix(strings.TrimSpace(p.lines[i]), fence) {
		i++
	}
	if i < len(p.lines) {
		i++
	}
	p.emit(domain.KindCode, p.lines[start:i], start, i)
	return i
}

func (p *parser) parseHeading(start int) int {
	m := headingRe.FindStringSubmatch(p.lines[start])
	depth := len(m[1])
	slug := p.uniqueSlug(depth, Slugify(strings.TrimSpace(m[2])))

	// Returning to a shallower depth invalidates every deeper counter,
	// so sibling subtrees number their slugs independently.
	for d := range p.slugCounters {
		if d > depth {
			delete(p.slugCounters, d)
		}
	}

	cut := depth - 1
	if cut > len(p.path) {
		cut = len(p.path)
	}
	p.path = append(p.path[:cut], slug)

	p.emit(domain.KindHeading, []string{p.lines[start]}, start, start+1)
	return start + 1
}

func (p *parser) uniqueSlug(depth int, base string) string {
	counters, ok := p.slugCounters[depth]
	if !ok {
		counters = make(map[string]int)
		p.slugCounters[depth] = counters
	}
	count, seen := counters[base]
	if !seen {
		counters[base] = 0
		return base
	}
	counters[base] = count + 1
	return base + "-" + strconv.Itoa(count+1)
}

func (p *parser) parseQuote(start int) int {
	i := start + 1
	for i < len(p.lines) && isQuote(p.lines[i]) {
		i++
	}
	p.emit(domain.KindQuote, p.lines[start:i], start, i)
	return i
}

// parseList consumes one list. The continuation rules are deliberately
// permissive (unindented prose joins the list item above it, which scripts
// without conventional wrapping rely on); see the package tests before
// tightening any boundary here, because existing catalogs depend on them.
func (p *parser) parseList(start int) int {
	first := p.lines[start]
	isOrdered := orderedRe.MatchString(first)
	kind := domain.KindUList
	if isOrdered {
		kind = domain.KindOList
	}
	baseIndent := len(listItemRe.FindStringSubmatch(first)[1])

	i := start + 1
	for i < len(p.lines) {
		line := p.lines[i]

		if m := listItemRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			ordered := orderedRe.MatchString(line)
			if indent == baseIndent && ordered != isOrdered {
				break
			}
			if indent < baseIndent {
				break
			}
			i++
			continue
		}

		if strings.TrimSpace(line) == "" {
			// Blank lines are tolerated only when a same-orderedness
			// item follows at this indentation.
			next := i + 1
			for next < len(p.lines) && strings.TrimSpace(p.lines[next]) == "" {
				next++
			}
			if next < len(p.lines) {
				if m := listItemRe.FindStringSubmatch(p.lines[next]); m != nil {
					nextOrdered := orderedRe.MatchString(p.lines[next])
					if len(m[1]) == baseIndent && nextOrdered != isOrdered {
						break
					}
					i++
					continue
				}
			}
			break
		}

		if !isOtherBlockStart(line) {
			if len(line) > baseIndent && strings.HasPrefix(line, strings.Repeat(" ", baseIndent+2)) {
				i++
				continue
			}
			if !listItemRe.MatchString(line) && !strings.HasPrefix(line, "#") {
				i++
				continue
			}
		}

		break
	}

	p.emit(kind, p.lines[start:i], start, i)
	return i
}

func (p *parser) parseTable(start int) int {
	i := start + 1
	for i < len(p.lines) && strings.Contains(p.lines[i], "|") {
		i++
	}
	p.emit(domain.KindTable, p.lines[start:i], start, i)
	return i
}

func (p *parser) parseParagraph(start int) int {
	i := start + 1
	for i < len(p.lines) {
		line := p.lines[i]
		if strings.TrimSpace(line) == "" || isFence(line) ||
			headingRe.MatchString(line) || listItemRe.MatchString(line) ||
			isQuote(line) || isRule(line) || isTableStart(line) {
			break
		}
		i++
	}
	p.emit(domain.KindParagraph, p.lines[start:i], start, i)
	return i
}

// assignSectionIndices numbers blocks per (path, kind) in document order.
// This is what keeps context IDs stable when line offsets drift.
func assignSectionIndices(blocks []domain.Block) {
	counters := make(map[string]int)
	for n := range blocks {
		key := strings.Join(blocks[n].Path, "/") + "\x00" + string(blocks[n].Kind)
		blocks[n].IdxInSection = counters[key]
		counters[key]++
	}
}

// Slugify lowercases a title, strips everything except word characters,
// whitespace and hyphens, and collapses whitespace runs into single
// hyphens. Empty results fall back to "section".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "section"
	}
	return s
}

func isFence(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// isRule reports whether line is a thematic break: one marker character
// from -, * or _, repeated at least three times, with nothing but
// whitespace between or around the repeats. Mixed markers or fewer than
// three repeats stay paragraphs.
func isRule(line string) bool {
	var marker rune
	count := 0
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		if marker == 0 {
			if r != '-' && r != '*' && r != '_' {
				return false
			}
			marker = r
			count = 1
			continue
		}
		if r != marker {
			return false
		}
		count++
	}
	return count >= 3
}

func isQuote(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), ">")
}

func isTableStart(line string) bool {
	return strings.Contains(line, "|") && tableStartRe.MatchString(line)
}

func isOtherBlockStart(line string) bool {
	return isFence(line) ||
		headingRe.MatchString(line) ||
		isQuote(line) ||
		isRule(line) ||
		isTableStart(line)
}
