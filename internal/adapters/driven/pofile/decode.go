package pofile

import (
	"fmt"
	"strings"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// rawEntry is one PO entry during parsing.
type rawEntry struct {
	msgctxt  string
	msgid    string
	msgstr   string
	fuzzy    bool
	obsolete bool

	hasMsgid bool
	last     *string // field continuation strings append to
}

// Decode parses PO text into a catalog. Every entry field and flag is
// preserved. Malformed input fails with an error wrapping
// domain.ErrCatalogCorrupt.
func Decode(text, language string) (*domain.Catalog, error) {
	entries, metadata, err := parse(text)
	if err != nil {
		return nil, err
	}

	if lang, ok := metadata["Language"]; ok && lang != "" {
		language = lang
	}
	cat := domain.NewCatalog(language)

	for _, e := range entries {
		u := &domain.Unit{
			ContextID: e.msgctxt,
			Source:    e.msgid,
			Processed: e.msgstr,
			Stale:     e.fuzzy,
			Obsolete:  e.obsolete,
		}
		if err := cat.Add(u); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", domain.ErrCatalogCorrupt, e.msgctxt, err)
		}
	}
	return cat, nil
}

func parse(text string) ([]*rawEntry, map[string]string, error) {
	var entries []*rawEntry
	metadata := make(map[string]string)

	cur := &rawEntry{}
	flush := func() {
		if !cur.hasMsgid && cur.msgctxt == "" {
			cur = &rawEntry{}
			return
		}
		if cur.msgid == "" && cur.msgctxt == "" {
			// Header entry: msgstr carries "Key: value\n" metadata lines.
			for _, line := range strings.Split(cur.msgstr, "\n") {
				key, value, ok := strings.Cut(line, ":")
				if ok {
					metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
				}
			}
		} else {
			entries = append(entries, cur)
		}
		cur = &rawEntry{}
	}

	for n, line := range strings.Split(text, "\n") {
		lineno := n + 1
		obsolete := false
		if strings.HasPrefix(line, "#~") {
			obsolete = true
			line = strings.TrimSpace(strings.TrimPrefix(line, "#~"))
		} else {
			line = strings.TrimSpace(line)
		}

		switch {
		case line == "":
			flush()

		case strings.HasPrefix(line, "#,"):
			for _, flag := range strings.Split(line[2:], ",") {
				if strings.TrimSpace(flag) == "fuzzy" {
					cur.fuzzy = true
				}
			}

		case strings.HasPrefix(line, "#"):
			// Translator and reference comments are not tracked.

		case strings.HasPrefix(line, "msgctxt"):
			// A msgctxt after a finished msgstr starts the next entry.
			if cur.last == &cur.msgstr {
				flush()
			}
			value, err := unquote(strings.TrimSpace(line[len("msgctxt"):]))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", domain.ErrCatalogCorrupt, lineno, err)
			}
			cur.msgctxt = value
			cur.obsolete = cur.obsolete || obsolete
			cur.last = &cur.msgctxt

		case strings.HasPrefix(line, "msgid"):
			if cur.last == &cur.msgstr {
				flush()
			}
			value, err := unquote(strings.TrimSpace(line[len("msgid"):]))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", domain.ErrCatalogCorrupt, lineno, err)
			}
			cur.msgid = value
			cur.hasMsgid = true
			cur.obsolete = cur.obsolete || obsolete
			cur.last = &cur.msgid

		case strings.HasPrefix(line, "msgstr"):
			value, err := unquote(strings.TrimSpace(line[len("msgstr"):]))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", domain.ErrCatalogCorrupt, lineno, err)
			}
			cur.msgstr = value
			cur.last = &cur.msgstr

		case strings.HasPrefix(line, `"`):
			if cur.last == nil {
				return nil, nil, fmt.Errorf("%w: line %d: continuation without field", domain.ErrCatalogCorrupt, lineno)
			}
			value, err := unquote(line)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: line %d: %v", domain.ErrCatalogCorrupt, lineno, err)
			}
			*cur.last += value

		default:
			return nil, nil, fmt.Errorf("%w: line %d: unexpected %q", domain.ErrCatalogCorrupt, lineno, line)
		}
	}
	flush()

	return entries, metadata, nil
}

// unquote strips surrounding double quotes and resolves C-style escapes.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("malformed string %q", s)
	}
	s = s[1 : len(s)-1]

	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			if r == '"' {
				return "", fmt.Errorf("unescaped quote in %q", s)
			}
			b.WriteRune(r)
			continue
		}
		switch r {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteRune(r)
		}
		escaped = false
	}
	if escaped {
		return "", fmt.Errorf("dangling escape in %q", s)
	}
	return b.String(), nil
}
