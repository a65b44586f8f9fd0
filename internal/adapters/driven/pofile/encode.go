package pofile

import (
	"strings"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// Encode serializes a catalog in gettext PO format: a metadata header
// entry followed by one entry per unit in insertion order. Stale maps to
// the "fuzzy" flag, obsolete units get the "#~" prefix.
func Encode(cat *domain.Catalog) string {
	var b strings.Builder

	b.WriteString(`msgid ""` + "\n")
	b.WriteString(`msgstr ""` + "\n")
	b.WriteString(quote("Content-Type: text/plain; charset=UTF-8\n") + "\n")
	if cat.Language != "" {
		b.WriteString(quote("Language: "+cat.Language+"\n") + "\n")
	}

	for _, u := range cat.Units() {
		b.WriteString("\n")
		prefix := ""
		if u.Obsolete {
			prefix = "#~ "
		}
		if u.Stale {
			b.WriteString("#, fuzzy\n")
		}
		writeField(&b, prefix, "msgctxt", u.ContextID)
		writeField(&b, prefix, "msgid", u.Source)
		writeField(&b, prefix, "msgstr", u.Processed)
	}

	return b.String()
}

// writeField emits one keyword with its string value, splitting multi-line
// values into continuation strings the way gettext tooling does.
func writeField(b *strings.Builder, prefix, keyword, value string) {
	if !strings.Contains(value, "\n") {
		b.WriteString(prefix + keyword + " " + quote(value) + "\n")
		return
	}

	b.WriteString(prefix + keyword + ` ""` + "\n")
	pieces := strings.Split(value, "\n")
	for i, piece := range pieces {
		if i < len(pieces)-1 {
			b.WriteString(prefix + quote(piece+"\n") + "\n")
		} else if piece != "" {
			b.WriteString(prefix + quote(piece) + "\n")
		}
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
