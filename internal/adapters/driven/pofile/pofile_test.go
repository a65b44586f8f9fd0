package pofile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

func sampleCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	cat := domain.NewCatalog("ko")
	units := []*domain.Unit{
		{ContextID: "title::heading:0", Source: "# Title", Processed: "# 제목"},
		{ContextID: "title::para:0", Source: "Hello \"world\"", Processed: "안녕 \"세상\"", Stale: true},
		{ContextID: "title::ulist:0", Source: "- one\n- two", Processed: "- 하나\n- 둘"},
		{ContextID: "title::hr:0", Source: "---"},
	}
	for _, u := range units {
		require.NoError(t, cat.Add(u))
	}
	return cat
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cat := sampleCatalog(t)

	decoded, err := Decode(Encode(cat), "")
	require.NoError(t, err)

	assert.Equal(t, "ko", decoded.Language, "language survives via metadata")
	require.Equal(t, cat.Len(), decoded.Len())

	for i, want := range cat.Units() {
		got := decoded.Units()[i]
		assert.Equal(t, want.ContextID, got.ContextID, "order preserved")
		assert.Equal(t, want.Source, got.Source)
		assert.Equal(t, want.Processed, got.Processed)
		assert.Equal(t, want.Stale, got.Stale, "fuzzy flag mirrors stale for %s", want.ContextID)
	}
}

func TestEncodeFuzzyFlag(t *testing.T) {
	cat := sampleCatalog(t)
	text := Encode(cat)

	assert.Contains(t, text, "#, fuzzy\nmsgctxt \"title::para:0\"")
	assert.Contains(t, text, `"Language: ko\n"`)
	assert.Contains(t, text, `"Content-Type: text/plain; charset=UTF-8\n"`)
}

func TestEncodeMultiLineValues(t *testing.T) {
	cat := domain.NewCatalog("ko")
	require.NoError(t, cat.Add(&domain.Unit{
		ContextID: "a::ulist:0",
		Source:    "- one\n- two",
	}))

	text := Encode(cat)
	assert.Contains(t, text, "msgid \"\"\n\"- one\\n\"\n\"- two\"\n")
}

func TestDecodeObsoleteEntries(t *testing.T) {
	text := `msgid ""
msgstr ""
"Language: ko\n"

#~ msgctxt "old::para:0"
#~ msgid "gone"
#~ msgstr "사라짐"
`
	cat, err := Decode(text, "")
	require.NoError(t, err)
	require.Equal(t, 1, cat.Len())

	u := cat.Units()[0]
	assert.True(t, u.Obsolete)
	assert.Equal(t, "gone", u.Source)
	assert.Equal(t, "사라짐", u.Processed)

	// Obsolete units are not resolvable by context ID.
	_, ok := cat.Get("old::para:0")
	assert.False(t, ok)
}

func TestDecodeCorruptInput(t *testing.T) {
	cases := []string{
		"msgctxt \"unterminated\nmsgid \"x\"",
		"garbage line\n",
		"\"continuation without field\"\n",
		"msgctxt \"a::para:0\"\nmsgid \"x\"\nmsgstr \"y\"\n\nmsgctxt \"a::para:0\"\nmsgid \"x\"\nmsgstr \"y\"\n",
	}

	for _, text := range cases {
		_, err := Decode(text, "")
		require.Error(t, err, "input: %q", text)
		assert.ErrorIs(t, err, domain.ErrCatalogCorrupt, "input: %q", text)
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore()
	cat, err := store.Load(context.Background(), filepath.Join(t.TempDir(), "nope.po"), "ja")
	require.NoError(t, err)
	assert.Equal(t, "ja", cat.Language)
	assert.Zero(t, cat.Len())
}

func TestStoreSaveLoad(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	// Parent directories are created on demand.
	path := filepath.Join(t.TempDir(), "nested", "dir", "doc.po")

	require.NoError(t, store.Save(ctx, path, sampleCatalog(t)))

	loaded, err := store.Load(ctx, path, "")
	require.NoError(t, err)
	assert.Equal(t, "ko", loaded.Language)
	assert.Equal(t, 4, loaded.Len())

	u, ok := loaded.Get("title::para:0")
	require.True(t, ok)
	assert.True(t, u.Stale)
	assert.Equal(t, "Hello \"world\"", u.Source)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.po")
	require.NoError(t, os.WriteFile(path, []byte("not a po file"), 0o644))

	_, err := NewStore().Load(context.Background(), path, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCatalogCorrupt))
}
