package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0644))
}

func TestFilterMatch(t *testing.T) {
	f, err := NewFilter(DefaultExtensions)
	require.NoError(t, err)

	assert.True(t, f.Match("Smith, John - Great War.epub"))
	assert.True(t, f.Match("UPPERCASE.EPUB"))
	assert.True(t, f.Match("book.mobi"))
	assert.True(t, f.Match("book.pdf"))
	assert.True(t, f.Match("book.azw"))
	assert.False(t, f.Match("notes.txt"))
	assert.False(t, f.Match("archive.epub.zip"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.epub", 1)
	touch(t, dir, "b.mobi", 1)
	touch(t, dir, "notes.txt", 1)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.epub"), 0755))

	f, err := NewFilter(DefaultExtensions)
	require.NoError(t, err)

	ws, err := Scan(dir, f)
	require.NoError(t, err)
	assert.Equal(t, dir, ws.Dir)
	assert.ElementsMatch(t, []string{"a.epub", "b.mobi"}, ws.Names)
	assert.Equal(t, 2, ws.Len())
	assert.Equal(t, filepath.Join(dir, "a.epub"), ws.Path("a.epub"))
}

func TestScanBadDir(t *testing.T) {
	f, err := NewFilter(DefaultExtensions)
	require.NoError(t, err)

	_, err = Scan(filepath.Join(t.TempDir(), "nope"), f)
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	ws := &WorkingSet{Names: []string{"only.epub"}}
	assert.Equal(t, "only.epub", ws.Pick())

	empty := &WorkingSet{}
	assert.Equal(t, "", empty.Pick())
}
