package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func TestRecordAndEntries(t *testing.T) {
	l := New()
	l.Record("b.epub", "a.epub")
	l.Record("d.epub", "c.epub")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []Entry{
		{New: "b.epub", Old: "a.epub"},
		{New: "d.epub", Old: "c.epub"},
	}, l.Entries())

	// Re-recording keeps the original position, newest mapping wins.
	l.Record("b.epub", "z.epub")
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, Entry{New: "b.epub", Old: "z.epub"}, l.Entries()[0])
}

func TestClear(t *testing.T) {
	l := New()
	l.Record("b.epub", "a.epub")
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.epub")

	l := New()
	l.Record("b.epub", "a.epub")

	res, err := l.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.Empty(t, res.Missing)
	assert.True(t, exists(dir, "a.epub"))
	assert.False(t, exists(dir, "b.epub"))

	// The ledger is not consumed; a second pass finds nothing to move.
	res, err = l.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Restored)
	assert.Equal(t, []string{"b.epub"}, res.Missing)
	assert.True(t, exists(dir, "a.epub"))
}

func TestRestoreMissingIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "d.epub")

	l := New()
	l.Record("b.epub", "a.epub")
	l.Record("d.epub", "c.epub")

	res, err := l.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, []string{"b.epub"}, res.Missing)
	assert.True(t, exists(dir, "c.epub"))
}
