package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktidy/internal/ledger"
)

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func TestRestoreAuthors(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Great War.epub", 1)
	write(t, dir, "Orphan Title.epub", 1)

	refs := []string{
		"Smith, John - Great War.mobi",
		"Jones, Mary - Great War.mobi", // later match, never consulted
		"no separator.mobi",
	}

	led := ledger.New()
	out, err := RestoreAuthors(dir, []string{"Great War.epub", "Orphan Title.epub"}, refs, led, nil)
	require.NoError(t, err)

	// First matching reference wins and keeps the target's own extension.
	assert.Equal(t, []AuthorRestore{
		{Old: "Great War.epub", New: "Smith, John - Great War.epub"},
	}, out.Renamed)
	assert.Equal(t, []string{"Orphan Title.epub"}, out.NotFound)
	assert.Empty(t, out.Skipped)

	assert.True(t, exists(dir, "Smith, John - Great War.epub"))
	assert.False(t, exists(dir, "Great War.epub"))

	// The rename is undoable.
	require.Equal(t, 1, led.Len())
	res, err := led.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Restored)
	assert.True(t, exists(dir, "Great War.epub"))
}

func TestRestoreAuthorsMatchIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "great war.epub", 1)

	out, err := RestoreAuthors(dir, []string{"great war.epub"},
		[]string{"Smith, John - Great War.mobi"}, ledger.New(), nil)
	require.NoError(t, err)

	assert.Empty(t, out.Renamed)
	assert.Equal(t, []string{"great war.epub"}, out.NotFound)
}

func TestRestoreAuthorsCollisionSkips(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Great War.epub", 1)
	write(t, dir, "Smith, John - Great War.epub", 1) // target taken

	led := ledger.New()
	out, err := RestoreAuthors(dir, []string{"Great War.epub"},
		[]string{"Smith, John - Great War.mobi"}, led, nil)
	require.NoError(t, err)

	assert.Empty(t, out.Renamed)
	assert.Equal(t, []string{"Great War.epub"}, out.Skipped)
	assert.Empty(t, out.NotFound, "a collision is still a match")
	assert.True(t, exists(dir, "Great War.epub"))
	assert.Equal(t, 0, led.Len())
}

func TestRestoreAuthorsCollisionResolved(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Great War.epub", 1)
	write(t, dir, "Smith, John - Great War.epub", 1)

	resolve := func(oldName, proposed string) (string, bool) {
		return "Smith, John - Great War (2).epub", true
	}

	out, err := RestoreAuthors(dir, []string{"Great War.epub"},
		[]string{"Smith, John - Great War.mobi"}, ledger.New(), resolve)
	require.NoError(t, err)

	assert.Equal(t, []AuthorRestore{
		{Old: "Great War.epub", New: "Smith, John - Great War (2).epub"},
	}, out.Renamed)
	assert.True(t, exists(dir, "Smith, John - Great War (2).epub"))
}
