package device

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktidy/internal/errors"
)

const dbRelPath = ".kobo/KoboReader.sqlite"

// newDeviceRoot builds a fake device tree with a collections database
// holding the given (shelf, content id) rows.
func newDeviceRoot(t *testing.T, rows [][2]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".kobo"), 0755))

	db, err := sql.Open("sqlite3", filepath.Join(root, dbRelPath))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE ShelfContent (ShelfName TEXT, ContentId TEXT)`)
	require.NoError(t, err)
	for _, row := range rows {
		_, err = db.Exec(`INSERT INTO ShelfContent (ShelfName, ContentId) VALUES (?, ?)`, row[0], row[1])
		require.NoError(t, err)
	}
	return root
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open(t.TempDir(), dbRelPath)
	require.Error(t, err)
	assert.True(t, errors.IsDatabaseError(err))
}

func TestStale(t *testing.T) {
	root := newDeviceRoot(t, [][2]string{
		{"SciFi", "file:///mnt/onboard/Clarke - 2001.epub"},
		{"SciFi", "file:///mnt/onboard/Gone Book.epub"},
		{"History", "file:///mnt/onboard/Clarke - 2001.epub"},
	})

	store, err := Open(root, dbRelPath)
	require.NoError(t, err)
	defer store.Close()

	stale, err := store.Stale([]string{"Clarke - 2001.epub"})
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "SciFi", stale[0].Shelf)
	assert.Equal(t, "Gone Book.epub", stale[0].Filename)
}

func TestStaleUnsortedInput(t *testing.T) {
	root := newDeviceRoot(t, nil)
	store, err := Open(root, dbRelPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Stale([]string{"b.epub", "a.epub"})
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
}

func TestClean(t *testing.T) {
	root := newDeviceRoot(t, [][2]string{
		{"SciFi", "file:///mnt/onboard/Clarke - 2001.epub"},
		{"SciFi", "file:///mnt/onboard/Gone Book.epub"},
	})

	store, err := Open(root, dbRelPath)
	require.NoError(t, err)
	defer store.Close()

	removed, err := store.Clean([]string{"Clarke - 2001.epub"})
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "Gone Book.epub", removed[0].Filename)

	// The stale row is gone, the live one survives.
	stale, err := store.Stale([]string{"Clarke - 2001.epub"})
	require.NoError(t, err)
	assert.Empty(t, stale)

	entries, err := store.shelfContent()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Clarke - 2001.epub", entries[0].Filename)
}

func TestCleanNothingStale(t *testing.T) {
	root := newDeviceRoot(t, [][2]string{
		{"SciFi", "file:///mnt/onboard/Clarke - 2001.epub"},
	})

	store, err := Open(root, dbRelPath)
	require.NoError(t, err)
	defer store.Close()

	removed, err := store.Clean([]string{"Clarke - 2001.epub"})
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestBackup(t *testing.T) {
	root := newDeviceRoot(t, nil)

	dst, err := Backup(root, dbRelPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".kobo", "KoboReader - Copy.sqlite"), dst)

	src, err := os.ReadFile(filepath.Join(root, dbRelPath))
	require.NoError(t, err)
	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, src, copied)
}

func TestDerivedName(t *testing.T) {
	assert.Equal(t, "Book.epub", derivedName("file:///mnt/onboard/Book.epub"))
	assert.Equal(t, "Book.epub", derivedName("Book.epub"))
}
