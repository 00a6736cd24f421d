package match

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktidy/internal/errors"
)

func write(t *testing.T, dir, name string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0644))
}

func TestCompareSizes(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	write(t, dir1, "Big Book.epub", 1000)
	write(t, dir2, "big book.mobi", 400) // matched case-insensitively by base
	write(t, dir1, "Even.epub", 500)
	write(t, dir2, "Even.epub", 500) // equal sizes, never reported
	write(t, dir1, "Only Here.epub", 300)

	pairs, err := CompareSizes(dir1,
		[]string{"Big Book.epub", "Even.epub", "Only Here.epub"},
		dir2,
		[]string{"big book.mobi", "Even.epub"},
		0.5)
	require.NoError(t, err)

	assert.Equal(t, []SizePair{{Size1: 1000, Size2: 400, Base: "Big Book"}}, pairs)
	assert.InDelta(t, 60.0, pairs[0].PercentLarger(), 1e-9)
}

func TestCompareSizesShareCutoff(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	write(t, dir1, "Book.epub", 1000)
	write(t, dir2, "Book.epub", 400)

	// Difference is 600, or 60% of the dir1 size.
	pairs, err := CompareSizes(dir1, []string{"Book.epub"}, dir2, []string{"Book.epub"}, 0.7)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	pairs, err = CompareSizes(dir1, []string{"Book.epub"}, dir2, []string{"Book.epub"}, 0)
	require.NoError(t, err)
	assert.Len(t, pairs, 1)
}

func TestCompareSizesBadShare(t *testing.T) {
	_, err := CompareSizes(t.TempDir(), nil, t.TempDir(), nil, 1.5)
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))
}

func TestCompareSizesUnsortedSecondListing(t *testing.T) {
	_, err := CompareSizes(t.TempDir(), nil, t.TempDir(), []string{"b.epub", "a.epub"}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.IsPrecondition(err))
}

func TestCompareSizesResultOrdering(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	write(t, dir1, "Alpha.epub", 500)
	write(t, dir2, "Alpha.epub", 100)
	write(t, dir1, "Beta.epub", 900)
	write(t, dir2, "Beta.epub", 100)

	pairs, err := CompareSizes(dir1,
		[]string{"Alpha.epub", "Beta.epub"},
		dir2,
		[]string{"Alpha.epub", "Beta.epub"},
		0)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Beta", pairs[0].Base)
	assert.Equal(t, "Alpha", pairs[1].Base)
}
