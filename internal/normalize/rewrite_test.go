package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktidy/internal/ledger"
)

func TestStripToTitles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Smith, John - Great War_ A History, The.epub")

	led := ledger.New()
	e := &Engine{}
	res, err := e.StripToTitles(dir, []string{"Smith, John - Great War_ A History, The.epub"}, led)
	require.NoError(t, err)

	assert.Equal(t, []Change{{
		Old: "Smith, John - Great War_ A History, The.epub",
		New: "The Great War.epub",
	}}, res.Changes)
	assert.True(t, exists(dir, "The Great War.epub"))

	// Undo brings the original name back.
	restored, err := led.Restore(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Restored)
	assert.True(t, exists(dir, "Smith, John - Great War_ A History, The.epub"))
}

func TestStripSubtitles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Smith, John - Great War_ A History, The.epub")

	led := ledger.New()
	e := &Engine{}
	res, err := e.StripSubtitles(dir, []string{"Smith, John - Great War_ A History, The.epub"}, led)
	require.NoError(t, err)

	assert.Equal(t, []Change{{
		Old: "Smith, John - Great War_ A History, The.epub",
		New: "Smith, John - The Great War.epub",
	}}, res.Changes)
	assert.True(t, exists(dir, "Smith, John - The Great War.epub"))
}
