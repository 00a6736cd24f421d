package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short.epub", truncate("short.epub", 60))
	long := "Smith, John - An Exceedingly Long Title That Keeps Going and Going.epub"
	got := truncate(long, 60)
	assert.Len(t, got, 57)
	assert.Equal(t, "...", got[54:])
}

func TestTrimExt(t *testing.T) {
	assert.Equal(t, "Great War", trimExt("Great War.epub"))
	assert.Equal(t, "Great War.kepub", trimExt("Great War.kepub.epub"))
	assert.Equal(t, "no extension", trimExt("no extension"))
	assert.Equal(t, ".hidden", trimExt(".hidden"))
}
