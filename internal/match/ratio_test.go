package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuickRatio(t *testing.T) {
	assert.Equal(t, 1.0, QuickRatio("Great War", "Great War"))
	assert.Equal(t, 1.0, QuickRatio("", ""))
	assert.Equal(t, 0.0, QuickRatio("abc", "xyz"))

	// Multiplicity counting: "abc" vs "abd" share a and b.
	assert.InDelta(t, 2.0/3.0, QuickRatio("abc", "abd"), 1e-9)

	// Order does not matter, only character counts do.
	assert.Equal(t, 1.0, QuickRatio("abc", "cba"))

	// Repeated characters are only claimed as often as they appear.
	assert.InDelta(t, 2.0*1.0/5.0, QuickRatio("aaa", "ab"), 1e-9)
}

func TestQuickRatioSymmetricScore(t *testing.T) {
	a := "Smith, John - Great War"
	b := "Smith, John - Great Warr"
	assert.InDelta(t, QuickRatio(a, b), QuickRatio(b, a), 1e-9)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "Great War", baseName("Great War.epub"))
	assert.Equal(t, "Great War.kepub", baseName("Great War.kepub.epub"))
	assert.Equal(t, "no extension", baseName("no extension"))
	assert.Equal(t, ".hidden", baseName(".hidden"))
}
