package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareDirs(t *testing.T) {
	names1 := []string{
		"Smith, John - Great War.epub",
		"Smith, John - Great Warr.epub", // near-duplicate of the first
		"Completely Different Thing.epub",
	}
	names2 := []string{
		"Smith, John - Great War.mobi", // same base, other extension
	}

	cmp := CompareDirs(names1, names2, 0.9, nil)

	assert.Equal(t, []string{"Smith, John - Great War"}, cmp.Identical)
	assert.Equal(t, []Pair{
		{A: "Smith, John - Great Warr", B: "Smith, John - Great War"},
	}, cmp.Similar)
	assert.Equal(t, []string{"Completely Different Thing"}, cmp.Missing)
}

func TestCompareDirsEmptySecondDir(t *testing.T) {
	cmp := CompareDirs([]string{"a.epub"}, nil, 0.9, nil)
	assert.Empty(t, cmp.Identical)
	assert.Empty(t, cmp.Similar)
	assert.Equal(t, []string{"a"}, cmp.Missing)
}

func TestCompareWithin(t *testing.T) {
	names := []string{
		"Smith, John - Great War.epub",
		"Smith, John - Great Warr.epub",
		"Completely Different Thing.epub",
	}

	similar := CompareWithin(names, 0.9, nil)

	// Both directions of the near-duplicate pair are reported.
	assert.Equal(t, []Pair{
		{A: "Smith, John - Great War", B: "Smith, John - Great Warr"},
		{A: "Smith, John - Great Warr", B: "Smith, John - Great War"},
	}, similar)
}

func TestCompareWithinNoMatches(t *testing.T) {
	assert.Empty(t, CompareWithin([]string{"abc.epub", "xyz.epub"}, 0.9, nil))
}
