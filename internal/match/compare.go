package match

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Pair is one (name a, name b) similarity hit, base names only.
type Pair struct {
	A string
	B string
}

// DirComparison is the outcome of comparing two directory listings.
type DirComparison struct {
	Identical []string // base names present in both listings
	Similar   []Pair   // near-matches at or above the threshold
	Missing   []string // dir1 base names with no exact or similar match
}

// CompareDirs compares the base names of two listings. A ratio of exactly
// 1.0 classifies a pair as identical and ends the scan for that entry; a
// ratio at or above threshold (but below 1.0) records a similar pair and
// keeps scanning, so one name can pair with several others. Entries with
// neither kind of match are reported missing.
//
// Cost is O(|dir1|*|dir2|) ratio computations by design; progress is
// reported on the given writer (nil for silent). Swapping the listings
// answers the reverse question.
func CompareDirs(names1, names2 []string, threshold float64, progress io.Writer) DirComparison {
	var cmp DirComparison
	bar := newBar(len(names1), progress)
	for _, name1 := range names1 {
		b1 := baseName(name1)
		found := false
		for _, name2 := range names2 {
			b2 := baseName(name2)
			ratio := QuickRatio(b1, b2)
			if ratio == 1 {
				cmp.Identical = append(cmp.Identical, b1)
				found = true
				break
			}
			if ratio >= threshold {
				cmp.Similar = append(cmp.Similar, Pair{A: b1, B: b2})
				found = true
			}
		}
		if !found {
			cmp.Missing = append(cmp.Missing, b1)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return cmp
}

// CompareWithin reports all ordered pairs of distinct names in one listing
// whose base names score at or above threshold. Both directions of every
// pair appear, matching the historical output of this report.
func CompareWithin(names []string, threshold float64, progress io.Writer) []Pair {
	var similar []Pair
	bar := newBar(len(names), progress)
	for i, name1 := range names {
		b1 := baseName(name1)
		for j, name2 := range names {
			if i == j {
				continue
			}
			b2 := baseName(name2)
			if QuickRatio(b1, b2) >= threshold {
				similar = append(similar, Pair{A: b1, B: b2})
			}
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return similar
}

func newBar(total int, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("comparing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
