// Package match implements the string-similarity comparisons between book
// filenames: all-pairs similarity within and across directories, the
// sorted merge size comparator, and author restoration from a reference
// directory.
package match

import "strings"

// QuickRatio returns a similarity score in [0, 1] for two strings: twice
// the number of length-weighted matching characters over the total length.
// It counts character multiplicities rather than computing edit distance,
// trading exactness for speed; identical strings score 1.0.
func QuickRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra)+len(rb) == 0 {
		return 1
	}

	full := make(map[rune]int, len(rb))
	for _, r := range rb {
		full[r]++
	}

	// avail tracks how many of each of b's characters are still unclaimed
	// by characters of a.
	avail := make(map[rune]int, len(full))
	matches := 0
	for _, r := range ra {
		n, seen := avail[r]
		if !seen {
			n = full[r]
		}
		avail[r] = n - 1
		if n > 0 {
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(ra)+len(rb))
}

// baseName strips the extension: everything from the last dot onward.
func baseName(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// extOf returns the trailing ".<ext>" of name, or "".
func extOf(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}
