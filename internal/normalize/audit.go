package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"booktidy/internal/grammar"
)

// Audit scans are read-only: they report suspicious names and never
// rename. Hyphen and capitalization findings are heuristics with known
// false positives (hyphenated surnames, non-English capitalization), which
// is why they only report.

var (
	looseHyphen  = regexp.MustCompile(`(\S-\S)|(\S-\s)|(\s-\S)`)
	authorPrefix = regexp.MustCompile(`.+,.+-`)
	auditStrip   = regexp.MustCompile(`[,\-!'_()]`)
)

// CapFinding points at one suspiciously lowercase word in a filename.
type CapFinding struct {
	Name string
	Word string
}

func hasExt(name string, exts ...string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindLooseHyphens reports names containing a hyphen not surrounded by
// spaces. Legitimate in "Saint-Exupéry, Antoine de"; suspicious in
// "Clarke, Arthur-2001".
func FindLooseHyphens(names []string) []string {
	var found []string
	for _, name := range names {
		if hasExt(name, ".epub", ".mobi") && looseHyphen.MatchString(name) {
			found = append(found, name)
		}
	}
	return found
}

// FindMissingAuthors reports names that don't appear to start with an
// "<Surname, Name> -" author segment.
func FindMissingAuthors(names []string) []string {
	var found []string
	for _, name := range names {
		if hasExt(name, ".epub", ".mobi") && !authorPrefix.MatchString(name) {
			found = append(found, name)
		}
	}
	return found
}

// FindMissingCapitalization reports words starting with a lowercase letter
// that are not recognized function words. Non-English titles following
// different capitalization rules will be flagged too.
func FindMissingCapitalization(names []string) []CapFinding {
	var found []CapFinding
	for _, name := range names {
		if !hasExt(name, ".epub", ".mobi") {
			continue
		}
		stem := name[:len(name)-5]
		for _, word := range strings.Fields(auditStrip.ReplaceAllString(stem, "")) {
			if grammar.IsStopWord(word) {
				continue
			}
			r := []rune(word)[0]
			if unicode.IsLower(r) {
				found = append(found, CapFinding{Name: name, Word: word})
			}
		}
	}
	return found
}

// FindSubtitles reports names containing an underscore, the marker of a
// possible subtitle.
func FindSubtitles(names []string) []string {
	var found []string
	for _, name := range names {
		if hasExt(name, ".epub", ".mobi", ".pdf") && strings.Contains(name, "_") {
			found = append(found, name)
		}
	}
	return found
}
