// Package normalize implements the batch filename cleanup passes: spacing,
// comma spacing, apostrophe repair, and substring removal, plus the
// read-only audit scans. Destructive passes record their renames in the
// shared undo ledger.
package normalize

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"booktidy/internal/errors"
	"booktidy/internal/ledger"
	"booktidy/internal/log"
)

// CollisionFunc decides what to do when a proposed rename target already
// exists: return a replacement name, or ok=false to skip the file. The
// interactive layer supplies a prompt-backed implementation.
type CollisionFunc func(oldName, proposed string) (string, bool)

// Engine applies cleanup passes to the files of one directory.
type Engine struct {
	// Resolve handles rename collisions. A nil Resolve skips colliding
	// files.
	Resolve CollisionFunc
}

// Change records one applied rename.
type Change struct {
	Old string
	New string
}

// Result summarizes a cleanup pass.
type Result struct {
	Changes []Change
	Skipped []string // files left alone after a collision
}

// trailingSpaceExts are the extensions that get a trailing-space trim
// immediately before the extension separator.
var trailingSpaceExts = []string{".epub", ".mobi", ".pdf"}

var (
	multiSpace = regexp.MustCompile(`\s{2,}`)
	spaceComma = regexp.MustCompile(`\s+,`)
	tightComma = regexp.MustCompile(`,([^\s\d])`)
)

// FixSpacing collapses runs of two or more whitespace characters to a
// single space and trims spaces sitting directly before the extension
// separator of known book extensions.
func FixSpacing(name string) string {
	name = multiSpace.ReplaceAllString(name, " ")
	lower := strings.ToLower(name)
	for _, ext := range trailingSpaceExts {
		if strings.HasSuffix(lower, ext) {
			stem := name[:len(name)-len(ext)]
			name = strings.TrimRight(stem, " ") + name[len(name)-len(ext):]
			break
		}
	}
	return name
}

// FixCommas removes whitespace before commas and inserts one space after a
// comma followed by a non-space character. A comma directly followed by a
// digit is a thousands separator and is left untouched.
func FixCommas(name string) string {
	name = spaceComma.ReplaceAllString(name, ",")
	return tightComma.ReplaceAllString(name, ", $1")
}

// FixApostrophes replaces every underscore with a letter on both sides by
// an apostrophe, recovering names mangled by filesystem-unsafe character
// substitution ("Don_t" -> "Don't"). Overlapping runs are all repaired
// ("O_Brien_s" -> "O'Brien's").
func FixApostrophes(name string) string {
	b := []byte(name)
	for i := 1; i < len(b)-1; i++ {
		if b[i] == '_' && isLetter(b[i-1]) && isLetter(b[i+1]) {
			b[i] = '\''
		}
	}
	return string(b)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// CleanSpacing runs the spacing pass over names in dir.
func (e *Engine) CleanSpacing(dir string, names []string, led *ledger.Ledger) (Result, error) {
	return e.run(dir, names, led, FixSpacing)
}

// CleanCommas runs the comma-spacing pass over names in dir.
func (e *Engine) CleanCommas(dir string, names []string, led *ledger.Ledger) (Result, error) {
	return e.run(dir, names, led, FixCommas)
}

// CleanApostrophes runs the apostrophe-repair pass over names in dir.
func (e *Engine) CleanApostrophes(dir string, names []string, led *ledger.Ledger) (Result, error) {
	return e.run(dir, names, led, FixApostrophes)
}

// RemoveSubstring removes the first occurrence of substring from every
// name that contains it.
func (e *Engine) RemoveSubstring(dir string, names []string, substring string, led *ledger.Ledger) (Result, error) {
	if substring == "" {
		return Result{}, errors.NewInputError("empty substring", substring, errors.InvalidInput)
	}
	return e.run(dir, names, led, func(name string) string {
		return strings.Replace(name, substring, "", 1)
	})
}

// run clears the ledger, applies transform to every name, and renames the
// files that changed. The ledger is cleared even when nothing changes, so
// a no-op pass still discards the previous operation's undo state. Ledger
// entries are written only after a rename succeeded.
func (e *Engine) run(dir string, names []string, led *ledger.Ledger, transform func(string) string) (Result, error) {
	led.Clear()
	var res Result
	for _, name := range names {
		proposed := transform(name)
		if proposed == name {
			continue
		}
		final, renamed, err := e.rename(dir, name, proposed)
		if err != nil {
			return res, err
		}
		if !renamed {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		led.Record(final, name)
		res.Changes = append(res.Changes, Change{Old: name, New: final})
	}
	return res, nil
}

// rename moves oldName to proposed inside dir, deferring to the collision
// resolver when the target already exists. Returns the final name and
// whether a rename happened.
func (e *Engine) rename(dir, oldName, proposed string) (string, bool, error) {
	target := proposed
	if _, err := os.Stat(filepath.Join(dir, target)); err == nil {
		log.Warn("target already exists: %s", target)
		if e.Resolve == nil {
			return "", false, nil
		}
		replacement, ok := e.Resolve(oldName, target)
		if !ok {
			return "", false, nil
		}
		target = replacement
	}
	if err := os.Rename(filepath.Join(dir, oldName), filepath.Join(dir, target)); err != nil {
		return "", false, errors.NewFileError("rename failed", filepath.Join(dir, oldName), errors.RenameFailed, err)
	}
	return target, true, nil
}
