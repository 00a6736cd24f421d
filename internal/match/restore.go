package match

import (
	"os"
	"path/filepath"
	"strings"

	"booktidy/internal/errors"
	"booktidy/internal/ledger"
	"booktidy/internal/log"
)

// CollisionFunc decides what to do when a rename target already exists:
// return a replacement name, or ok=false to skip the file.
type CollisionFunc func(oldName, proposed string) (string, bool)

// AuthorRestore records one target file renamed to its reference name.
type AuthorRestore struct {
	Old string
	New string
}

// RestoreOutcome summarizes an author-restoration pass.
type RestoreOutcome struct {
	Renamed  []AuthorRestore
	NotFound []string // targets with no matching reference title
	Skipped  []string // targets left alone after a collision
}

// RestoreAuthors renames title-only files in dir to the full
// "<Authors> - <Title>" name of the first reference file whose title
// matches the target's base name exactly (case-sensitive), keeping the
// target's own extension. The first match wins: a matched target is never
// also reported as not found. References without a " - " separator are
// ignored.
//
// Matching assumes the reference file really is the same book, which is
// not guaranteed; a wrong match is undone via the ledger.
func RestoreAuthors(dir string, targets, refs []string, led *ledger.Ledger, resolve CollisionFunc) (RestoreOutcome, error) {
	led.Clear()
	var out RestoreOutcome

	for _, target := range targets {
		base := baseName(target)
		ext := extOf(target)
		matched := false

		for _, ref := range refs {
			refBase := baseName(ref)
			i := strings.Index(refBase, " - ")
			if i < 0 || refBase[i+3:] != base {
				continue
			}
			matched = true

			proposed := refBase + ext
			final := proposed
			if _, err := os.Stat(filepath.Join(dir, final)); err == nil {
				log.Warn("target already exists: %s", final)
				var ok bool
				if resolve == nil {
					ok = false
				} else {
					final, ok = resolve(target, proposed)
				}
				if !ok {
					out.Skipped = append(out.Skipped, target)
					break
				}
			}
			if err := os.Rename(filepath.Join(dir, target), filepath.Join(dir, final)); err != nil {
				return out, errors.NewFileError("rename failed", filepath.Join(dir, target), errors.RenameFailed, err)
			}
			led.Record(final, target)
			out.Renamed = append(out.Renamed, AuthorRestore{Old: target, New: final})
			break
		}

		if !matched {
			out.NotFound = append(out.NotFound, target)
		}
	}
	return out, nil
}
