// Package ledger records one generation of rename mappings so the latest
// destructive batch operation can be rolled back. Only a single level of
// undo exists: every destructive operation clears the ledger before
// repopulating it.
package ledger

import (
	"os"
	"path/filepath"

	"booktidy/internal/errors"
	"booktidy/internal/log"
)

// Entry maps a post-rename filename back to its pre-rename filename.
type Entry struct {
	New string
	Old string
}

// Ledger is an ordered new-name to old-name mapping. Iteration follows
// insertion order so restore behaves deterministically.
type Ledger struct {
	order []string
	old   map[string]string
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{old: make(map[string]string)}
}

// Clear discards all recorded renames. Every destructive operation calls
// this first, which also discards any undo state from the previous one.
func (l *Ledger) Clear() {
	l.order = l.order[:0]
	l.old = make(map[string]string)
}

// Record stores newName -> oldName. Recording the same new name twice
// keeps the original position and overwrites the mapping.
func (l *Ledger) Record(newName, oldName string) {
	if _, ok := l.old[newName]; !ok {
		l.order = append(l.order, newName)
	}
	l.old[newName] = oldName
}

// Len returns the number of recorded renames.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Entries returns the recorded renames in insertion order.
func (l *Ledger) Entries() []Entry {
	entries := make([]Entry, 0, len(l.order))
	for _, newName := range l.order {
		entries = append(entries, Entry{New: newName, Old: l.old[newName]})
	}
	return entries
}

// RestoreResult reports the outcome of a restore pass.
type RestoreResult struct {
	Restored int      // renames successfully reverted
	Missing  []string // new names that no longer existed on disk
}

// Restore renames every recorded new name in dir back to its old name, in
// insertion order. Missing files are skipped and reported, not fatal. The
// ledger itself is left unchanged, so restore can be re-run safely; after
// the first successful pass a re-run reports every file as missing.
func (l *Ledger) Restore(dir string) (RestoreResult, error) {
	var res RestoreResult
	for _, newName := range l.order {
		oldName := l.old[newName]
		err := os.Rename(filepath.Join(dir, newName), filepath.Join(dir, oldName))
		if err != nil {
			if os.IsNotExist(err) {
				log.Warn("restore: %s not found in %s", newName, dir)
				res.Missing = append(res.Missing, newName)
				continue
			}
			return res, errors.NewFileError("restore failed", filepath.Join(dir, newName), errors.RenameFailed, err)
		}
		res.Restored++
	}
	return res, nil
}
