// Package library manages the in-memory working set of book filenames for
// one directory: scanning with extension filtering, sorting, and subset
// selection.
package library

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"booktidy/internal/errors"
	"booktidy/internal/log"
)

// DefaultExtensions are the recognized book extensions.
var DefaultExtensions = []string{".pdf", ".azw", ".epub", ".mobi"}

// Filter matches filenames against a set of extension glob patterns,
// case-insensitively.
type Filter struct {
	globs []glob.Glob
}

// NewFilter compiles one "*<ext>" glob per extension.
func NewFilter(extensions []string) (*Filter, error) {
	f := &Filter{}
	for _, ext := range extensions {
		g, err := glob.Compile("*" + strings.ToLower(ext))
		if err != nil {
			return nil, errors.Wrapf(err, "bad extension pattern %q", ext)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

// Match reports whether name carries one of the recognized extensions.
func (f *Filter) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, g := range f.globs {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// WorkingSet is the ordered list of book filenames currently loaded from
// one directory. It is owned by a single session and never shared.
type WorkingSet struct {
	Dir   string
	Names []string
}

// Scan lists dir and returns a working set of the filenames matching the
// filter. Subdirectories are skipped.
func Scan(dir string, filter *Filter) (*WorkingSet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot access directory", dir, errors.InvalidPath, err)
	}
	if !info.IsDir() {
		return nil, errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewFileError("cannot read directory", dir, errors.InvalidPath, err)
	}

	ws := &WorkingSet{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filter.Match(entry.Name()) {
			ws.Names = append(ws.Names, entry.Name())
		}
	}
	log.Debug("scanned %s: %d books", dir, len(ws.Names))
	return ws, nil
}

// Path returns the absolute path of a named entry inside the set's
// directory.
func (ws *WorkingSet) Path(name string) string {
	return filepath.Join(ws.Dir, name)
}

// Len returns the number of entries in the working set.
func (ws *WorkingSet) Len() int {
	return len(ws.Names)
}

// Pick returns one filename at random, or "" for an empty set.
func (ws *WorkingSet) Pick() string {
	if len(ws.Names) == 0 {
		return ""
	}
	return ws.Names[rand.Intn(len(ws.Names))]
}
