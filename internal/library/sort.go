package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"booktidy/internal/grammar"
)

// SortKey selects the ordering applied to a working set.
type SortKey int

// Supported sort keys.
const (
	ByAuthor   SortKey = iota // case-insensitive full filename
	ByTitle                   // case-insensitive title, leading article ignored
	ByModified                // modification time, newest first
	BySize                    // byte size, largest first
)

// Sorted holds a sorted view of a working set. Details carries one display
// string per name (timestamps or sizes) for the keys that have them, or is
// nil otherwise.
type Sorted struct {
	Names   []string
	Details []string
	Label   string
}

// Sort returns a sorted copy of the working set under the given key. The
// working set itself is not reordered. Date and size sorts stat each file;
// a stat failure aborts the sort with the underlying error.
func (ws *WorkingSet) Sort(key SortKey) (*Sorted, error) {
	names := make([]string, len(ws.Names))
	copy(names, ws.Names)

	switch key {
	case ByAuthor:
		sort.SliceStable(names, func(i, j int) bool {
			return strings.ToLower(names[i]) < strings.ToLower(names[j])
		})
		return &Sorted{Names: names, Label: "by author"}, nil

	case ByTitle:
		keys := make(map[string]string, len(names))
		for _, name := range names {
			title := grammar.TitleOf(name)
			keys[name] = strings.ToLower(grammar.TrimLeadingArticle(title))
		}
		sort.SliceStable(names, func(i, j int) bool {
			return keys[names[i]] < keys[names[j]]
		})
		return &Sorted{Names: names, Label: "by title"}, nil

	case ByModified:
		type stamped struct {
			mtime time.Time
			name  string
		}
		items := make([]stamped, 0, len(names))
		for _, name := range names {
			info, err := os.Stat(filepath.Join(ws.Dir, name))
			if err != nil {
				return nil, err
			}
			items = append(items, stamped{info.ModTime(), name})
		}
		sort.SliceStable(items, func(i, j int) bool {
			if !items[i].mtime.Equal(items[j].mtime) {
				return items[i].mtime.After(items[j].mtime)
			}
			return items[i].name > items[j].name
		})
		sorted := &Sorted{Label: "by date modified"}
		for _, item := range items {
			sorted.Names = append(sorted.Names, item.name)
			sorted.Details = append(sorted.Details, item.mtime.Format("2006-01-02 15:04:05"))
		}
		return sorted, nil

	case BySize:
		type sized struct {
			size int64
			name string
		}
		items := make([]sized, 0, len(names))
		for _, name := range names {
			info, err := os.Stat(filepath.Join(ws.Dir, name))
			if err != nil {
				return nil, err
			}
			items = append(items, sized{info.Size(), name})
		}
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].size != items[j].size {
				return items[i].size > items[j].size
			}
			return items[i].name > items[j].name
		})
		sorted := &Sorted{Label: "by size"}
		for _, item := range items {
			sorted.Names = append(sorted.Names, item.name)
			sorted.Details = append(sorted.Details, fmt.Sprintf("%d bytes", item.size))
		}
		return sorted, nil
	}

	return nil, fmt.Errorf("unknown sort key: %d", key)
}
