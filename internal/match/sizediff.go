package match

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"booktidy/internal/errors"
)

// SizePair reports a dir1 file that is larger than the identically named
// dir2 file.
type SizePair struct {
	Size1 int64  // byte size in dir1
	Size2 int64  // byte size in dir2
	Base  string // shared base name
}

// PercentLarger is the size difference as a share of the dir1 size, in
// percent.
func (p SizePair) PercentLarger() float64 {
	return float64(p.Size1-p.Size2) / float64(p.Size1) * 100
}

// CompareSizes finds files of dir1 whose base name exactly matches a file
// of dir2 (case-insensitive) and whose dir1 size exceeds the dir2 size by
// at least share of the dir1 size. share 0 reports every larger pair;
// share 1 reports none.
//
// Both listings must be filtered to book extensions, and names2 must be
// ordered so its lowercased base names are sorted: each lookup is a binary
// search. The precondition is checked up front and violated input fails
// fast instead of producing silent mismatches. Results are sorted
// descending by (Size1, Size2).
func CompareSizes(dir1 string, names1 []string, dir2 string, names2 []string, share float64) ([]SizePair, error) {
	if share < 0 || share > 1 {
		return nil, errors.NewInputError("share must be within [0, 1]", "", errors.InvalidInput)
	}

	bases2 := make([]string, len(names2))
	for i, name := range names2 {
		bases2[i] = strings.ToLower(baseName(name))
	}
	if !sort.StringsAreSorted(bases2) {
		return nil, errors.NewPreconditionError("second listing is not name-sorted")
	}

	var pairs []SizePair
	for _, name1 := range names1 {
		b1 := strings.ToLower(baseName(name1))
		i := sort.SearchStrings(bases2, b1)
		if i >= len(bases2) || bases2[i] != b1 {
			continue
		}

		info1, err := os.Stat(filepath.Join(dir1, name1))
		if err != nil {
			return nil, errors.NewFileError("cannot stat", filepath.Join(dir1, name1), errors.FileNotFound, err)
		}
		info2, err := os.Stat(filepath.Join(dir2, names2[i]))
		if err != nil {
			return nil, errors.NewFileError("cannot stat", filepath.Join(dir2, names2[i]), errors.FileNotFound, err)
		}

		size1, size2 := info1.Size(), info2.Size()
		if size1 > size2 && float64(size1-size2) >= float64(size1)*share {
			pairs = append(pairs, SizePair{Size1: size1, Size2: size2, Base: baseName(name1)})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Size1 != pairs[j].Size1 {
			return pairs[i].Size1 > pairs[j].Size1
		}
		if pairs[i].Size2 != pairs[j].Size2 {
			return pairs[i].Size2 > pairs[j].Size2
		}
		return pairs[i].Base > pairs[j].Base
	})
	return pairs, nil
}
