// Package epub inspects epub containers (plain zip archives) for the size
// of their cover image and bundled images directory, without extracting
// anything.
package epub

import (
	"archive/zip"
	"path/filepath"
	"sort"
	"strings"

	"booktidy/internal/errors"
	"booktidy/internal/log"
)

// Info holds the image-size findings for one book.
type Info struct {
	Name       string
	HasCover   bool
	CoverSize  int64 // uncompressed size of cover.jpg / cover.jpeg
	ImagesSize int64 // cumulative uncompressed size of images/ entries
	ImageCount int   // number of images/ entries
}

// Inspect reads the zip directory of one epub and sums its cover and
// images/ entry sizes. Images commonly nest under a package directory
// (OEBPS/images/...), so any path segment "images/" counts.
func Inspect(path string) (Info, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return Info{}, errors.NewFileError("cannot open archive", path, errors.InvalidPath, err)
	}
	defer r.Close()

	var info Info
	for _, f := range r.File {
		lower := strings.ToLower(f.Name)
		if lower == "cover.jpg" || lower == "cover.jpeg" {
			info.HasCover = true
			info.CoverSize = int64(f.UncompressedSize64)
		}
		if strings.Contains(lower, "images/") {
			info.ImagesSize += int64(f.UncompressedSize64)
			info.ImageCount++
		}
	}
	return info, nil
}

// InspectAll inspects every .epub in names (other extensions are skipped).
// An unreadable archive is logged and skipped rather than aborting the
// whole scan.
func InspectAll(dir string, names []string) []Info {
	var infos []Info
	for _, name := range names {
		if !strings.HasSuffix(strings.ToLower(name), ".epub") {
			continue
		}
		info, err := Inspect(filepath.Join(dir, name))
		if err != nil {
			log.Warn("skipping %s: %v", name, err)
			continue
		}
		info.Name = name
		infos = append(infos, info)
	}
	return infos
}

// ListCovers returns the books that carry a cover entry, largest first.
func ListCovers(infos []Info) []Info {
	var covers []Info
	for _, info := range infos {
		if info.HasCover {
			covers = append(covers, info)
		}
	}
	sort.Slice(covers, func(i, j int) bool {
		if covers[i].CoverSize != covers[j].CoverSize {
			return covers[i].CoverSize > covers[j].CoverSize
		}
		return covers[i].Name > covers[j].Name
	})
	return covers
}

// ListImages returns the books with a non-empty images directory, largest
// first.
func ListImages(infos []Info) []Info {
	var images []Info
	for _, info := range infos {
		if info.ImagesSize > 0 {
			images = append(images, info)
		}
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].ImagesSize != images[j].ImagesSize {
			return images[i].ImagesSize > images[j].ImagesSize
		}
		return images[i].Name > images[j].Name
	})
	return images
}
