// Package device reconciles the shelf collections recorded in a Kobo
// reader's on-device KoboReader.sqlite database against the book files
// actually present on the device.
package device

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"booktidy/internal/errors"
	"booktidy/internal/log"
)

// ShelfEntry is one row of the ShelfContent table, with the filename
// derived from the trailing path segment of its content identifier.
type ShelfEntry struct {
	Shelf     string
	ContentID string
	Filename  string
}

// Store wraps the device's collections database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the collections database under the device root, e.g.
// <root>/.kobo/KoboReader.sqlite.
func Open(deviceRoot, relPath string) (*Store, error) {
	path := filepath.Join(deviceRoot, relPath)
	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewDatabaseError("database not found", "open", errors.DatabaseOpenFailed, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.NewDatabaseError("cannot open database", "open", errors.DatabaseOpenFailed, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// shelfContent reads every (shelf, content id) row.
func (s *Store) shelfContent() ([]ShelfEntry, error) {
	rows, err := s.db.Query("SELECT ShelfName, ContentId FROM ShelfContent")
	if err != nil {
		return nil, errors.NewDatabaseError("query failed", "select", errors.DatabaseQueryFailed, err)
	}
	defer rows.Close()

	var entries []ShelfEntry
	for rows.Next() {
		var e ShelfEntry
		if err := rows.Scan(&e.Shelf, &e.ContentID); err != nil {
			return nil, errors.NewDatabaseError("scan failed", "select", errors.DatabaseQueryFailed, err)
		}
		e.Filename = derivedName(e.ContentID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("row iteration failed", "select", errors.DatabaseQueryFailed, err)
	}
	return entries, nil
}

// Stale returns the shelf entries whose derived filename is absent from
// the given name-sorted book list. Lookups are binary searches, so the
// list must be sorted; sortedness is verified up front.
func (s *Store) Stale(sortedBooks []string) ([]ShelfEntry, error) {
	if !sort.StringsAreSorted(sortedBooks) {
		return nil, errors.NewPreconditionError("book list is not sorted")
	}
	entries, err := s.shelfContent()
	if err != nil {
		return nil, err
	}
	var stale []ShelfEntry
	for _, e := range entries {
		i := sort.SearchStrings(sortedBooks, e.Filename)
		if i >= len(sortedBooks) || sortedBooks[i] != e.Filename {
			stale = append(stale, e)
		}
	}
	return stale, nil
}

// Clean deletes every stale shelf entry, one delete statement per row
// inside a single transaction, and returns the removed entries.
func (s *Store) Clean(sortedBooks []string) ([]ShelfEntry, error) {
	stale, err := s.Stale(sortedBooks)
	if err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, errors.NewDatabaseError("cannot begin transaction", "delete", errors.DatabaseOperationFailed, err)
	}
	for _, e := range stale {
		if _, err := tx.Exec("DELETE FROM ShelfContent WHERE ContentId = ?", e.ContentID); err != nil {
			_ = tx.Rollback()
			return nil, errors.NewDatabaseError("delete failed", "delete", errors.DatabaseOperationFailed, err)
		}
		log.Debug("removed %s from collection %s", e.Filename, e.Shelf)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.NewDatabaseError("commit failed", "delete", errors.DatabaseOperationFailed, err)
	}
	return stale, nil
}

// Backup copies the collections database beside itself with a " - Copy"
// suffix and returns the copy's path. An existing copy is overwritten.
func Backup(deviceRoot, relPath string) (string, error) {
	src := filepath.Join(deviceRoot, relPath)
	ext := filepath.Ext(src)
	dst := strings.TrimSuffix(src, ext) + " - Copy" + ext

	in, err := os.Open(src)
	if err != nil {
		return "", errors.NewFileError("cannot open database", src, errors.FileNotFound, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.NewFileError("cannot create backup", dst, errors.InvalidPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", errors.NewFileError("backup copy failed", dst, errors.Unknown, err)
	}
	return dst, nil
}

// derivedName returns the part of a content identifier after its last
// slash.
func derivedName(contentID string) string {
	if i := strings.LastIndex(contentID, "/"); i >= 0 {
		return contentID[i+1:]
	}
	return contentID
}
