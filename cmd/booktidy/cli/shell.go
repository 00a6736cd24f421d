package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"booktidy/internal/config"
	"booktidy/internal/device"
	"booktidy/internal/epub"
	"booktidy/internal/errors"
	"booktidy/internal/ledger"
	"booktidy/internal/library"
	"booktidy/internal/match"
	"booktidy/internal/normalize"
)

// Session holds the state of one interactive session: the current
// directory's working set, the undo ledger, and the cleanup engine. It is
// single-threaded and exclusively owned; operations run to completion
// before the next menu choice is read.
type Session struct {
	cfg    *config.Config
	filter *library.Filter
	set    *library.WorkingSet
	led    *ledger.Ledger
	engine *normalize.Engine
}

// NewSession builds a session for the given starting directory. An empty
// dir prompts for one.
func NewSession(cfg *config.Config, dir string) (*Session, error) {
	filter, err := library.NewFilter(cfg.Library.Extensions)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:    cfg,
		filter: filter,
		led:    ledger.New(),
	}
	s.engine = &normalize.Engine{Resolve: s.resolveCollision}

	if dir == "" {
		dir = s.promptDir("Enter path to directory with books: ")
	}
	set, err := library.Scan(dir, filter)
	if err != nil {
		return nil, err
	}
	s.set = set
	return s, nil
}

const menu = `
 0: enter new path
 1: refresh list of books from path
 2: sort and select individual books for processing
 3: remove multiple spacing
 4: fix comma spacing
 5: fix apostrophes
 6: find hyphen without spacing
 7: find possible missing authors at the start
 8: find possible missing capitalization
 9: find books containing possible subtitles
10: keep title only (crop authors and subtitle)
11: keep authors and title (crop subtitle)
12: restore author data from another directory
13: remove substring from filenames
14: restore filenames after modification
15: compare filenames from two directories
16: compare filenames within this directory
17: compare file sizes of identical books
18: find image files above threshold size (.epub only)
19: list covers and images directories by size (.epub only)
20: check device database for stale collection entries
21: remove stale collection entries from device database
22: choose a book at random
`

// Run drives the numbered menu until the user quits.
func (s *Session) Run() {
	for {
		fmt.Print(menu)
		choice := Prompt("\nEnter a number, or X to exit: ")
		if strings.EqualFold(choice, "x") {
			return
		}
		number, err := strconv.Atoi(choice)
		if err != nil {
			PrintWarning("Enter a valid choice.")
			continue
		}
		start := time.Now()
		if err := s.dispatch(number); err != nil {
			PrintError(err.Error())
			continue
		}
		PrintInfo(fmt.Sprintf("Finished in %.3f seconds.", time.Since(start).Seconds()))
	}
}

func (s *Session) dispatch(number int) error {
	switch number {
	case 0:
		return s.changePath()
	case 1:
		return s.refresh()
	case 2:
		return s.selectBooks()
	case 3:
		return s.cleanup("Multiple spacing removed", s.engine.CleanSpacing)
	case 4:
		return s.cleanup("Comma spacing fixed", s.engine.CleanCommas)
	case 5:
		return s.cleanup("Apostrophes fixed", s.engine.CleanApostrophes)
	case 6:
		return s.audit("Hyphen without spacing", normalize.FindLooseHyphens)
	case 7:
		return s.audit("Possible missing author", normalize.FindMissingAuthors)
	case 8:
		return s.auditCapitalization()
	case 9:
		return s.audit("Possible subtitle", normalize.FindSubtitles)
	case 10:
		return s.cleanup("Title kept", s.engine.StripToTitles)
	case 11:
		return s.cleanup("Subtitle cropped", s.engine.StripSubtitles)
	case 12:
		return s.restoreAuthors()
	case 13:
		return s.removeSubstring()
	case 14:
		return s.restore()
	case 15:
		return s.compareDirs()
	case 16:
		return s.compareWithin()
	case 17:
		return s.compareSizes()
	case 18:
		return s.imageThresholds()
	case 19:
		return s.imageListing()
	case 20:
		return s.deviceCheck()
	case 21:
		return s.deviceClean()
	case 22:
		return s.randomBook()
	}
	PrintWarning("Enter a valid number.")
	return nil
}

// promptDir loops until it gets a usable directory path.
func (s *Session) promptDir(label string) string {
	for {
		dir := Prompt(label)
		if dir == "" {
			PrintWarning("Enter a path.")
			continue
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			PrintWarning("Not a directory: " + dir)
			continue
		}
		return dir
	}
}

// resolveCollision implements the rename-or-skip decision when a rename
// target already exists. The batch continues either way.
func (s *Session) resolveCollision(oldName, proposed string) (string, bool) {
	PrintWarning(fmt.Sprintf("File with proposed name %s already exists.", proposed))
	if s.cfg.Settings.Collision == "skip" {
		PrintInfo(fmt.Sprintf("File %s not renamed.", oldName))
		return "", false
	}
	for {
		choice := Prompt("Press N to enter a new filename or O to keep the old filename: ")
		switch strings.ToLower(choice) {
		case "n":
			if name := Prompt("Enter a new filename: "); name != "" {
				return name, true
			}
		case "o":
			PrintInfo(fmt.Sprintf("File %s not renamed.", oldName))
			return "", false
		}
		PrintWarning("Enter a valid choice.")
	}
}

func (s *Session) changePath() error {
	dir := s.promptDir("Enter path to directory with books: ")
	set, err := library.Scan(dir, s.filter)
	if err != nil {
		return err
	}
	s.set = set
	s.led.Clear()
	PrintSuccess("New path: " + dir)
	return nil
}

func (s *Session) refresh() error {
	set, err := library.Scan(s.set.Dir, s.filter)
	if err != nil {
		return err
	}
	s.set = set
	PrintSuccess(fmt.Sprintf("List of books from path %s refreshed (%d books).", s.set.Dir, s.set.Len()))
	return nil
}

// rescan reloads the directory after a destructive pass so the working set
// reflects the new names.
func (s *Session) rescan() {
	set, err := library.Scan(s.set.Dir, s.filter)
	if err != nil {
		PrintWarning("Could not refresh book list: " + err.Error())
		return
	}
	s.set = set
}

func (s *Session) selectBooks() error {
	sorted, err := s.sortPrompt()
	if err != nil {
		return err
	}
	PrintHeader("Books sorted " + sorted.Label)
	printSorted(sorted)

	for {
		expr := Prompt("\nSelect books by individual numbers or ranges (from-to), separated by commas: ")
		indices, err := library.ParseSelection(expr, len(sorted.Names))
		if err != nil {
			if errors.IsInputError(err) {
				PrintWarning("Incorrect input for selected books. Enter a valid input.")
				continue
			}
			return err
		}
		selected := library.Select(sorted.Names, indices)
		PrintHeader(fmt.Sprintf("Selected books (%d)", len(selected)))
		for i, name := range selected {
			fmt.Printf("%4d %s\n", i+1, name)
		}
		s.set = &library.WorkingSet{Dir: s.set.Dir, Names: selected}
		return nil
	}
}

func (s *Session) sortPrompt() (*library.Sorted, error) {
	for {
		choice := Prompt("\nSort by author (A), title (T), date modified (D) or size descending (S)? A/T/D/S ")
		switch strings.ToLower(choice) {
		case "a":
			return s.set.Sort(library.ByAuthor)
		case "t":
			return s.set.Sort(library.ByTitle)
		case "d":
			return s.set.Sort(library.ByModified)
		case "s":
			return s.set.Sort(library.BySize)
		}
		PrintWarning("Enter a valid choice.")
	}
}

func printSorted(sorted *library.Sorted) {
	for i, name := range sorted.Names {
		if sorted.Details != nil {
			fmt.Printf("%4d %-60s %19s\n", i+1, truncate(name, 60), sorted.Details[i])
		} else {
			fmt.Printf("%4d %s\n", i+1, name)
		}
	}
}

func truncate(name string, max int) string {
	if len(name) <= max {
		return name
	}
	return name[:max-6] + "..."
}

// warnUndoDiscard notes that the coming destructive pass will drop the
// previous pass's undo state. The pass clears the ledger even when it
// ends up changing nothing.
func (s *Session) warnUndoDiscard() {
	if s.led.Len() > 0 {
		PrintWarning("Undo state of the previous operation will be discarded.")
	}
}

// cleanup runs one destructive pass and reports per-file changes and a
// summary count.
func (s *Session) cleanup(label string, pass func(string, []string, *ledger.Ledger) (normalize.Result, error)) error {
	s.warnUndoDiscard()
	res, err := pass(s.set.Dir, s.set.Names, s.led)
	if err != nil {
		return err
	}
	for _, change := range res.Changes {
		fmt.Printf("%s: %s changed to %s\n", label, change.Old, change.New)
	}
	PrintSuccess(fmt.Sprintf("Process finished. %s in %d filenames.", label, len(res.Changes)))
	if len(res.Changes) > 0 || len(res.Skipped) > 0 {
		s.rescan()
	}
	return nil
}

func (s *Session) audit(label string, find func([]string) []string) error {
	found := find(s.set.Names)
	for _, name := range found {
		fmt.Printf("%s found in filename: %s\n", label, s.set.Path(name))
	}
	PrintSuccess(fmt.Sprintf("Process finished. %s found in %d filenames.", label, len(found)))
	return nil
}

func (s *Session) auditCapitalization() error {
	findings := normalize.FindMissingCapitalization(s.set.Names)
	for _, f := range findings {
		fmt.Printf("Possible missing capitalization in word %q in filename: %s\n", f.Word, s.set.Path(f.Name))
	}
	PrintSuccess(fmt.Sprintf("Process finished. Possible missing capitalization found %d times.", len(findings)))
	return nil
}

func (s *Session) restoreAuthors() error {
	dir2 := s.promptDir("Enter path to other directory with books to compare: ")
	entries, err := os.ReadDir(dir2)
	if err != nil {
		return err
	}
	var refs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			refs = append(refs, entry.Name())
		}
	}

	s.warnUndoDiscard()
	out, err := match.RestoreAuthors(s.set.Dir, s.set.Names, refs, s.led, s.resolveCollision)
	if err != nil {
		return err
	}
	for _, r := range out.Renamed {
		fmt.Printf("%s changed to %s\n", r.Old, r.New)
	}
	for _, name := range out.NotFound {
		fmt.Printf("Author data not found for %s\n", name)
	}
	PrintSuccess(fmt.Sprintf("Process finished. Author data restored to %d filenames.", len(out.Renamed)))
	if len(out.Renamed) > 0 {
		s.rescan()
	}
	return nil
}

func (s *Session) removeSubstring() error {
	substring := Prompt("Enter substring to remove from filenames: ")
	s.warnUndoDiscard()
	res, err := s.engine.RemoveSubstring(s.set.Dir, s.set.Names, substring, s.led)
	if err != nil {
		if errors.IsInputError(err) {
			PrintWarning(err.Error())
			return nil
		}
		return err
	}
	for _, change := range res.Changes {
		fmt.Printf("%s changed to %s\n", change.Old, change.New)
	}
	PrintSuccess(fmt.Sprintf("Process finished. Substring removed from %d filenames.", len(res.Changes)))
	if len(res.Changes) > 0 {
		s.rescan()
	}
	return nil
}

func (s *Session) restore() error {
	if s.led.Len() == 0 {
		PrintInfo("No filenames to restore.")
		return nil
	}
	res, err := s.led.Restore(s.set.Dir)
	if err != nil {
		return err
	}
	for _, name := range res.Missing {
		fmt.Printf("%s not found in %s\n", name, s.set.Dir)
	}
	PrintSuccess(fmt.Sprintf("Process finished. %d filenames restored.", res.Restored))
	if res.Restored > 0 {
		s.rescan()
	}
	return nil
}

func (s *Session) compareDirs() error {
	dir2 := s.promptDir("Enter path to other directory with books to compare: ")
	set2, err := library.Scan(dir2, s.filter)
	if err != nil {
		return err
	}

	cmp := match.CompareDirs(s.set.Names, set2.Names, s.cfg.Compare.SimilarityThreshold, os.Stderr)

	PrintHeader(fmt.Sprintf("Books found in %s and %s", s.set.Dir, dir2))
	printOrNA(cmp.Identical)
	PrintHeader(fmt.Sprintf("Books in %s similar to books in %s", s.set.Dir, dir2))
	if len(cmp.Similar) == 0 {
		fmt.Println("N/A")
	}
	for _, pair := range cmp.Similar {
		fmt.Printf("%s : %s\n", pair.A, pair.B)
	}
	PrintHeader(fmt.Sprintf("Books in %s not found in %s", s.set.Dir, dir2))
	printOrNA(cmp.Missing)
	return nil
}

func (s *Session) compareWithin() error {
	similar := match.CompareWithin(s.set.Names, s.cfg.Compare.SimilarityThreshold, os.Stderr)
	PrintHeader(fmt.Sprintf("Similar books in %s", s.set.Dir))
	if len(similar) == 0 {
		fmt.Println("N/A")
	}
	for _, pair := range similar {
		fmt.Printf("%s : %s\n", pair.A, pair.B)
	}
	return nil
}

func printOrNA(names []string) {
	if len(names) == 0 {
		fmt.Println("N/A")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func (s *Session) compareSizes() error {
	dir2 := s.promptDir("Enter path to other directory with books to compare: ")
	set2, err := library.Scan(dir2, s.filter)
	if err != nil {
		return err
	}
	// CompareSizes binary-searches the second listing by lowercased base
	// name, so order it that way before the call.
	sort.SliceStable(set2.Names, func(i, j int) bool {
		return strings.ToLower(trimExt(set2.Names[i])) < strings.ToLower(trimExt(set2.Names[j]))
	})

	share := s.promptShare()
	pairs, err := match.CompareSizes(s.set.Dir, s.set.Names, dir2, set2.Names, share)
	if err != nil {
		return err
	}

	fmt.Printf("\nFILE SIZE 1  FILE SIZE 2  +%%      FILE NAME\n\n")
	for _, pair := range pairs {
		fmt.Printf("%11d  %11d  %5.1f%%  %s\n", pair.Size1, pair.Size2, pair.PercentLarger(), pair.Base)
	}
	PrintSuccess(fmt.Sprintf("Process finished. %d book pairs compared by size.", len(pairs)))
	return nil
}

func trimExt(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

func (s *Session) promptShare() float64 {
	for {
		input := Prompt("Enter min difference between file sizes as a share of file size (0-1): ")
		share, err := strconv.ParseFloat(input, 64)
		if err != nil || share < 0 || share > 1 {
			PrintWarning("Enter a valid share.")
			continue
		}
		return share
	}
}

// promptByteThreshold reads a byte threshold with a default (D) and ignore
// (I) shortcut; enabled is false when the check is skipped entirely.
func promptByteThreshold(label string, def int64) (threshold int64, enabled bool) {
	for {
		input := Prompt(fmt.Sprintf("%s, D for default (%d bytes), or I to ignore: ", label, def))
		switch strings.ToLower(input) {
		case "d":
			return def, true
		case "i":
			return 0, false
		}
		v, err := strconv.ParseInt(input, 10, 64)
		if err != nil || v < 0 {
			PrintWarning("Threshold must be a non-negative integer.")
			continue
		}
		return v, true
	}
}

func (s *Session) imageThresholds() error {
	coverMin, checkCover := promptByteThreshold("Enter threshold cover.jpg size in bytes", s.cfg.Images.CoverThreshold)
	imagesMin, checkImages := promptByteThreshold("Enter threshold images directory size in bytes", s.cfg.Images.ImagesThreshold)
	if !checkCover && !checkImages {
		PrintInfo("No image checked.")
		return nil
	}

	maxImages := -1 // no limit
	if checkImages {
		for {
			input := Prompt("Enter maximum number of images per book to check, or D for no limit: ")
			if strings.EqualFold(input, "d") {
				break
			}
			v, err := strconv.Atoi(input)
			if err != nil || v < 0 {
				PrintWarning("Maximum number of images must be a non-negative integer.")
				continue
			}
			maxImages = v
			break
		}
	}

	count := 0
	for _, info := range epub.InspectAll(s.set.Dir, s.set.Names) {
		if checkCover && info.HasCover && info.CoverSize > coverMin {
			fmt.Printf("Cover in book %s larger than %d bytes -> %d bytes (%.1f%%).\n",
				info.Name, coverMin, info.CoverSize, float64(info.CoverSize)/float64(coverMin)*100)
			count++
		}
		if checkImages && info.ImagesSize > imagesMin && (maxImages < 0 || info.ImageCount <= maxImages) {
			fmt.Printf("Images directory in book %s larger than %d bytes -> %d bytes (%.1f%%, %d images).\n",
				info.Name, imagesMin, info.ImagesSize, float64(info.ImagesSize)/float64(imagesMin)*100, info.ImageCount)
			count++
		}
	}
	PrintSuccess(fmt.Sprintf("Process finished. %d findings above threshold.", count))
	return nil
}

func (s *Session) imageListing() error {
	infos := epub.InspectAll(s.set.Dir, s.set.Names)
	fmt.Println()
	for _, c := range epub.ListCovers(infos) {
		fmt.Printf("cover.jp[e]g in %-55s %9d bytes\n", truncate(c.Name, 55), c.CoverSize)
	}
	fmt.Println()
	for _, i := range epub.ListImages(infos) {
		fmt.Printf("images/ in %-60s %9d bytes %4d images\n", truncate(i.Name, 60), i.ImagesSize, i.ImageCount)
	}
	return nil
}

func (s *Session) sortedBookNames() []string {
	books := make([]string, len(s.set.Names))
	copy(books, s.set.Names)
	sort.Strings(books)
	return books
}

func (s *Session) deviceCheck() error {
	deviceRoot := s.promptDir("Enter path to the main directory of the device: ")
	store, err := device.Open(deviceRoot, s.cfg.Device.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	stale, err := store.Stale(s.sortedBookNames())
	if err != nil {
		return err
	}
	for _, e := range stale {
		fmt.Printf("Entry %s from collection %s not found in book filenames on device.\n", e.Filename, e.Shelf)
	}
	PrintSuccess(fmt.Sprintf("Process finished. %d entries not found in book filenames on device.", len(stale)))
	return nil
}

func (s *Session) deviceClean() error {
	deviceRoot := s.promptDir("Enter path to the main directory of the device: ")

	if s.cfg.Device.Backup && Confirm("Create a backup of the collections database?") {
		PrintInfo("Creating backup of the collections database...")
		dst, err := device.Backup(deviceRoot, s.cfg.Device.DatabasePath)
		if err != nil {
			return err
		}
		PrintSuccess("Backup created at " + dst)
	}

	store, err := device.Open(deviceRoot, s.cfg.Device.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Clean(s.sortedBookNames())
	if err != nil {
		return err
	}
	for _, e := range removed {
		fmt.Printf("Entry %s from collection %s removed from database.\n", e.Filename, e.Shelf)
	}
	PrintSuccess(fmt.Sprintf("Process finished. %d entries removed from collections.", len(removed)))
	return nil
}

func (s *Session) randomBook() error {
	name := s.set.Pick()
	if name == "" {
		PrintInfo("No books in the current list.")
		return nil
	}
	fmt.Println(name)
	return nil
}
