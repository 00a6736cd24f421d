// Package grammar implements the filename grammar used throughout the
// library:
//
//	<Authors> - <Title>[_ <Subtitle>][, <Article>].<ext>
//
// All functions are pure and total: any string is accepted, and segments
// that don't match the grammar pass through unchanged.
package grammar

import (
	"regexp"
	"strings"
)

// kepubMarker is the Kobo container variant suffix. "Name.kepub.epub" is
// parsed as "Name.epub" with the marker reattached afterwards, so the
// grammar rules don't need variant-specific branches.
const kepubMarker = ".kepub"

var (
	// authorPattern matches the "<Authors> - " prefix: the shortest run of
	// characters from the start up to and including the first " - ".
	authorPattern = regexp.MustCompile(`^.+?\s-\s`)

	// subtitlePattern matches "_ <Subtitle>" on an extension-stripped base
	// name: one or more underscores, a whitespace, then the rest.
	subtitlePattern = regexp.MustCompile(`_+\s.+$`)
)

// split breaks a filename into its extension-stripped base, the variant
// marker (".kepub" or empty), and the extension. base+variant+ext == name.
func split(name string) (base, variant, ext string) {
	ext = extension(name)
	base = strings.TrimSuffix(name, ext)
	if strings.HasSuffix(strings.ToLower(base), kepubMarker) {
		variant = base[len(base)-len(kepubMarker):]
		base = base[:len(base)-len(kepubMarker)]
	}
	return base, variant, ext
}

// extension returns the trailing ".<ext>" segment of name, or "" when the
// name has no dot. A dotfile-style name with no base to operate on is
// returned whole.
func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return ""
	}
	return name[i:]
}

// trimTrailingArticle removes a trailing ", <Article>" from base and
// returns the shortened base and the article token. Tokens are tested
// end-anchored against the ordered article table, so "Una" can never be
// misread as "Un".
func trimTrailingArticle(base string) (string, string) {
	for _, a := range Articles {
		suffix := ", " + a.Token
		if strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
			return base[:len(base)-len(suffix)], a.Token
		}
	}
	return base, ""
}

// trimSubtitle removes the first "_ <Subtitle>" run from base.
// A single trailing underscore left behind by an empty subtitle is
// stripped as well.
func trimSubtitle(base string) string {
	base = subtitlePattern.ReplaceAllString(base, "")
	return strings.TrimSuffix(base, "_")
}

// StripToTitle reduces a filename to its bare title:
//
//	"Smith, John - Great War_ A History, The.epub" -> "The Great War.epub"
//
// The author prefix and subtitle are dropped, and a trailing comma-article
// is relocated to the front. A name without a " - " separator keeps its
// author segment untouched (there is nothing to strip).
func StripToTitle(name string) string {
	base, variant, ext := split(name)
	base = authorPattern.ReplaceAllString(base, "")
	base, article := trimTrailingArticle(base)
	base = trimSubtitle(base)
	if article != "" {
		base = article + " " + base
	}
	return base + variant + ext
}

// StripSubtitle drops the subtitle while preserving the author segment
// verbatim:
//
//	"Smith, John - Great War_ A History, The.epub" -> "Smith, John - The Great War.epub"
//
// A trailing comma-article is re-inserted immediately after the first
// " - " separator; when no separator exists the article moves to the
// front of the name instead.
func StripSubtitle(name string) string {
	base, variant, ext := split(name)
	base, article := trimTrailingArticle(base)
	base = trimSubtitle(base)
	if article != "" {
		if i := strings.Index(base, " - "); i >= 0 {
			base = base[:i+3] + article + " " + base[i+3:]
		} else {
			base = article + " " + base
		}
	}
	return base + variant + ext
}

// TrimLeadingArticle removes a recognized leading article from a title for
// comparison purposes ("The Great War" -> "Great War"). Display strings are
// never affected; this only produces sort keys.
func TrimLeadingArticle(title string) string {
	i := strings.IndexByte(title, ' ')
	if i <= 0 {
		return title
	}
	if IsArticle(title[:i]) {
		return title[i+1:]
	}
	return title
}

// TitleOf returns the title portion of a filename: everything after the
// first " - " separator, or the whole name when no separator exists.
func TitleOf(name string) string {
	return authorPattern.ReplaceAllString(name, "")
}
