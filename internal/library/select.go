package library

import (
	"sort"
	"strconv"
	"strings"

	"booktidy/internal/errors"
)

// ParseSelection parses a selection expression of comma-separated 1-based
// indices and inclusive "from-to" ranges over a list of n items:
//
//	"1"            one item
//	"1,2,5,10"     several items
//	"50-100"       one range
//	"1,5,10-20,55" mixed
//
// Duplicate indices collapse, and the result is returned in ascending
// order so the selection preserves the sorted list's ordering. An inverted
// range selects nothing; anything unparsable or out of bounds is an
// InputError for the caller's prompt loop.
func ParseSelection(expr string, n int) ([]int, error) {
	cleaned := strings.ReplaceAll(expr, " ", "")
	if cleaned == "" {
		return nil, errors.NewInputError("empty selection", expr, errors.InvalidSelection)
	}

	picked := make(map[int]struct{})
	for _, token := range strings.Split(cleaned, ",") {
		if from, to, ok := strings.Cut(token, "-"); ok {
			lo, err := parseIndex(from, n, expr)
			if err != nil {
				return nil, err
			}
			hi, err := parseIndex(to, n, expr)
			if err != nil {
				return nil, err
			}
			for i := lo; i <= hi; i++ {
				picked[i] = struct{}{}
			}
		} else {
			i, err := parseIndex(token, n, expr)
			if err != nil {
				return nil, err
			}
			picked[i] = struct{}{}
		}
	}

	indices := make([]int, 0, len(picked))
	for i := range picked {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

// parseIndex converts a 1-based token to a 0-based index within [0, n).
func parseIndex(token string, n int, expr string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, errors.NewInputError("selection is not a number", expr, errors.InvalidSelection)
	}
	if v < 1 || v > n {
		return 0, errors.NewInputError("selection out of range", expr, errors.InvalidSelection)
	}
	return v - 1, nil
}

// Select returns the subset of names at the given 0-based indices.
func Select(names []string, indices []int) []string {
	selected := make([]string, 0, len(indices))
	for _, i := range indices {
		selected = append(selected, names[i])
	}
	return selected
}
