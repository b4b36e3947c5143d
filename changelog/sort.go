package changelog

import (
	"sort"
	"strings"
)

type Category int

const (
	CategoryNone Category = iota
	CategoryAdded
	CategoryUpdated
	CategoryFixed
)

// categories in classification priority and display order.
var categories = []Category{CategoryAdded, CategoryUpdated, CategoryFixed}

func (c Category) String() string {
	switch c {
	case CategoryAdded:
		return "Added"
	case CategoryUpdated:
		return "Updated"
	case CategoryFixed:
		return "Fixed"
	case CategoryNone:
		return ""
	default:
		return "<UNKNOWN>"
	}
}

// Rank is the primary sort key. Uncategorized lines sort last.
func (c Category) Rank() int {
	if c == CategoryNone {
		return len(categories) + 1
	}
	return int(c)
}

// Classify returns the first category whose name appears in line.
func Classify(line string) Category {
	for _, cat := range categories {
		if strings.Contains(line, cat.String()) {
			return cat
		}
	}
	return CategoryNone
}

type sortKey struct {
	line   string
	rank   int
	ref    int
	hasRef bool
}

// Sort orders rendered lines by category, then by reference number with
// the highest first. Lines without a reference follow those with one. Equal
// keys keep their input order. lines is not modified.
func Sort(lines []string) []string {
	keys := make([]sortKey, len(lines))
	for i, line := range lines {
		ref, ok := Reference(line)
		keys[i] = sortKey{line: line, rank: Classify(line).Rank(), ref: ref, hasRef: ok}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.hasRef != b.hasRef {
			return a.hasRef
		}
		return a.ref > b.ref
	})

	sorted := make([]string, len(keys))
	for i, k := range keys {
		sorted[i] = k.line
	}
	return sorted
}
