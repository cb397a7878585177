package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DisplayLanguage is the locale used for user-facing ordering
var DisplayLanguage = language.BrazilianPortuguese

// SortByName orders items alphabetically by name using the display locale's
// collation, so accented names sort next to their base letters. The sort is stable.
func SortByName[T any](items []T, name func(T) string) {
	col := collate.New(DisplayLanguage, collate.IgnoreCase)
	sort.SliceStable(items, func(a, b int) bool {
		return col.CompareString(name(items[a]), name(items[b])) < 0
	})
}

// SortedForDisplay returns a sorted copy of items
func SortedForDisplay[T any](items []T, name func(T) string) []T {
	out := make([]T, len(items))
	copy(out, items)
	SortByName(out, name)
	return out
}

// HasFoldedPrefix reports whether s starts with prefix, ignoring case
func HasFoldedPrefix(s, prefix string) bool {
	fold := cases.Fold()
	return strings.HasPrefix(fold.String(s), fold.String(prefix))
}
