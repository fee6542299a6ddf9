package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/opryshko/vitryna/internal/domain"
)

// Sort returns a new slice ordered by the given key. Sorting is stable so
// rows with equal keys keep their upstream order across re-renders.
// SortByNewest preserves upstream order as-is: creation timestamps are not
// guaranteed present, and the upstream already returns newest-first.
func Sort(products []domain.Product, key domain.SortKey) []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)

	switch key {
	case domain.SortByName:
		// Collation rather than byte order, so Cyrillic and accented
		// names sort the way users expect.
		c := collate.New(language.Und, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Name, out[j].Name) < 0
		})
	case domain.SortByPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case domain.SortByPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case domain.SortByNewest:
		// Stable no-op.
	}

	return out
}

// ValidSortKey reports whether key is one of the fixed orderings.
func ValidSortKey(key domain.SortKey) bool {
	switch key {
	case domain.SortByName, domain.SortByPriceAsc, domain.SortByPriceDesc, domain.SortByNewest:
		return true
	}
	return false
}
