package inventory

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"infocomm/internal/models"
)

// Sorter orders products. Name ordering is collated for French because the
// catalog carries accented names ("Écran" sorts with "E", not after "Z").
type Sorter struct {
	tag language.Tag
}

func NewSorter() Sorter {
	return Sorter{tag: language.French}
}

// Sort returns a new ordered slice; the input is never reordered. Sorting is
// stable, so equal keys keep their relative input order. Unknown criteria
// fall back to the name ordering.
func (s Sorter) Sort(products []models.Product, by SortBy) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	switch by {
	case SortByPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortByPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortByQuantity:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	default:
		// collate.Collator buffers internally, so build one per call to keep
		// Sort safe for concurrent callers.
		col := collate.New(s.tag)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}
