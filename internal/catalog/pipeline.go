package catalog

import (
	"github.com/opryshko/vitryna/internal/domain"
)

// Run executes the full query pipeline: filter, sort, paginate. Pure over
// its inputs; the product snapshot and the filter state are never mutated,
// and re-running with identical inputs yields identical output.
func Run(products []domain.Product, f domain.FilterState, pageSize int) ([]domain.Product, domain.PageMeta) {
	visible := Filter(products, f)
	visible = Sort(visible, f.Sort)
	return Paginate(visible, f.Page, pageSize)
}
