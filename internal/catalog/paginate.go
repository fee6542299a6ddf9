package catalog

import (
	"github.com/opryshko/vitryna/internal/domain"
)

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 24

// Paginate slices one page out of a sorted sequence and computes its
// boundary metadata. The page argument is clamped into [1, totalPages] so
// the slice can never go out of range; use ResolvePage first when the
// no-op-on-out-of-range behavior is wanted.
func Paginate(products []domain.Product, page, pageSize int) ([]domain.Product, domain.PageMeta) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalItems := len(products)
	totalPages := TotalPages(totalItems, pageSize)

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	meta := domain.PageMeta{
		Page:       page,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
	return products[start:end], meta
}

// TotalPages is never below 1: an empty collection still has one (empty)
// page so page 1 stays valid.
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ResolvePage applies the page-clamp policy: a request for a page below 1
// or beyond totalPages is a no-op and the current page is retained.
func ResolvePage(requested, current, totalPages int) int {
	if requested < 1 || requested > totalPages {
		return current
	}
	return requested
}

// SupersedeMeta replaces locally computed pagination metadata with the
// server's when the upstream already filtered server-side. The local
// numbers must never disagree with what the server claims.
func SupersedeMeta(local domain.PageMeta, server *domain.PageMeta) domain.PageMeta {
	if server == nil {
		return local
	}
	merged := *server
	merged.HasNext = merged.Page < merged.TotalPages
	merged.HasPrev = merged.Page > 1
	return merged
}
