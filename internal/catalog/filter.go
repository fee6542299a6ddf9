// Package catalog implements the faceted query pipeline: filter, sort and
// paginate over an immutable product snapshot. Every stage is a pure
// function returning a new sequence; for a fixed (products, filters) pair
// the pipeline is deterministic and idempotent, so callers may re-run it on
// every render.
package catalog

import (
	"strings"

	"github.com/opryshko/vitryna/internal/domain"
)

// Filter returns the products matching every active facet. Facets are
// independent predicates combined by conjunction, so application order
// cannot change the result set. The input slice is never mutated.
func Filter(products []domain.Product, f domain.FilterState) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, f domain.FilterState) bool {
	if !matchesQuery(p, f.Query) {
		return false
	}
	if !matchesValue(p.Category, f.Categories) {
		return false
	}
	if !matchesValue(p.Color, f.Colors) {
		return false
	}
	if !matchesValue(p.Gender, f.Genders) {
		return false
	}
	if !matchesAny(p.Materials, f.Materials) {
		return false
	}
	if !matchesAny(p.Technologies, f.Technologies) {
		return false
	}
	if !matchesAny(p.Sizes, f.Sizes) {
		return false
	}
	if f.BrandID != "" && p.BrandID != f.BrandID {
		return false
	}
	return matchesPrice(p, f)
}

// matchesQuery is a case-insensitive substring match over name,
// description and brand; any one of them matching is enough.
func matchesQuery(p domain.Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{p.Name, p.Description, p.Brand} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// matchesValue checks a single-valued product field against a selection
// set. An empty set means the facet is inactive; a product missing the
// field is excluded once the facet is active.
func matchesValue(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if value == "" {
		return false
	}
	for _, s := range selected {
		if strings.EqualFold(value, s) {
			return true
		}
	}
	return false
}

// matchesAny checks a list-valued product field against a selection set:
// at least one product value must be selected.
func matchesAny(values, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range values {
		for _, s := range selected {
			if strings.EqualFold(v, s) {
				return true
			}
		}
	}
	return false
}

// matchesPrice applies the inclusive [min, max] interval. PriceMax of 0 is
// read as "never set" and widened to the ceiling so a zero-valued
// FilterState is inactive.
func matchesPrice(p domain.Product, f domain.FilterState) bool {
	min, max := f.PriceMin, f.PriceMax
	if max == 0 {
		max = domain.DefaultPriceCeiling
	}
	if min == 0 && max >= domain.DefaultPriceCeiling {
		return true
	}
	if p.Price <= 0 {
		// No usable price; an active price facet excludes the product.
		return false
	}
	return p.Price >= min && p.Price <= max
}
