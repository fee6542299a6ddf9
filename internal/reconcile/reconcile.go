// Package reconcile merges store-association lists that describe the same
// product but come from differently-shaped upstream sources (the product
// detail payload and the stores endpoint). The merge is keyed by store ID
// and deliberately asymmetric: the primary source wins on identity, the
// union of sources wins on completeness for the fields users actually edit.
package reconcile

import (
	"math"

	"github.com/opryshko/vitryna/internal/domain"
)

// A fieldRule decides which side's value survives for one field when both
// sources carry an entry for the same store. Fields without a rule follow
// the default policy: incoming overwrites existing.
type fieldRule struct {
	field string
	apply func(existing, incoming *domain.StoreAssociation, merged *domain.StoreAssociation)
}

// The precedence table. Adding a field with non-default conflict behavior
// means adding a row here, not threading conditionals through the merge.
var fieldRules = []fieldRule{
	{
		// Different endpoints expose sizes with different completeness;
		// a less complete source must never erase a more complete one.
		field: "sizes",
		apply: func(existing, incoming, merged *domain.StoreAssociation) {
			if len(existing.Sizes) > 0 {
				merged.Sizes = existing.Sizes
			}
		},
	},
	{
		// A zero or garbage price from a secondary source must not
		// clobber a valid one.
		field: "price",
		apply: func(existing, incoming, merged *domain.StoreAssociation) {
			if !validPrice(incoming.Price) {
				merged.Price = existing.Price
				merged.Currency = existing.Currency
			}
		},
	},
	{
		field: "storeName",
		apply: func(existing, incoming, merged *domain.StoreAssociation) {
			if incoming.StoreName == "" || incoming.StoreName == domain.UnknownStoreName {
				merged.StoreName = existing.StoreName
			}
		},
	},
}

// validPrice reports whether a price is a finite number strictly greater
// than zero.
func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}

// Merge folds secondary into a set seeded from primary, keyed by store ID.
// Every store ID present in either input appears in the output exactly
// once, in first-seen order (primary order first, then new secondary
// keys). Within primary itself, a duplicated store ID is last-write-wins.
//
// Merge is not commutative by design: swap the arguments and identity
// precedence swaps with them.
func Merge(primary, secondary []domain.StoreAssociation) []domain.StoreAssociation {
	order := make([]string, 0, len(primary)+len(secondary))
	byID := make(map[string]domain.StoreAssociation, len(primary)+len(secondary))

	for _, assoc := range primary {
		if _, seen := byID[assoc.StoreID]; !seen {
			order = append(order, assoc.StoreID)
		}
		byID[assoc.StoreID] = assoc
	}

	for _, incoming := range secondary {
		existing, seen := byID[incoming.StoreID]
		if !seen {
			byID[incoming.StoreID] = incoming
			order = append(order, incoming.StoreID)
			continue
		}
		byID[incoming.StoreID] = mergeOne(existing, incoming)
	}

	out := make([]domain.StoreAssociation, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// mergeOne resolves one key collision. Incoming overwrites by default,
// then each precedence rule gets a chance to restore the existing value.
func mergeOne(existing, incoming domain.StoreAssociation) domain.StoreAssociation {
	merged := incoming
	for _, rule := range fieldRules {
		rule.apply(&existing, &incoming, &merged)
	}
	return merged
}
