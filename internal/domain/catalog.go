package domain

// =============================================================================
// CATALOG DOMAIN TYPES
// =============================================================================

// RawRecord is an untyped record as decoded from an upstream payload.
// No shape is guaranteed; the same concept may appear under several key
// names (store_id, id, store.id) depending on which endpoint produced it.
type RawRecord map[string]any

// UnknownStoreName is the display fallback for associations whose source
// record carried no usable store name.
const UnknownStoreName = "Unknown Store"

// StoreAssociation links a product to a store, with the price and sizes
// that store offers. StoreID is the identity key and is never empty; raw
// records that cannot yield one are dropped during normalization.
type StoreAssociation struct {
	StoreID   string
	StoreName string

	// Price in the store's currency. 0 when the source value was absent
	// or unparseable.
	Price    float64
	Currency string

	// Sizes as labeled by the store, in source order. May be empty.
	Sizes []string

	// Optional store contact/shipping attributes, carried through as-is.
	Telegram    string
	Instagram   string
	Shipping    string
	LogoURL     string
	Recommended bool
}

// Product is the canonical product entity produced by normalization.
// Optional string fields are empty (not placeholder text) when the source
// had nothing usable.
type Product struct {
	ID          string
	Name        string
	Category    string
	Color       string
	Gender      string
	BrandID     string
	Brand       string
	Price       float64
	Currency    string
	Description string

	// Taxonomy labels, deduplicated, in source order.
	Materials    []string
	Technologies []string
	Sizes        []string
}

// CategoryNode is one entry of the category vocabulary.
type CategoryNode struct {
	Slug     string
	Name     string
	ParentID string
}

// =============================================================================
// QUERY TYPES
// =============================================================================

// SortKey selects one of the fixed total orderings over a product sequence.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceAsc  SortKey = "price-asc"
	SortByPriceDesc SortKey = "price-desc"
	SortByNewest    SortKey = "newest"
)

// DefaultPriceCeiling is the domain price ceiling. The price facet is
// inactive only when the interval is [0, ceiling]; a lower bound of 0 with
// a tighter upper bound is a legitimate explicit selection.
const DefaultPriceCeiling = 100000

// FilterState is the set of active facet selections for one catalog query.
// It is owned by the caller; the filter/sort/paginate pipeline never
// mutates it. An empty selection set means the facet is inactive.
type FilterState struct {
	Query        string
	Categories   []string
	Colors       []string
	Genders      []string
	Materials    []string
	Technologies []string
	Sizes        []string

	// BrandID is a single-select exact match; empty means inactive.
	BrandID string

	// Inclusive price interval. The facet is inactive only when PriceMin
	// is 0 and PriceMax is the domain ceiling, since 0 is a legitimate
	// explicit lower bound otherwise.
	PriceMin float64
	PriceMax float64

	Sort SortKey
	Page int
}

// NewFilterState returns a FilterState with the inactive defaults the UI
// starts from.
func NewFilterState() FilterState {
	return FilterState{
		PriceMax: DefaultPriceCeiling,
		Sort:     SortByNewest,
		Page:     1,
	}
}

// PageMeta describes page boundaries for a paginated result.
type PageMeta struct {
	Page       int
	TotalPages int
	TotalItems int
	HasNext    bool
	HasPrev    bool
}

// CatalogPage is one page of visible products plus pagination metadata.
// When the upstream already filtered server-side, Meta carries the
// server's numbers, not locally computed ones.
type CatalogPage struct {
	Products []Product
	Meta     PageMeta

	// Pass-through payloads the core does not interpret.
	Brands []RawRecord
	SEO    RawRecord
}

// ProductEdit aggregates everything the admin edit form needs: the
// normalized product and its reconciled store associations.
type ProductEdit struct {
	Product Product
	Stores  []StoreAssociation

	// StoresPartial is set when the stores endpoint failed and the
	// associations were built from the detail payload alone.
	StoresPartial bool
}

// =============================================================================
// DOMAIN ERRORS
// =============================================================================

var (
	ErrProductNotFound = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrPresetNotFound  = &Error{Code: ENOTFOUND, Message: "Preset not found"}

	ErrUpstreamUnavailable = &Error{Code: EUNAVAILABLE, Message: "Catalog upstream is unavailable"}
)
