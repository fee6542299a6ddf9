package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/opryshko/vitryna/internal/catalog"
	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/extract"
	"github.com/opryshko/vitryna/internal/normalize"
	"github.com/opryshko/vitryna/internal/preset"
	"github.com/opryshko/vitryna/internal/reconcile"
	"github.com/opryshko/vitryna/internal/telemetry"
	"github.com/opryshko/vitryna/internal/upstream"
)

// CatalogService orchestrates the fetch, normalize, reconcile and query
// pipeline behind the storefront and admin surfaces.
type CatalogService interface {
	// BrowseCatalog returns one page of products for the given filter
	// state. When a newer BrowseCatalog call starts before this one
	// finishes, the older result is discarded with ErrQuerySuperseded.
	BrowseCatalog(ctx context.Context, f domain.FilterState) (*domain.CatalogPage, error)

	// LoadProductEdit returns the product plus its reconciled store
	// associations for the admin edit form. A stores-endpoint failure is
	// not fatal; the result is then marked partial.
	LoadProductEdit(ctx context.Context, productID string) (*domain.ProductEdit, error)

	// CategoryTree returns the category vocabulary, falling back to the
	// built-in list when the upstream has none.
	CategoryTree(ctx context.Context) ([]domain.CategoryNode, error)

	// ApplyPreset loads a saved filter preset by name.
	ApplyPreset(ctx context.Context, name string) (domain.FilterState, error)

	// SavePreset persists the filter state under the given name.
	SavePreset(ctx context.Context, name string, f domain.FilterState) error

	// ListPresets returns the saved preset names.
	ListPresets(ctx context.Context) ([]string, error)
}

type catalogService struct {
	upstream upstream.Client
	presets  preset.Store
	logger   *slog.Logger
	metrics  *telemetry.PipelineMetrics
	pageSize int

	// browseSeq orders concurrent browse queries so only the latest one
	// may publish its result.
	browseSeq atomic.Uint64
}

// NewCatalogService creates a catalog service. metrics may be nil in tests.
func NewCatalogService(up upstream.Client, presets preset.Store, logger *slog.Logger, metrics *telemetry.PipelineMetrics, pageSize int) CatalogService {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &catalogService{
		upstream: up,
		presets:  presets,
		logger:   logger,
		metrics:  metrics,
		pageSize: pageSize,
	}
}

func (s *catalogService) BrowseCatalog(ctx context.Context, f domain.FilterState) (*domain.CatalogPage, error) {
	seq := s.browseSeq.Add(1)
	start := time.Now()

	resp, err := s.upstream.FetchCatalogPage(ctx, f, s.pageSize)
	if err != nil {
		s.countUpstreamError("catalog")
		return nil, err
	}

	// Only the most recently issued query may publish. An answer for an
	// abandoned filter state would overwrite fresher rows on screen.
	if s.browseSeq.Load() != seq {
		s.countQuery("superseded")
		return nil, ErrQuerySuperseded
	}

	products := normalize.Products(resp.Items)
	s.countNormalized("product", len(resp.Items), len(products))

	page := &domain.CatalogPage{Brands: resp.Brands, SEO: resp.SEO}
	if resp.Meta != nil {
		// The upstream already selected the page; slicing it again
		// locally would paginate a single page of rows.
		page.Products = catalog.Sort(catalog.Filter(products, f), f.Sort)
		page.Meta = catalog.SupersedeMeta(domain.PageMeta{}, resp.Meta)
		s.countQuery("server")
	} else {
		page.Products, page.Meta = catalog.Run(products, f, s.pageSize)
		s.countQuery("local")
	}

	if s.metrics != nil {
		s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Debug("catalog query",
		"fetched", len(resp.Items),
		"normalized", len(products),
		"returned", len(page.Products),
		"page", page.Meta.Page,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return page, nil
}

func (s *catalogService) LoadProductEdit(ctx context.Context, productID string) (*domain.ProductEdit, error) {
	detail, err := s.upstream.FetchProductDetail(ctx, productID)
	if err != nil {
		if domain.ErrorCode(err) != domain.ENOTFOUND {
			s.countUpstreamError("detail")
		}
		return nil, err
	}

	product := normalize.Product(detail)
	if product == nil {
		// The payload exists but carries no usable identity.
		return nil, ErrProductNotFound
	}

	embedded := embeddedStoreRecords(detail)
	primary := normalize.StoreAssociations(embedded)
	s.countNormalized("store", len(embedded), len(primary))

	edit := &domain.ProductEdit{Product: *product}

	storeRecords, err := s.upstream.FetchProductStores(ctx, productID)
	if err != nil {
		// The edit form still renders from the detail payload alone.
		s.countUpstreamError("stores")
		s.logger.Warn("stores fetch failed, rendering partial associations",
			"product_id", productID, "error", err)
		edit.Stores = primary
		edit.StoresPartial = true
		return edit, nil
	}

	secondary := normalize.StoreAssociations(storeRecords)
	s.countNormalized("store", len(storeRecords), len(secondary))

	edit.Stores = reconcile.Merge(primary, secondary)
	if s.metrics != nil {
		s.metrics.StoreMerges.Inc()
	}
	return edit, nil
}

func (s *catalogService) CategoryTree(ctx context.Context) ([]domain.CategoryNode, error) {
	records, err := s.upstream.FetchCategoryTree(ctx)
	if err != nil {
		s.countUpstreamError("categories")
		s.logger.Warn("category fetch failed, using built-in vocabulary", "error", err)
		return builtinCategoryNodes(), nil
	}

	nodes := make([]domain.CategoryNode, 0, len(records))
	for _, record := range records {
		slug, ok := extract.String(record, "slug", "id", "key")
		if !ok {
			continue
		}
		node := domain.CategoryNode{Slug: slug, Name: slug}
		if name, ok := extract.String(record, "name", "title", "label"); ok {
			node.Name = name
		}
		if parent, ok := extract.String(record, "parent_id", "parentId", "parent.id"); ok {
			node.ParentID = parent
		}
		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return builtinCategoryNodes(), nil
	}
	return nodes, nil
}

func (s *catalogService) ApplyPreset(ctx context.Context, name string) (domain.FilterState, error) {
	p, err := s.presets.Load(ctx, name)
	if err != nil {
		s.countPresetLoad("miss")
		return domain.FilterState{}, err
	}
	s.countPresetLoad("hit")

	// A preset recalls a selection, not a scroll position.
	state := p.State
	state.Page = 1
	return state, nil
}

func (s *catalogService) SavePreset(ctx context.Context, name string, f domain.FilterState) error {
	return s.presets.Save(ctx, preset.Preset{Name: name, State: f})
}

func (s *catalogService) ListPresets(ctx context.Context) ([]string, error) {
	return s.presets.List(ctx)
}

// embeddedStoreRecords pulls store rows embedded in a product detail
// payload, under whichever key this deployment uses.
func embeddedStoreRecords(detail domain.RawRecord) []domain.RawRecord {
	objs, ok := extract.ObjectSlice(detail, "stores", "store_items", "storeItems", "availability")
	if !ok {
		return nil
	}
	out := make([]domain.RawRecord, len(objs))
	for i, obj := range objs {
		out[i] = obj
	}
	return out
}

func builtinCategoryNodes() []domain.CategoryNode {
	nodes := make([]domain.CategoryNode, len(normalize.BuiltinCategories))
	for i, name := range normalize.BuiltinCategories {
		nodes[i] = domain.CategoryNode{Slug: name, Name: name}
	}
	return nodes
}

func (s *catalogService) countNormalized(kind string, fetched, kept int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordsNormalized.WithLabelValues(kind).Add(float64(kept))
	if dropped := fetched - kept; dropped > 0 {
		s.metrics.RecordsDropped.WithLabelValues(kind).Add(float64(dropped))
	}
}

func (s *catalogService) countQuery(source string) {
	if s.metrics != nil {
		s.metrics.CatalogQueries.WithLabelValues(source).Inc()
	}
}

func (s *catalogService) countUpstreamError(endpoint string) {
	if s.metrics != nil {
		s.metrics.UpstreamErrors.WithLabelValues(endpoint).Inc()
	}
}

func (s *catalogService) countPresetLoad(result string) {
	if s.metrics != nil {
		s.metrics.PresetLoads.WithLabelValues(result).Inc()
	}
}
