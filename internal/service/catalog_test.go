package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/preset"
	"github.com/opryshko/vitryna/internal/upstream"
)

// mockClient implements upstream.Client with overridable function fields.
type mockClient struct {
	fetchCatalogPage   func(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error)
	fetchProductDetail func(ctx context.Context, productID string) (domain.RawRecord, error)
	fetchProductStores func(ctx context.Context, productID string) ([]domain.RawRecord, error)
	fetchCategoryTree  func(ctx context.Context) ([]domain.RawRecord, error)
}

func (m *mockClient) FetchCatalogPage(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error) {
	return m.fetchCatalogPage(ctx, f, pageSize)
}

func (m *mockClient) FetchProductDetail(ctx context.Context, productID string) (domain.RawRecord, error) {
	return m.fetchProductDetail(ctx, productID)
}

func (m *mockClient) FetchProductStores(ctx context.Context, productID string) ([]domain.RawRecord, error) {
	return m.fetchProductStores(ctx, productID)
}

func (m *mockClient) FetchCategoryTree(ctx context.Context) ([]domain.RawRecord, error) {
	return m.fetchCategoryTree(ctx)
}

func newTestService(client *mockClient) CatalogService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogService(client, preset.NewMemoryStore(), logger, nil, 24)
}

func catalogItems() []domain.RawRecord {
	return []domain.RawRecord{
		{"id": "p1", "name": "Air Zoom Runner", "category": "shoes", "price": 120.0},
		{"id": "p2", "name": "Classic Hoodie", "category": "Hoodies", "price": "95"},
		{"name": "no identity, dropped"},
		{"id": "p3", "name": "Trail Shoe", "category": "shoes", "price": 145.0},
	}
}

func TestBrowseCatalog_LocalPagination(t *testing.T) {
	client := &mockClient{
		fetchCatalogPage: func(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error) {
			return &upstream.CatalogResponse{Items: catalogItems()}, nil
		},
	}
	svc := newTestService(client)

	f := domain.NewFilterState()
	f.Categories = []string{"shoes"}
	f.Sort = domain.SortByPriceAsc

	page, err := svc.BrowseCatalog(context.Background(), f)
	require.NoError(t, err)

	require.Len(t, page.Products, 2, "record without identity and the hoodie are excluded")
	assert.Equal(t, "p1", page.Products[0].ID)
	assert.Equal(t, "p3", page.Products[1].ID)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 2, page.Meta.TotalItems)
}

func TestBrowseCatalog_ServerMetaSupersedesLocal(t *testing.T) {
	client := &mockClient{
		fetchCatalogPage: func(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error) {
			return &upstream.CatalogResponse{
				Items: catalogItems(),
				Meta:  &domain.PageMeta{Page: 3, TotalPages: 9, TotalItems: 201},
			}, nil
		},
	}
	svc := newTestService(client)

	page, err := svc.BrowseCatalog(context.Background(), domain.NewFilterState())
	require.NoError(t, err)

	assert.Equal(t, 3, page.Meta.Page, "server pagination wins")
	assert.Equal(t, 201, page.Meta.TotalItems)
	assert.True(t, page.Meta.HasNext)
	assert.Len(t, page.Products, 3, "server page is not sliced again locally")
}

func TestBrowseCatalog_UpstreamFailure(t *testing.T) {
	client := &mockClient{
		fetchCatalogPage: func(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	svc := newTestService(client)

	_, err := svc.BrowseCatalog(context.Background(), domain.NewFilterState())

	require.Error(t, err)
	assert.Equal(t, domain.EUNAVAILABLE, domain.ErrorCode(err))
}

func TestBrowseCatalog_LatestRequestWins(t *testing.T) {
	// The first query's fetch does not return until the second query has
	// already been issued, so the first result must be discarded.
	firstFetchStarted := make(chan struct{})
	secondDone := make(chan struct{})

	var calls int
	var mu sync.Mutex
	client := &mockClient{
		fetchCatalogPage: func(ctx context.Context, f domain.FilterState, pageSize int) (*upstream.CatalogResponse, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(firstFetchStarted)
				<-secondDone
			}
			return &upstream.CatalogResponse{Items: catalogItems()}, nil
		},
	}
	svc := newTestService(client)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = svc.BrowseCatalog(context.Background(), domain.NewFilterState())
	}()

	<-firstFetchStarted
	page, err := svc.BrowseCatalog(context.Background(), domain.NewFilterState())
	require.NoError(t, err)
	assert.NotEmpty(t, page.Products)
	close(secondDone)

	wg.Wait()
	assert.ErrorIs(t, firstErr, ErrQuerySuperseded)
}

func TestLoadProductEdit_MergesStores(t *testing.T) {
	client := &mockClient{
		fetchProductDetail: func(ctx context.Context, productID string) (domain.RawRecord, error) {
			return domain.RawRecord{
				"id":   "p1",
				"name": "Air Zoom Runner",
				"stores": []any{
					map[string]any{"store_id": "s1", "store_name": "Kyiv Kicks", "price": 0.0},
				},
			}, nil
		},
		fetchProductStores: func(ctx context.Context, productID string) ([]domain.RawRecord, error) {
			return []domain.RawRecord{
				{"store_id": "s1", "price": 49.99, "sizes": []any{"M", "L"}},
				{"store_id": "s2", "price": 52.0},
			}, nil
		},
	}
	svc := newTestService(client)

	edit, err := svc.LoadProductEdit(context.Background(), "p1")
	require.NoError(t, err)

	assert.False(t, edit.StoresPartial)
	require.Len(t, edit.Stores, 2)
	assert.Equal(t, "s1", edit.Stores[0].StoreID)
	assert.Equal(t, "Kyiv Kicks", edit.Stores[0].StoreName, "name from the detail payload survives")
	assert.Equal(t, 49.99, edit.Stores[0].Price, "price from the stores endpoint wins over a zero")
	assert.Equal(t, []string{"M", "L"}, edit.Stores[0].Sizes)
	assert.Equal(t, "s2", edit.Stores[1].StoreID)
}

func TestLoadProductEdit_StoresFailureIsPartial(t *testing.T) {
	client := &mockClient{
		fetchProductDetail: func(ctx context.Context, productID string) (domain.RawRecord, error) {
			return domain.RawRecord{
				"id": "p1",
				"stores": []any{
					map[string]any{"store_id": "s1", "price": 40.0},
				},
			}, nil
		},
		fetchProductStores: func(ctx context.Context, productID string) ([]domain.RawRecord, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	svc := newTestService(client)

	edit, err := svc.LoadProductEdit(context.Background(), "p1")
	require.NoError(t, err, "a stores failure must not sink the edit form")

	assert.True(t, edit.StoresPartial)
	require.Len(t, edit.Stores, 1)
	assert.Equal(t, "s1", edit.Stores[0].StoreID)
}

func TestLoadProductEdit_NotFound(t *testing.T) {
	client := &mockClient{
		fetchProductDetail: func(ctx context.Context, productID string) (domain.RawRecord, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	svc := newTestService(client)

	_, err := svc.LoadProductEdit(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLoadProductEdit_DetailWithoutIdentity(t *testing.T) {
	client := &mockClient{
		fetchProductDetail: func(ctx context.Context, productID string) (domain.RawRecord, error) {
			return domain.RawRecord{"name": "ghost"}, nil
		},
	}
	svc := newTestService(client)

	_, err := svc.LoadProductEdit(context.Background(), "ghost")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCategoryTree(t *testing.T) {
	client := &mockClient{
		fetchCategoryTree: func(ctx context.Context) ([]domain.RawRecord, error) {
			return []domain.RawRecord{
				{"slug": "shoes", "name": "Shoes"},
				{"slug": "hoodies", "name": "Hoodies", "parent_id": "apparel"},
				{"name": "no slug, skipped"},
			}, nil
		},
	}
	svc := newTestService(client)

	nodes, err := svc.CategoryTree(context.Background())
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, domain.CategoryNode{Slug: "shoes", Name: "Shoes"}, nodes[0])
	assert.Equal(t, "apparel", nodes[1].ParentID)
}

func TestCategoryTree_FallsBackToBuiltin(t *testing.T) {
	client := &mockClient{
		fetchCategoryTree: func(ctx context.Context) ([]domain.RawRecord, error) {
			return nil, domain.ErrUpstreamUnavailable
		},
	}
	svc := newTestService(client)

	nodes, err := svc.CategoryTree(context.Background())
	require.NoError(t, err, "upstream failure degrades to the built-in vocabulary")

	assert.NotEmpty(t, nodes)
	assert.Equal(t, "T-shirts", nodes[0].Name)
}

func TestPresetRoundTrip(t *testing.T) {
	svc := newTestService(&mockClient{})
	ctx := context.Background()

	f := domain.NewFilterState()
	f.Categories = []string{"shoes"}
	f.Page = 7

	require.NoError(t, svc.SavePreset(ctx, "summer-drop", f))

	got, err := svc.ApplyPreset(ctx, "summer-drop")
	require.NoError(t, err)
	assert.Equal(t, []string{"shoes"}, got.Categories)
	assert.Equal(t, 1, got.Page, "a preset recalls the selection, not the scroll position")

	names, err := svc.ListPresets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"summer-drop"}, names)

	_, err = svc.ApplyPreset(ctx, "unknown")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}
