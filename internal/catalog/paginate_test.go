package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opryshko/vitryna/internal/domain"
)

func manyProducts(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{ID: string(rune('a' + i))}
	}
	return out
}

func TestPaginate(t *testing.T) {
	products := manyProducts(10)

	slice, meta := Paginate(products, 2, 4)

	require.Len(t, slice, 4)
	assert.Equal(t, products[4], slice[0])
	assert.Equal(t, domain.PageMeta{Page: 2, TotalPages: 3, TotalItems: 10, HasNext: true, HasPrev: true}, meta)
}

func TestPaginate_LastPartialPage(t *testing.T) {
	products := manyProducts(10)

	slice, meta := Paginate(products, 3, 4)

	assert.Len(t, slice, 2)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestPaginate_ClampsOutOfRange(t *testing.T) {
	products := manyProducts(5)

	slice, meta := Paginate(products, 99, 4)
	assert.Equal(t, 2, meta.Page, "clamped to last page, never an out-of-range slice")
	assert.Len(t, slice, 1)

	slice, meta = Paginate(products, 0, 4)
	assert.Equal(t, 1, meta.Page)
	assert.Len(t, slice, 4)
}

func TestPaginate_Empty(t *testing.T) {
	slice, meta := Paginate(nil, 1, 4)

	assert.Empty(t, slice)
	assert.Equal(t, domain.PageMeta{Page: 1, TotalPages: 1, TotalItems: 0}, meta)
}

func TestResolvePage(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		current    int
		totalPages int
		want       int
	}{
		{name: "valid request moves", requested: 3, current: 1, totalPages: 5, want: 3},
		{name: "page zero is a no-op", requested: 0, current: 2, totalPages: 5, want: 2},
		{name: "negative is a no-op", requested: -1, current: 2, totalPages: 5, want: 2},
		{name: "beyond total is a no-op", requested: 6, current: 2, totalPages: 5, want: 2},
		{name: "exact last page moves", requested: 5, current: 2, totalPages: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePage(tt.requested, tt.current, tt.totalPages))
		})
	}
}

func TestSupersedeMeta(t *testing.T) {
	local := domain.PageMeta{Page: 1, TotalPages: 1, TotalItems: 24}

	t.Run("no server meta keeps local", func(t *testing.T) {
		assert.Equal(t, local, SupersedeMeta(local, nil))
	})

	t.Run("server meta wins entirely", func(t *testing.T) {
		server := &domain.PageMeta{Page: 2, TotalPages: 9, TotalItems: 201}
		got := SupersedeMeta(local, server)

		assert.Equal(t, 201, got.TotalItems, "never report totals inconsistent with the server")
		assert.Equal(t, 9, got.TotalPages)
		assert.True(t, got.HasNext)
		assert.True(t, got.HasPrev)
	})
}

func TestRun_DeterministicAndPure(t *testing.T) {
	products := sampleProducts()
	f := domain.NewFilterState()
	f.Categories = []string{"shoes"}
	f.Sort = domain.SortByPriceAsc

	first, firstMeta := Run(products, f, 1)
	second, secondMeta := Run(products, f, 1)

	assert.Equal(t, first, second, "identical inputs yield identical output")
	assert.Equal(t, firstMeta, secondMeta)
	require.Len(t, first, 1)
	assert.Equal(t, "p1", first[0].ID, "cheapest shoe on page 1")
	assert.Equal(t, 2, firstMeta.TotalPages)
}
