package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opryshko/vitryna/internal/domain"
)

func TestProduct(t *testing.T) {
	raw := domain.RawRecord{
		"id":             "p1",
		"name":           "Air Zoom Runner",
		"category":       "T Shirts",
		"color":          "Grey",
		"gender":         "men",
		"brand_id":       "b-nike",
		"brand":          "Nike",
		"price":          "2499.00",
		"description_en": "Lightweight everyday runner",
		"materials":      []any{"mesh", "rubber", "mesh"},
		"technologies": map[string]any{
			"items": []any{
				map[string]any{"name": "Zoom Air"},
				map[string]any{"slug": "flyknit"},
			},
		},
		"sizes": `["41","42"]`,
	}

	p := Product(raw)
	require.NotNil(t, p)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Air Zoom Runner", p.Name)
	assert.Equal(t, TShirtsLabel, p.Category)
	assert.Equal(t, "gray", p.Color)
	assert.Equal(t, "men", p.Gender)
	assert.Equal(t, "b-nike", p.BrandID)
	assert.Equal(t, "Nike", p.Brand)
	assert.Equal(t, 2499.0, p.Price)
	assert.Equal(t, "Lightweight everyday runner", p.Description)
	assert.Equal(t, []string{"mesh", "rubber"}, p.Materials, "taxonomy lists deduplicate")
	assert.Equal(t, []string{"Zoom Air", "flyknit"}, p.Technologies)
	assert.Equal(t, []string{"41", "42"}, p.Sizes)
}

func TestProduct_MissingIDDropped(t *testing.T) {
	assert.Nil(t, Product(domain.RawRecord{"name": "Orphan"}))
	assert.Nil(t, Product(domain.RawRecord{"id": "null", "name": "Orphan"}))
	assert.Nil(t, Product(nil))
}

func TestProduct_AbsentOptionalFieldsStayEmpty(t *testing.T) {
	p := Product(domain.RawRecord{"id": "p2"})
	require.NotNil(t, p)

	assert.Empty(t, p.Name)
	assert.Empty(t, p.Category)
	assert.Empty(t, p.Color)
	assert.Empty(t, p.Description)
	assert.NotEqual(t, "undefined", p.Name)
	assert.Zero(t, p.Price)
	assert.Empty(t, p.Materials)
	assert.Empty(t, p.Sizes)
}

func TestProduct_PlaceholderStringsTreatedAsAbsent(t *testing.T) {
	p := Product(domain.RawRecord{
		"id":          "p3",
		"name":        "undefined",
		"description": "null",
	})
	require.NotNil(t, p)

	assert.Empty(t, p.Name)
	assert.Empty(t, p.Description)
}

func TestProduct_NestedTaxonomyObjects(t *testing.T) {
	p := Product(domain.RawRecord{
		"id":       "p4",
		"category": map[string]any{"slug": "hoodie"},
		"brand":    map[string]any{"name": "Carhartt", "id": "b-ch"},
	})
	require.NotNil(t, p)

	assert.Equal(t, "hoodies", p.Category)
	assert.Equal(t, "Carhartt", p.Brand)
	assert.Equal(t, "b-ch", p.BrandID)
}

func TestProducts_DropsUnusable(t *testing.T) {
	got := Products([]domain.RawRecord{
		{"id": "p1"},
		{"name": "no id"},
		{"id": "p2"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestTaxonomyList(t *testing.T) {
	tests := []struct {
		name string
		raw  domain.RawRecord
		want []string
	}{
		{
			name: "bare string list",
			raw:  domain.RawRecord{"materials": []any{"leather", "suede"}},
			want: []string{"leather", "suede"},
		},
		{
			name: "envelope with items",
			raw:  domain.RawRecord{"materials": map[string]any{"items": []any{"canvas"}}},
			want: []string{"canvas"},
		},
		{
			name: "envelope with data",
			raw:  domain.RawRecord{"materials": map[string]any{"data": []any{map[string]any{"title": "wool"}}}},
			want: []string{"wool"},
		},
		{
			name: "object elements labeled by value",
			raw:  domain.RawRecord{"materials": []any{map[string]any{"value": "gore-tex"}}},
			want: []string{"gore-tex"},
		},
		{
			name: "duplicates removed in order",
			raw:  domain.RawRecord{"materials": []any{"mesh", "foam", "mesh"}},
			want: []string{"mesh", "foam"},
		},
		{
			name: "unusable shape yields empty",
			raw:  domain.RawRecord{"materials": "leather"},
			want: []string{},
		},
		{
			name: "absent yields empty",
			raw:  domain.RawRecord{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaxonomyList(tt.raw, "materials"))
		})
	}
}
