package normalize

import (
	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/extract"
)

// Product converts one raw product record into its canonical form.
// Returns nil when no product ID can be resolved; the caller drops the
// record and proceeds with the rest of the page.
func Product(raw domain.RawRecord) *domain.Product {
	id, ok := extract.String(raw, "id", "product_id", "productId", "_id")
	if !ok {
		return nil
	}

	p := &domain.Product{ID: id}

	if name, ok := extract.String(raw, "name", "title", "product_name", "name_en"); ok {
		p.Name = name
	}
	if cat, ok := extract.String(raw, "category", "type", "category.slug", "category.name", "type.slug", "type.name"); ok {
		p.Category = Category(cat)
	}
	if color, ok := extract.String(raw, "color", "colour", "color.name", "color.slug"); ok {
		p.Color = Color(color)
	}
	if gender, ok := extract.String(raw, "gender", "sex", "gender.slug", "gender.name"); ok {
		p.Gender = gender
	}
	if brandID, ok := extract.String(raw, "brand_id", "brandId", "brand.id", "brand.slug"); ok {
		p.BrandID = brandID
	}
	if brand, ok := extract.String(raw, "brand", "brand_name", "brand.name", "brand.title"); ok {
		p.Brand = brand
	}
	if desc, ok := extract.String(raw, "description", "description_en", "desc", "about"); ok {
		p.Description = desc
	}

	p.Price, p.Currency = price(raw, "price", "amount", "cost")

	p.Materials = TaxonomyList(raw, "materials", "material")
	p.Technologies = TaxonomyList(raw, "technologies", "technology", "tech")
	p.Sizes = dedupe(Sizes(raw, "sizes", "available_sizes"))

	return p
}

// Products normalizes a raw product list, dropping unusable records.
func Products(raws []domain.RawRecord) []domain.Product {
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		if p := Product(raw); p != nil {
			out = append(out, *p)
		}
	}
	return out
}
