// Package storefront serves the public catalog API.
package storefront

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/opryshko/vitryna/internal/handler"
	"github.com/opryshko/vitryna/internal/service"
)

// CatalogHandler handles the catalog listing endpoint.
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/catalog
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f := handler.ParseFilterState(r)

	page, err := h.catalog.BrowseCatalog(r.Context(), f)
	if err != nil {
		if errors.Is(err, service.ErrQuerySuperseded) {
			// A newer query is in flight; this response would only
			// flash stale rows.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"products": page.Products,
		"meta":     page.Meta,
		"brands":   page.Brands,
		"seo":      page.SEO,
	})
}

// CategoriesHandler handles the category vocabulary endpoint.
type CategoriesHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(catalog service.CatalogService, logger *slog.Logger) *CategoriesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoriesHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/categories
func (h *CategoriesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.catalog.CategoryTree(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{"categories": nodes})
}
