// Package admin serves the back-office API: the product edit view and
// filter preset management.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/opryshko/vitryna/internal/handler"
	"github.com/opryshko/vitryna/internal/service"
)

// ProductEditHandler handles the admin product edit view.
type ProductEditHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewProductEditHandler creates a new product edit handler.
func NewProductEditHandler(catalog service.CatalogService, logger *slog.Logger) *ProductEditHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductEditHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ServeHTTP handles GET /api/admin/products/{id}
func (h *ProductEditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		http.NotFound(w, r)
		return
	}

	edit, err := h.catalog.LoadProductEdit(r.Context(), productID)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"product":        edit.Product,
		"stores":         edit.Stores,
		"stores_partial": edit.StoresPartial,
	})
}
