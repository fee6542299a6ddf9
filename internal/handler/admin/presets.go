package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/handler"
	"github.com/opryshko/vitryna/internal/service"
)

// PresetsHandler manages saved filter presets.
type PresetsHandler struct {
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewPresetsHandler creates a new presets handler.
func NewPresetsHandler(catalog service.CatalogService, logger *slog.Logger) *PresetsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresetsHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// List handles GET /api/admin/presets
func (h *PresetsHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.catalog.ListPresets(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]any{"presets": names})
}

// Get handles GET /api/admin/presets/{name}
func (h *PresetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	state, err := h.catalog.ApplyPreset(r.Context(), name)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]any{"name": name, "state": state})
}

// Save handles PUT /api/admin/presets/{name}
func (h *PresetsHandler) Save(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		http.NotFound(w, r)
		return
	}

	var state domain.FilterState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		handler.ErrorResponse(w, r, domain.Invalid("preset.save", "Request body must be a filter state"))
		return
	}

	if err := h.catalog.SavePreset(r.Context(), name, state); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	h.logger.Info("preset saved", "name", name)
	handler.RespondJSON(w, http.StatusNoContent, nil)
}
