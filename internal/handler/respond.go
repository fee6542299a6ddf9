// Package handler holds the HTTP response helpers shared by the storefront
// and admin surfaces.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/opryshko/vitryna/internal/catalog"
	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/telemetry"
)

// ErrorCodeToHTTPStatus maps a domain error code to an HTTP status code.
// Unknown codes map to 500.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	case domain.EINTERNAL:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse writes a domain error to the client. JSON clients get a
// structured {"error": {code, message}} body; everyone else gets plain
// text. The user-facing message comes from domain.ErrorMessage, which hides
// internal details.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.ErrorCode(err)
	status := ErrorCodeToHTTPStatus(code)
	message := domain.ErrorMessage(err)

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"op", domain.ErrorOp(err),
			"error", err,
		)
		telemetry.CaptureErrorFromContext(r.Context(), err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}

	if !acceptsJSON(r) {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return accept == "" || accept == "*/*" || strings.Contains(accept, "application/json")
}

// ParseFilterState reads the catalog query parameters into a FilterState.
// Parsing is tolerant: unknown or malformed values fall back to the
// inactive defaults instead of failing the request.
func ParseFilterState(r *http.Request) domain.FilterState {
	q := r.URL.Query()
	f := domain.NewFilterState()

	f.Query = strings.TrimSpace(firstOf(q, "q", "search"))
	f.Categories = allOf(q, "category")
	f.Colors = allOf(q, "color")
	f.Genders = allOf(q, "gender")
	f.Materials = allOf(q, "material")
	f.Technologies = allOf(q, "technology")
	f.Sizes = allOf(q, "size")
	f.BrandID = strings.TrimSpace(firstOf(q, "brand", "brand_id"))

	if v, err := strconv.ParseFloat(q.Get("price_min"), 64); err == nil && v >= 0 {
		f.PriceMin = v
	}
	if v, err := strconv.ParseFloat(q.Get("price_max"), 64); err == nil && v > 0 {
		f.PriceMax = v
	}

	if key := domain.SortKey(q.Get("sort")); catalog.ValidSortKey(key) {
		f.Sort = key
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page >= 1 {
		f.Page = page
	}
	return f
}

func firstOf(q map[string][]string, keys ...string) string {
	for _, key := range keys {
		if vs := q[key]; len(vs) > 0 && vs[0] != "" {
			return vs[0]
		}
	}
	return ""
}

func allOf(q map[string][]string, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
