package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opryshko/vitryna/internal/domain"
)

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.ERATELIMIT, http.StatusTooManyRequests},
		{domain.EUNAVAILABLE, http.StatusServiceUnavailable},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"unknown_code", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ErrorCodeToHTTPStatus(tt.code); got != tt.expected {
				t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", tt.code, got, tt.expected)
			}
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found error",
			err:            domain.NotFound("product.get", "product", "abc-123"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.ENOTFOUND,
		},
		{
			name:           "validation error",
			err:            domain.Invalid("preset.save", "Preset name is required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   domain.EINVALID,
		},
		{
			name:           "upstream failure",
			err:            domain.Unavailable(nil, "upstream.catalog", "Catalog service is unavailable."),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   domain.EUNAVAILABLE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Accept", "application/json")
			rec := httptest.NewRecorder()

			ErrorResponse(rec, req, tt.err)

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}

			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want %q", ct, "application/json")
			}

			var response struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}

			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.Error.Code != tt.expectedCode {
				t.Errorf("error.code = %q, want %q", response.Error.Code, tt.expectedCode)
			}
		})
	}
}

func TestErrorResponse_PlainText(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	err := domain.NotFound("product.get", "product", "abc-123")
	ErrorResponse(rec, req, err)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	if body := rec.Body.String(); body == "" {
		t.Error("response body should not be empty")
	}
}

func TestErrorResponse_InternalHidesDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	err := domain.Internal(nil, "db.query", "failed to connect to database at 192.168.1.100:5432")
	ErrorResponse(rec, req, err)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var response struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error.Message != "An internal error occurred. Please try again later." {
		t.Errorf("internal error message leaked details: %q", response.Error.Message)
	}
}

func TestParseFilterState(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/catalog?q=zoom&category=shoes&category=hoodies&color=black&brand=b-nike"+
			"&price_min=50&price_max=200&sort=price-asc&page=3", nil)

	f := ParseFilterState(req)

	if f.Query != "zoom" {
		t.Errorf("Query = %q, want %q", f.Query, "zoom")
	}
	if len(f.Categories) != 2 || f.Categories[0] != "shoes" {
		t.Errorf("Categories = %v", f.Categories)
	}
	if f.BrandID != "b-nike" {
		t.Errorf("BrandID = %q", f.BrandID)
	}
	if f.PriceMin != 50 || f.PriceMax != 200 {
		t.Errorf("price interval = [%v, %v]", f.PriceMin, f.PriceMax)
	}
	if f.Sort != domain.SortByPriceAsc {
		t.Errorf("Sort = %q", f.Sort)
	}
	if f.Page != 3 {
		t.Errorf("Page = %d", f.Page)
	}
}

func TestParseFilterState_TolerantDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/catalog?sort=rating&page=-2&price_min=abc&price_max=-5", nil)

	f := ParseFilterState(req)
	defaults := domain.NewFilterState()

	if f.Sort != defaults.Sort {
		t.Errorf("unknown sort key should fall back to %q, got %q", defaults.Sort, f.Sort)
	}
	if f.Page != defaults.Page {
		t.Errorf("invalid page should fall back to %d, got %d", defaults.Page, f.Page)
	}
	if f.PriceMin != 0 || f.PriceMax != domain.DefaultPriceCeiling {
		t.Errorf("malformed price bounds should stay inactive, got [%v, %v]", f.PriceMin, f.PriceMax)
	}
}
