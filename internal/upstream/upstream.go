// Package upstream fetches catalog data from the marketplace backend. The
// backend's payloads are loosely shaped and drift between deployments, so
// everything is surfaced as raw records for the normalize layer to decode.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/extract"
)

// Client is the read-side contract against the marketplace backend.
type Client interface {
	// FetchCatalogPage returns one page of catalog records matching the
	// filter state, plus server pagination metadata when provided.
	FetchCatalogPage(ctx context.Context, f domain.FilterState, pageSize int) (*CatalogResponse, error)

	// FetchProductDetail returns the raw detail record for one product.
	FetchProductDetail(ctx context.Context, productID string) (domain.RawRecord, error)

	// FetchProductStores returns the per-store association records for
	// one product.
	FetchProductStores(ctx context.Context, productID string) ([]domain.RawRecord, error)

	// FetchCategoryTree returns the raw category records.
	FetchCategoryTree(ctx context.Context) ([]domain.RawRecord, error)
}

// CatalogResponse is one page of the backend catalog listing. Meta is nil
// when the backend sent a bare array without pagination info.
type CatalogResponse struct {
	Items  []domain.RawRecord
	Meta   *domain.PageMeta
	Brands []domain.RawRecord
	SEO    domain.RawRecord
}

// HTTPClient talks to the backend over HTTP with JSON payloads.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClient creates a backend client rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *HTTPClient) FetchCatalogPage(ctx context.Context, f domain.FilterState, pageSize int) (*CatalogResponse, error) {
	const op = "upstream.FetchCatalogPage"

	q := url.Values{}
	if s := strings.TrimSpace(f.Query); s != "" {
		q.Set("search", s)
	}
	setAll(q, "category", f.Categories)
	setAll(q, "color", f.Colors)
	setAll(q, "gender", f.Genders)
	setAll(q, "material", f.Materials)
	setAll(q, "technology", f.Technologies)
	setAll(q, "size", f.Sizes)
	if f.BrandID != "" {
		q.Set("brand", f.BrandID)
	}
	if f.PriceMin > 0 {
		q.Set("price_min", strconv.FormatFloat(f.PriceMin, 'f', -1, 64))
	}
	if f.PriceMax > 0 && f.PriceMax < domain.DefaultPriceCeiling {
		q.Set("price_max", strconv.FormatFloat(f.PriceMax, 'f', -1, 64))
	}
	if f.Sort != "" {
		q.Set("sort", string(f.Sort))
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}

	body, status, err := c.get(ctx, "/api/products?"+q.Encode())
	if err != nil {
		return nil, domain.Unavailable(err, op, "Catalog service is unavailable. Please try again.")
	}
	if status != http.StatusOK {
		return nil, domain.Unavailable(fmt.Errorf("unexpected status %d", status), op, "Catalog service is unavailable. Please try again.")
	}

	resp, err := decodeCatalogPage(body)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Received a malformed response from the catalog service.")
	}
	return resp, nil
}

func (c *HTTPClient) FetchProductDetail(ctx context.Context, productID string) (domain.RawRecord, error) {
	const op = "upstream.FetchProductDetail"

	body, status, err := c.get(ctx, "/api/products/"+url.PathEscape(productID))
	if err != nil {
		return nil, domain.Unavailable(err, op, "Catalog service is unavailable. Please try again.")
	}
	if status == http.StatusNotFound {
		return nil, domain.WrapError(domain.ErrProductNotFound, domain.ENOTFOUND, op, "Product not found")
	}
	if status != http.StatusOK {
		return nil, domain.Unavailable(fmt.Errorf("unexpected status %d", status), op, "Catalog service is unavailable. Please try again.")
	}

	record, err := decodeRecord(body)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Received a malformed response from the catalog service.")
	}
	return record, nil
}

func (c *HTTPClient) FetchProductStores(ctx context.Context, productID string) ([]domain.RawRecord, error) {
	const op = "upstream.FetchProductStores"

	body, status, err := c.get(ctx, "/api/products/"+url.PathEscape(productID)+"/stores")
	if err != nil {
		return nil, domain.Unavailable(err, op, "Store availability is unavailable right now.")
	}
	if status == http.StatusNotFound {
		// Backend reports no store rows for this product; that is an
		// empty result, not a failure.
		return []domain.RawRecord{}, nil
	}
	if status != http.StatusOK {
		return nil, domain.Unavailable(fmt.Errorf("unexpected status %d", status), op, "Store availability is unavailable right now.")
	}

	records, err := decodeRecordList(body)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Received a malformed response from the catalog service.")
	}
	return records, nil
}

func (c *HTTPClient) FetchCategoryTree(ctx context.Context) ([]domain.RawRecord, error) {
	const op = "upstream.FetchCategoryTree"

	body, status, err := c.get(ctx, "/api/categories")
	if err != nil {
		return nil, domain.Unavailable(err, op, "Category service is unavailable.")
	}
	if status != http.StatusOK {
		return nil, domain.Unavailable(fmt.Errorf("unexpected status %d", status), op, "Category service is unavailable.")
	}

	records, err := decodeRecordList(body)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, op, "Received a malformed response from the catalog service.")
	}
	return records, nil
}

// get issues the request and returns the body and status. Transport errors
// come back as-is for the caller to classify.
func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", "path", path, "error", err)
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("upstream request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, resp.StatusCode, nil
}

func setAll(q url.Values, key string, values []string) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			q.Add(key, v)
		}
	}
}

// decodeCatalogPage accepts either a bare JSON array of product records or
// an envelope with items plus pagination, brand, and SEO blocks.
func decodeCatalogPage(body []byte) (*CatalogResponse, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse catalog page: %w", err)
	}

	switch v := payload.(type) {
	case []any:
		return &CatalogResponse{Items: toRecords(v)}, nil
	case map[string]any:
		resp := &CatalogResponse{}
		if seo, ok := extract.Object(v, "seo"); ok {
			resp.SEO = seo
		}
		if items, ok := extract.Any(v, "items", "data", "products"); ok {
			if list, ok := items.([]any); ok {
				resp.Items = toRecords(list)
			}
		}
		if brands, ok := extract.Any(v, "brands"); ok {
			if list, ok := brands.([]any); ok {
				resp.Brands = toRecords(list)
			}
		}
		resp.Meta = decodeMeta(v)
		return resp, nil
	default:
		return nil, fmt.Errorf("unexpected catalog payload shape %T", payload)
	}
}

// decodeMeta reads server pagination out of the envelope. Returns nil when
// the envelope carries no usable totals.
func decodeMeta(raw domain.RawRecord) *domain.PageMeta {
	src := raw
	if nested, ok := extract.Object(raw, "meta", "pagination"); ok {
		src = nested
	}

	total, ok := extract.Number(src, "total", "total_items", "totalItems", "count")
	if !ok {
		return nil
	}

	meta := &domain.PageMeta{TotalItems: int(total), Page: 1, TotalPages: 1}
	if page, ok := extract.Number(src, "page", "current_page", "currentPage"); ok && page >= 1 {
		meta.Page = int(page)
	}
	if pages, ok := extract.Number(src, "total_pages", "totalPages", "pages"); ok && pages >= 1 {
		meta.TotalPages = int(pages)
	}
	meta.HasNext = meta.Page < meta.TotalPages
	meta.HasPrev = meta.Page > 1
	return meta
}

func decodeRecord(body []byte) (domain.RawRecord, error) {
	var record domain.RawRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	// Some endpoints wrap the record one level down.
	if nested, ok := extract.Object(record, "data", "product", "item"); ok {
		return nested, nil
	}
	return record, nil
}

func decodeRecordList(body []byte) ([]domain.RawRecord, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse record list: %w", err)
	}

	switch v := payload.(type) {
	case []any:
		return toRecords(v), nil
	case map[string]any:
		if items, ok := extract.Any(v, "items", "data", "stores", "categories"); ok {
			if list, ok := items.([]any); ok {
				return toRecords(list), nil
			}
		}
		return nil, fmt.Errorf("envelope without a record list")
	default:
		return nil, fmt.Errorf("unexpected list payload shape %T", payload)
	}
}

func toRecords(list []any) []domain.RawRecord {
	out := make([]domain.RawRecord, 0, len(list))
	for _, item := range list {
		if record, ok := item.(map[string]any); ok {
			out = append(out, domain.RawRecord(record))
		}
	}
	return out
}
