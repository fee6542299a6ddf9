// Package normalize converts raw upstream records into canonical catalog
// entities. Upstream endpoints disagree on field naming, nesting and
// encodings; everything here is best-effort and never returns an error.
// A record that cannot yield its identity field is dropped, not reported.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/extract"
)

// StoreAssociation converts one raw store-association record into its
// canonical form. Returns nil when no store ID can be resolved: without an
// identity key the record cannot participate in merge-by-key.
func StoreAssociation(raw domain.RawRecord) *domain.StoreAssociation {
	storeID, ok := extract.String(raw, "store_id", "storeId", "id", "store.id")
	if !ok {
		return nil
	}

	assoc := &domain.StoreAssociation{
		StoreID:   storeID,
		StoreName: domain.UnknownStoreName,
		Sizes:     Sizes(raw, "sizes", "available_sizes"),
	}

	if name, ok := extract.String(raw, "store_name", "storeName", "name", "store.name", "store.title"); ok {
		assoc.StoreName = name
	}

	assoc.Price, assoc.Currency = price(raw, "price", "amount", "cost", "store.price")

	if v, ok := extract.String(raw, "telegram", "telegram_url", "store.telegram"); ok {
		assoc.Telegram = v
	}
	if v, ok := extract.String(raw, "instagram", "instagram_url", "store.instagram"); ok {
		assoc.Instagram = v
	}
	if v, ok := extract.String(raw, "shipping", "delivery", "store.shipping"); ok {
		assoc.Shipping = v
	}
	if v, ok := extract.String(raw, "logo", "logo_url", "store.logo"); ok {
		assoc.LogoURL = v
	}
	if v, ok := extract.Bool(raw, "recommended", "is_recommended", "store.recommended"); ok {
		assoc.Recommended = v
	}

	return assoc
}

// StoreAssociations normalizes a raw list, silently dropping unusable
// records so one malformed entry never aborts a page load.
func StoreAssociations(raws []domain.RawRecord) []domain.StoreAssociation {
	out := make([]domain.StoreAssociation, 0, len(raws))
	for _, raw := range raws {
		if assoc := StoreAssociation(raw); assoc != nil {
			out = append(out, *assoc)
		}
	}
	return out
}

// price resolves a price trying several field names. The located value may
// itself be an envelope ({amount, currency}); in that case it is unwrapped
// one more level before coercion. Unparseable values yield 0, never an
// error.
func price(raw domain.RawRecord, keys ...string) (float64, string) {
	v, ok := extract.Any(raw, keys...)
	if !ok {
		return 0, ""
	}

	if envelope, isObj := v.(map[string]any); isObj {
		amount, _ := extract.Number(envelope, "amount", "value")
		currency, _ := extract.String(envelope, "currency", "currency_code")
		return amount, currency
	}

	amount, _ := extract.Number(raw, keys...)
	currency, _ := extract.String(raw, "currency", "currency_code")
	return amount, currency
}

// Sizes parses a sizes field that upstreams encode three different ways: a
// native list, a JSON-array string, or a comma-separated string. A
// non-empty string matching none of those becomes a single-element list;
// anything else is an empty list.
func Sizes(raw domain.RawRecord, keys ...string) []string {
	if list, ok := extract.StringSlice(raw, keys...); ok {
		return trimAll(list)
	}

	s, ok := extract.String(raw, keys...)
	if !ok {
		return []string{}
	}

	if strings.HasPrefix(s, "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			return trimAll(decoded)
		}
	}

	if strings.Contains(s, ",") {
		return trimAll(strings.Split(s, ","))
	}

	return []string{s}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
