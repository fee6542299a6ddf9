package normalize

import (
	"strings"

	"github.com/opryshko/vitryna/internal/domain"
	"github.com/opryshko/vitryna/internal/extract"
)

// TaxonomyList extracts a list of labels for a taxonomy field (materials,
// technologies, sizes). The value may be a bare list or an envelope object
// carrying the list under items/data/values; each element may be a plain
// string or an object labeled under name/title/slug/value/label. Labels are
// deduplicated preserving first-seen order.
func TaxonomyList(raw domain.RawRecord, keys ...string) []string {
	v, ok := extract.Any(raw, keys...)
	if !ok {
		return []string{}
	}

	list, ok := v.([]any)
	if !ok {
		envelope, isObj := v.(map[string]any)
		if !isObj {
			return []string{}
		}
		inner, found := extract.Any(envelope, "items", "data", "values")
		if !found {
			return []string{}
		}
		list, ok = inner.([]any)
		if !ok {
			return []string{}
		}
	}

	labels := make([]string, 0, len(list))
	for _, item := range list {
		if label := taxonomyLabel(item); label != "" {
			labels = append(labels, label)
		}
	}
	return dedupe(labels)
}

// taxonomyLabel resolves one taxonomy element to its display label.
func taxonomyLabel(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		label, _ := extract.String(v, "name", "title", "slug", "value", "label")
		return label
	}
	return ""
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
