// Package extract provides tolerant typed accessors over untyped upstream
// records. Every upstream endpoint names the same concept differently
// (store_id, id, store.id), so each logical field is read through an ordered
// list of candidate keys and the first type-matching hit wins.
//
// Nothing here ever returns an error or panics: a missing key, a wrong type,
// or a non-object where a nested path expects one all mean "not present".
package extract

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// lookup resolves a candidate key against a record. A key may contain a
// single dot for one level of nesting ("store.id"). A nested path through a
// non-object resolves to nothing.
func lookup(raw map[string]any, key string) (any, bool) {
	if raw == nil {
		return nil, false
	}

	parent, child, nested := strings.Cut(key, ".")
	if !nested {
		v, ok := raw[key]
		return v, ok
	}

	inner, ok := raw[parent]
	if !ok {
		return nil, false
	}
	obj, ok := inner.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := obj[child]
	return v, ok
}

// String returns the first non-empty string found under the candidate keys.
// The literal placeholders "undefined" and "null" count as absent; they are
// serialization artifacts, never real values.
func String(raw map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "undefined" || s == "null" {
			continue
		}
		return s, true
	}
	return "", false
}

// Number returns the first numeric value found under the candidate keys.
// JSON numbers arrive as float64; numeric strings are parsed through
// decimal so that values like "49.99" convert exactly. Unparseable values
// are skipped, not errors.
func Number(raw map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		if n, ok := coerceNumber(v); ok {
			return n, true
		}
	}
	return 0, false
}

// coerceNumber converts a scalar to float64 where possible.
func coerceNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, false
		}
		f, _ := d.Float64()
		return f, true
	}
	return 0, false
}

// StringSlice returns the first value under the candidate keys that is a
// list of strings. List elements that are not strings are skipped rather
// than failing the whole list.
func StringSlice(raw map[string]any, keys ...string) ([]string, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// Bool returns the first boolean found under the candidate keys. String
// forms ("true", "1") and numeric 1 are accepted because upstreams disagree
// on how to encode flags.
func Bool(raw map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
				return parsed, true
			}
		case float64:
			return b != 0, true
		}
	}
	return false, false
}

// Object returns the first nested object found under the candidate keys.
func Object(raw map[string]any, keys ...string) (map[string]any, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		if obj, ok := v.(map[string]any); ok {
			return obj, true
		}
	}
	return nil, false
}

// ObjectSlice returns the first value under the candidate keys that is a
// list of objects. Non-object elements are skipped.
func ObjectSlice(raw map[string]any, keys ...string) ([]map[string]any, bool) {
	for _, key := range keys {
		v, ok := lookup(raw, key)
		if !ok {
			continue
		}
		list, ok := v.([]any)
		if !ok {
			continue
		}
		out := make([]map[string]any, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				out = append(out, obj)
			}
		}
		return out, true
	}
	return nil, false
}

// Any returns the first value present under the candidate keys, untyped.
// Used when the caller needs to inspect the shape itself (e.g. a price that
// may be a scalar or an {amount, currency} envelope).
func Any(raw map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := lookup(raw, key); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
