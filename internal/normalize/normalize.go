// Package normalize converts raw backend payloads into the single
// canonical camelCase shape the rest of the gateway consumes. The
// backend is inconsistent about casing: depending on the endpoint (and
// its age) the same entity arrives with camelCase or PascalCase keys,
// and optional fields may be absent entirely. Each entity has a static
// field table listing the canonical key and its default; lookup order
// is always camelCase first, then the PascalCase variant, then the
// default. Because camelCase wins, re-normalizing an already-normalized
// map is a no-op.
package normalize

import "strings"

// field is one row of an entity's normalization table: the canonical
// camelCase key and the value substituted when neither casing is
// present in the raw payload.
type field struct {
	key string
	def any
}

// pascal upper-cases the first byte of a camelCase key, which is the
// only PascalCase variant the backend emits (id -> Id, imageUrl ->
// ImageUrl, isActive -> IsActive).
func pascal(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// pick looks up the canonical key on the raw map, camelCase first and
// PascalCase as fallback. The second return reports whether either
// casing was present, so callers can tell an explicit false/empty value
// apart from an absent one.
func pick(raw map[string]any, key string) (any, bool) {
	if v, ok := raw[key]; ok {
		return v, true
	}
	if v, ok := raw[pascal(key)]; ok {
		return v, true
	}
	return nil, false
}

// apply builds a fresh canonical map from the raw one using the given
// field table. The input is never mutated. An explicitly present value
// always survives, even when it is false, zero or empty; defaults only
// fill genuinely absent keys.
func apply(raw map[string]any, fields []field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := pick(raw, f.key); ok {
			out[f.key] = v
		} else {
			out[f.key] = f.def
		}
	}
	return out
}

// Map normalizes a single raw object against a field table. nil in,
// nil out: a missing entity is not reconstructed from defaults.
func Map(raw map[string]any, fields []field) map[string]any {
	if raw == nil {
		return nil
	}
	return apply(raw, fields)
}

// Slice normalizes a raw array by mapping the scalar normalizer over
// each object element. Anything that is not a []any (including nil)
// normalizes to an empty list, and non-object elements are dropped.
func Slice(raw any, fields []field) []map[string]any {
	arr, ok := raw.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out = append(out, apply(m, fields))
		}
	}
	return out
}
