// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brandconfig

// DeepMerge layers override on top of base and returns a new map; neither
// input is mutated. Nested maps merge recursively. Every other value type,
// lists included, replaces the base value wholesale — sequences are never
// concatenated or element-merged.
func DeepMerge(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = deepCopy(v)
	}
	for k, v := range override {
		if ov, ok := v.(map[string]any); ok {
			if bv, ok := merged[k].(map[string]any); ok {
				merged[k] = DeepMerge(bv, ov)
				continue
			}
		}
		merged[k] = deepCopy(v)
	}
	return merged
}

// deepCopy clones maps and slices so merged trees never alias their inputs.
// Scalars are returned as-is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopy(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	default:
		return v
	}
}
