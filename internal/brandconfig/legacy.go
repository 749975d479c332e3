// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// legacy.go migrates brand override fragments written against retired
// schema versions. Migration runs only on brand overrides, never on
// category templates, and is a pure function of its input.

package brandconfig

import (
	"regexp"
	"strconv"
	"strings"
)

var firstInt = regexp.MustCompile(`(\d+)`)

// legacyPropsBuckets maps retired props-library bucket names to their
// replacements.
var legacyPropsBuckets = map[string]string{
	"warm_festive":    "warm",
	"calm_minimal":    "minimal",
	"rich_luxe":       "luxe",
	"earthy_grounded": "earthy",
}

// MigrateLegacyKeys rewrites a brand override fragment to the current
// schema. The input map is not mutated. Rules:
//
//   - a flat primary_product_label promotes into product_vocabulary when
//     its singular/plural are absent
//   - saree_display_styles renames to display_styles when the new key is
//     absent
//   - hashtags.product_saree copies into hashtags.product when absent
//   - retired props-library buckets copy into their replacements when absent
//   - non-string values are stripped from the brand identity block
//   - caption_rules max_length / emoji_limit coerce from free text to the
//     first embedded integer (defaults 280 and 2)
func MigrateLegacyKeys(fragment map[string]any) map[string]any {
	out := DeepMerge(map[string]any{}, fragment)

	if label, ok := out["primary_product_label"].(string); ok {
		delete(out, "primary_product_label")
		label = strings.TrimSpace(label)
		if label != "" {
			vocab, _ := out["product_vocabulary"].(map[string]any)
			if vocab == nil {
				vocab = map[string]any{}
			}
			if _, ok := vocab["singular"]; !ok {
				vocab["singular"] = label
			}
			if _, ok := vocab["plural"]; !ok {
				vocab["plural"] = label + "s"
			}
			out["product_vocabulary"] = vocab
		}
	} else {
		delete(out, "primary_product_label")
	}

	if styles, ok := out["saree_display_styles"].(map[string]any); ok {
		if _, has := out["display_styles"].(map[string]any); !has {
			out["display_styles"] = styles
		}
	}
	delete(out, "saree_display_styles")

	if hashtags, ok := out["hashtags"].(map[string]any); ok {
		if saree, ok := hashtags["product_saree"].([]any); ok {
			if _, has := hashtags["product"].([]any); !has {
				hashtags["product"] = saree
			}
		}
	}

	if props, ok := out["props_library"].(map[string]any); ok {
		for oldKey, newKey := range legacyPropsBuckets {
			legacy, ok := props[oldKey].([]any)
			if !ok {
				continue
			}
			if _, has := props[newKey].([]any); !has {
				props[newKey] = legacy
			}
		}
	}

	// Legacy brand blocks carried list-valued fields (pillars); the current
	// schema is string-only.
	if brand, ok := out["brand"].(map[string]any); ok {
		for k, v := range brand {
			if _, ok := v.(string); !ok {
				delete(brand, k)
			}
		}
	}

	if rules, ok := out["caption_rules"].(map[string]any); ok {
		if v, has := rules["max_length"]; has {
			rules["max_length"] = extractInt(v, 280)
		}
		if v, has := rules["emoji_limit"]; has {
			rules["emoji_limit"] = extractInt(v, 2)
		}
	}

	return out
}

// extractInt coerces free-text numeric fields ("2200 characters max",
// "0-2 emojis") to their first embedded integer, falling back to the
// schema default when no digits are present. JSON numbers decode as
// float64, so both numeric forms are accepted.
func extractInt(value any, fallback int) int {
	switch t := value.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if m := firstInt.FindString(t); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
	}
	return fallback
}
