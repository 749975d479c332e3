// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package prompt formats a resolved brand configuration into the final
// instruction text sent to an AI provider. Base templates use
// {placeholder} markers; values are flattened, human-readable projections
// of the configuration. Unknown placeholders are left verbatim so
// templates can evolve independently of the renderer.
package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"brandpress/internal/brandconfig"
)

// maxHashtagPool caps how many tags the hashtag_pool placeholder exposes.
const maxHashtagPool = 40

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render substitutes every known {placeholder} in base with its projection
// from cfg. Placeholders the renderer does not know stay verbatim.
func Render(base string, cfg *brandconfig.Config) string {
	replacements := buildReplacements(cfg)
	return placeholderPattern.ReplaceAllStringFunc(base, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := replacements[key]; ok {
			return value
		}
		return match
	})
}

func buildReplacements(cfg *brandconfig.Config) map[string]string {
	brandName := strings.TrimSpace(cfg.Brand["name"])
	if brandName == "" {
		brandName = "This brand"
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = "en"
	}

	return map[string]string{
		"brand_name":        brandName,
		"brand_description": strings.TrimSpace(cfg.Brand["description"]),
		"brand_tagline":     strings.TrimSpace(cfg.Brand["tagline"]),
		"brand_website":     strings.TrimSpace(cfg.Brand["website"]),
		"brand_instagram":   strings.TrimSpace(cfg.Brand["instagram"]),
		"brand_language":    language,
		"audience_profile":  strings.TrimSpace(cfg.AudienceProfile),
		"brand_voice":       strings.TrimSpace(cfg.BrandVoice),
		"llm_guardrails":    strings.TrimSpace(cfg.LLMGuardrails),

		"product_singular":      fallback(cfg.ProductVocabulary.Singular, "product"),
		"product_plural":        fallback(cfg.ProductVocabulary.Plural, "products"),
		"product_part_featured": fallback(cfg.ProductVocabulary.FeaturedPart, "detail"),
		"product_parts":         joinSortedValues(cfg.ProductVocabulary.Parts),

		"primary_color":   formatColors(cfg.Colors.Primary),
		"secondary_color": formatColors(cfg.Colors.Secondary),
		"accent_color":    formatColors(cfg.Colors.Accent),

		"display_styles":        formatDisplayStyles(cfg.DisplayStyles),
		"props_library":         formatProps(cfg.PropsLibrary),
		"aesthetic_exclusions":  strings.Join(cfg.VisualIdentity.Avoid, ", "),
		"aesthetic_preferences": strings.Join(cfg.VisualIdentity.Prefer, ", "),

		"hashtag_pool":        formatHashtagPool(cfg.Hashtags),
		"banned_words":        strings.Join(cfg.CaptionRules.BannedWords, ", "),
		"cta_options":         joinClean(cfg.CTARotation, " | "),
		"occasions_list":      formatOccasions(cfg.Occasions),
		"sample_artisans":     joinClean(cfg.SampleArtisans, ", "),
		"variation_modifiers": joinClean(cfg.VariationModifiers, " | "),
	}
}

func fallback(value, def string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return def
}

// formatColors renders a color tier as "name (#hex), name (#hex)". Keys are
// sorted so output is deterministic for identical configs.
func formatColors(colors map[string]string) string {
	if len(colors) == 0 {
		return "not specified"
	}
	names := sortedKeys(colors)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		if hex := strings.TrimSpace(colors[name]); hex != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", name, hex))
		}
	}
	if len(parts) == 0 {
		return "not specified"
	}
	return strings.Join(parts, ", ")
}

func formatDisplayStyles(styles map[string]string) string {
	names := sortedKeys(styles)
	entries := make([]string, 0, len(names))
	for _, name := range names {
		if desc := strings.TrimSpace(styles[name]); desc != "" {
			entries = append(entries, fmt.Sprintf("%s: %s", name, desc))
		}
	}
	return strings.Join(entries, "; ")
}

// formatProps renders the props library bucket by bucket. The never_use
// bucket is a ban list, not a suggestion, so it stays out of this
// positively-framed projection.
func formatProps(props map[string][]string) string {
	buckets := make([]string, 0, len(props))
	for _, name := range sortedKeys(props) {
		if name == "never_use" {
			continue
		}
		if joined := joinClean(props[name], ", "); joined != "" {
			buckets = append(buckets, fmt.Sprintf("%s: %s", name, joined))
		}
	}
	return strings.Join(buckets, " ; ")
}

// formatHashtagPool flattens the positive hashtag buckets into one deduped,
// space-separated pool capped at maxHashtagPool tags. The never_use bucket
// is excluded.
func formatHashtagPool(tags brandconfig.Hashtags) string {
	buckets := [][]string{
		tags.BrandAlways, tags.Craft, tags.Product, tags.ProductOther,
		tags.Discovery, tags.OccasionFestive, tags.OccasionWedding,
		tags.OccasionEveryday, tags.Niche,
	}

	seen := make(map[string]bool)
	var pool []string
	for _, bucket := range buckets {
		for _, tag := range bucket {
			tag = strings.TrimSpace(tag)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			pool = append(pool, tag)
			if len(pool) == maxHashtagPool {
				return strings.Join(pool, " ")
			}
		}
	}
	return strings.Join(pool, " ")
}

func formatOccasions(occasions brandconfig.Occasions) string {
	ordered := []struct {
		name   string
		values []string
	}{
		{"festive", occasions.Festive},
		{"wedding", occasions.Wedding},
		{"everyday", occasions.Everyday},
		{"campaign", occasions.Campaign},
	}

	entries := make([]string, 0, len(ordered))
	for _, bucket := range ordered {
		if joined := joinClean(bucket.values, ", "); joined != "" {
			entries = append(entries, fmt.Sprintf("%s: %s", bucket.name, joined))
		}
	}
	return strings.Join(entries, " ; ")
}

func joinClean(values []string, sep string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return strings.Join(cleaned, sep)
}

func joinSortedValues(m map[string]string) string {
	values := make([]string, 0, len(m))
	for _, key := range sortedKeys(m) {
		if v := strings.TrimSpace(m[key]); v != "" {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
