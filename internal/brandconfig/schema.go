// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package brandconfig defines the per-brand AI configuration schema and the
// resolution engine that layers category templates and brand overrides on
// top of the built-in defaults. Every field has a schema-level default, so
// resolution never fails on a missing key — only on a value of the wrong
// shape.
package brandconfig

import "encoding/json"

// ProductVocabulary names the brand's product in prompts: "garment" vs
// "dish" vs the generic "product".
type ProductVocabulary struct {
	Singular     string            `json:"singular"`
	Plural       string            `json:"plural"`
	FeaturedPart string            `json:"featured_part"`
	Parts        map[string]string `json:"parts"`
}

// ColorPalette is the three-tier brand palette. Each tier maps a color name
// to its hex value. UsageRules may mix plain strings with a never_use list,
// so it stays loosely typed.
type ColorPalette struct {
	Primary    map[string]string `json:"primary"`
	Secondary  map[string]string `json:"secondary"`
	Accent     map[string]string `json:"accent"`
	UsageRules map[string]any    `json:"usage_rules"`
}

// Typography describes type feel for generated visuals, not concrete fonts.
type Typography struct {
	HeadingFeel string   `json:"heading_feel"`
	BodyFeel    string   `json:"body_feel"`
	OverlayFeel string   `json:"overlay_feel"`
	Rules       []string `json:"rules"`
}

// VisualIdentity captures grid-level aesthetic preferences and exclusions.
type VisualIdentity struct {
	GridAesthetic string   `json:"grid_aesthetic"`
	DominantMood  string   `json:"dominant_mood"`
	Avoid         []string `json:"avoid"`
	Prefer        []string `json:"prefer"`
}

// Hashtags is the pool of tags grouped into ten named buckets. NeverUse is
// the only negatively-framed bucket and must stay out of any positive pool.
type Hashtags struct {
	BrandAlways      []string `json:"brand_always"`
	Craft            []string `json:"craft"`
	Product          []string `json:"product"`
	ProductOther     []string `json:"product_other"`
	Discovery        []string `json:"discovery"`
	OccasionFestive  []string `json:"occasion_festive"`
	OccasionWedding  []string `json:"occasion_wedding"`
	OccasionEveryday []string `json:"occasion_everyday"`
	Niche            []string `json:"niche"`
	NeverUse         []string `json:"never_use"`
}

// CaptionRules bounds generated captions.
type CaptionRules struct {
	OptimalLength string   `json:"optimal_length"`
	MaxLength     int      `json:"max_length"`
	EmojiLimit    int      `json:"emoji_limit"`
	MustMention   []string `json:"must_mention"`
	BannedWords   []string `json:"banned_words"`
}

// Occasions lists posting occasions by bucket plus the target content mix
// (percentages by shot type).
type Occasions struct {
	Festive    []string       `json:"festive"`
	Wedding    []string       `json:"wedding"`
	Everyday   []string       `json:"everyday"`
	Campaign   []string       `json:"campaign"`
	ContentMix map[string]int `json:"content_mix"`
}

// Config is the fully resolved brand configuration driving every downstream
// AI prompt. Treat it as immutable once built.
type Config struct {
	Brand              map[string]string   `json:"brand"`
	Language           string              `json:"language"`
	ProductCodePattern string              `json:"product_code_pattern"`
	ProductVocabulary  ProductVocabulary   `json:"product_vocabulary"`
	Colors             ColorPalette        `json:"colors"`
	Typography         Typography          `json:"typography"`
	VisualIdentity     VisualIdentity      `json:"visual_identity"`
	PropsLibrary       map[string][]string `json:"props_library"`
	DisplayStyles      map[string]string   `json:"display_styles"`
	VariationModifiers []string            `json:"variation_modifiers"`
	Hashtags           Hashtags            `json:"hashtags"`
	CaptionRules       CaptionRules        `json:"caption_rules"`
	Occasions          Occasions           `json:"occasions"`
	CTARotation        []string            `json:"cta_rotation"`
	SampleArtisans     []string            `json:"sample_artisans"`
	AudienceProfile    string              `json:"audience_profile"`
	BrandVoice         string              `json:"brand_voice"`
	LLMGuardrails      string              `json:"llm_guardrails"`
}

// CanonicalJSON serializes the config deterministically: struct fields keep
// declaration order and encoding/json sorts map keys, so identical configs
// produce byte-identical output.
func (c *Config) CanonicalJSON() ([]byte, error) {
	return json.Marshal(c)
}

// Defaults returns the schema-level default tree as a plain map, the base
// layer of every resolution. Callers own the returned map.
func Defaults() map[string]any {
	return map[string]any{
		"brand":                map[string]any{},
		"language":             "en",
		"product_code_pattern": `\b[A-Z]{2,12}-\d{2,}\b`,
		"product_vocabulary": map[string]any{
			"singular":      "product",
			"plural":        "products",
			"featured_part": "detail",
			"parts":         map[string]any{},
		},
		"colors": map[string]any{
			"primary":     map[string]any{"charcoal": "#2C2C2C", "cream": "#F5F0E8"},
			"secondary":   map[string]any{},
			"accent":      map[string]any{},
			"usage_rules": map[string]any{},
		},
		"typography": map[string]any{
			"heading_feel": "Editorial serif",
			"body_feel":    "Readable sans",
			"overlay_feel": "Simple display type",
			"rules":        []any{},
		},
		"visual_identity": map[string]any{
			"grid_aesthetic": "Curated, uncluttered, and premium",
			"dominant_mood":  "Warm and intentional",
			"avoid":          []any{},
			"prefer":         []any{},
		},
		"props_library":       map[string]any{},
		"display_styles":      map[string]any{},
		"variation_modifiers": []any{},
		"hashtags": map[string]any{
			"brand_always":      []any{},
			"craft":             []any{},
			"product":           []any{},
			"product_other":     []any{},
			"discovery":         []any{},
			"occasion_festive":  []any{},
			"occasion_wedding":  []any{},
			"occasion_everyday": []any{},
			"niche":             []any{},
			"never_use":         []any{},
		},
		"caption_rules": map[string]any{
			"optimal_length": "150-220 words",
			"max_length":     280,
			"emoji_limit":    2,
			"must_mention":   []any{},
			"banned_words":   []any{},
		},
		"occasions": map[string]any{
			"festive":     []any{},
			"wedding":     []any{},
			"everyday":    []any{},
			"campaign":    []any{},
			"content_mix": map[string]any{"hero": 50, "lifestyle": 25, "detail": 25},
		},
		"cta_rotation":     []any{},
		"sample_artisans":  []any{},
		"audience_profile": "",
		"brand_voice":      "",
		"llm_guardrails":   "",
	}
}
