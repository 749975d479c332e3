// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package prompt

import (
	"strings"
	"testing"

	"brandpress/internal/brandconfig"
)

func testConfig(t *testing.T) *brandconfig.Config {
	t.Helper()
	cfg, err := brandconfig.Decode(brandconfig.BuildCategoryTemplate("fashion"))
	if err != nil {
		t.Fatalf("building fashion template: %v", err)
	}
	cfg.Brand = map[string]string{
		"name":      "Vakalatnama",
		"tagline":   "Woven to be worn",
		"instagram": "@vakalatnama",
	}
	return cfg
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	cfg := testConfig(t)

	got := Render("Write for {brand_name} ({brand_instagram}): one {product_singular}.", cfg)
	want := "Write for Vakalatnama (@vakalatnama): one garment."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_UnknownPlaceholdersLeftVerbatim(t *testing.T) {
	cfg := testConfig(t)

	got := Render("{brand_name} and {future_placeholder} and {not_snake-case}", cfg)
	if !strings.Contains(got, "{future_placeholder}") {
		t.Error("unknown placeholder should survive verbatim")
	}
	if !strings.Contains(got, "{not_snake-case}") {
		t.Error("non-matching brace text should survive verbatim")
	}
	if strings.Contains(got, "{brand_name}") {
		t.Error("known placeholder should be substituted")
	}
}

func TestRender_BrandNameFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.Brand = map[string]string{}

	got := Render("{brand_name}", cfg)
	if got != "This brand" {
		t.Errorf("empty brand name should fall back, got %q", got)
	}
}

func TestRender_ColorProjection(t *testing.T) {
	cfg := testConfig(t)
	cfg.Colors.Primary = map[string]string{
		"charcoal": "#2C2C2C",
		"cream":    "#F5F0E8",
	}
	cfg.Colors.Accent = map[string]string{}

	got := Render("{primary_color} / {accent_color}", cfg)
	if !strings.Contains(got, "charcoal (#2C2C2C), cream (#F5F0E8)") {
		t.Errorf("primary colors malformed: %q", got)
	}
	if !strings.Contains(got, "not specified") {
		t.Errorf("empty tier should render as not specified: %q", got)
	}
}

func TestRender_NeverUseExcludedFromPositivePools(t *testing.T) {
	cfg := testConfig(t)

	pool := Render("{hashtag_pool}", cfg)
	for _, banned := range cfg.Hashtags.NeverUse {
		if strings.Contains(pool, banned) {
			t.Errorf("hashtag pool leaked banned tag %q", banned)
		}
	}
	if !strings.Contains(pool, "#craftedwithintent") {
		t.Errorf("hashtag pool missing brand tag: %q", pool)
	}

	props := Render("{props_library}", cfg)
	if strings.Contains(props, "never_use") || strings.Contains(props, "plastic mannequins") {
		t.Errorf("props projection leaked the ban bucket: %q", props)
	}
	if !strings.Contains(props, "warm: brass bangle") {
		t.Errorf("props projection missing bucket: %q", props)
	}
}

func TestRender_HashtagPoolDedupesAndCaps(t *testing.T) {
	cfg := testConfig(t)
	cfg.Hashtags.Craft = []string{"#dup", "#dup", "#a"}
	cfg.Hashtags.Product = []string{"#dup"}

	pool := Render("{hashtag_pool}", cfg)
	if strings.Count(pool, "#dup") != 1 {
		t.Errorf("pool should dedupe tags: %q", pool)
	}

	var many []string
	for i := 0; i < 60; i++ {
		many = append(many, "#tag"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	cfg.Hashtags = brandconfig.Hashtags{Discovery: many}
	pool = Render("{hashtag_pool}", cfg)
	if got := len(strings.Fields(pool)); got != 40 {
		t.Errorf("pool should cap at 40 tags, got %d", got)
	}
}

func TestRender_OccasionsAndCTAs(t *testing.T) {
	cfg := testConfig(t)

	got := Render("{occasions_list}", cfg)
	if !strings.Contains(got, "festive: festive dressing, cocktail evening") {
		t.Errorf("occasions projection malformed: %q", got)
	}
	if !strings.Contains(got, " ; wedding: ") {
		t.Errorf("occasions buckets should be ; separated: %q", got)
	}

	ctas := Render("{cta_options}", cfg)
	if !strings.Contains(ctas, " | ") {
		t.Errorf("CTAs should be pipe separated: %q", ctas)
	}
}

func TestRender_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	base := CaptionBase()

	first := Render(base, cfg)
	second := Render(base, cfg)
	if first != second {
		t.Error("rendering the same config twice should be identical")
	}
}

func TestBuiltinTemplates(t *testing.T) {
	if CaptionBase() == "" {
		t.Error("caption base template should not be empty")
	}
	if AnalysisBase() == "" {
		t.Error("analysis base template should not be empty")
	}

	cfg := testConfig(t)
	rendered := RenderCaption(cfg)
	if strings.Contains(rendered, "{brand_name}") {
		t.Error("caption template placeholders should all be known")
	}
	if !strings.Contains(rendered, "Vakalatnama") {
		t.Error("rendered caption prompt should carry the brand name")
	}
}
