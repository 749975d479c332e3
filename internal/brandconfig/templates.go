// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// templates.go holds the built-in starter templates for each product
// category. These seed the category template table and serve as the
// fail-soft fallback when a merged configuration does not validate.

package brandconfig

import "strings"

// Categories is the closed set of product categories. Anything else
// normalizes to "general".
var Categories = []string{"fashion", "furniture", "food", "beauty", "general"}

// NormalizeCategory lowercases and trims the raw category value and maps
// unknown or empty values to "general".
func NormalizeCategory(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "general"
	}
	for _, c := range Categories {
		if value == c {
			return value
		}
	}
	return "general"
}

// BuildCategoryTemplate returns the built-in starter configuration for a
// category: the general template with the category's overrides merged in.
// The result is always schema-valid.
func BuildCategoryTemplate(category string) map[string]any {
	normalized := NormalizeCategory(category)
	return DeepMerge(generalTemplate(), categoryOverrides[normalized])
}

// generalTemplate is the fully populated baseline every category starts
// from. Unlike Defaults it carries opinionated starter content.
func generalTemplate() map[string]any {
	return map[string]any{
		"brand": map[string]any{
			"name":      "",
			"tagline":   "",
			"website":   "",
			"instagram": "",
		},
		"language":             "en",
		"product_code_pattern": `\b[A-Z]{2,12}-\d{2,}\b`,
		"product_vocabulary": map[string]any{
			"singular":      "product",
			"plural":        "products",
			"featured_part": "detail",
			"parts":         map[string]any{},
		},
		"colors": map[string]any{
			"primary": map[string]any{
				"charcoal": "#2C2C2C",
				"cream":    "#F5F0E8",
			},
			"secondary": map[string]any{
				"stone": "#B7B0A8",
				"sage":  "#7A8B6F",
			},
			"accent": map[string]any{
				"warm_gold": "#C9A96E",
			},
			"usage_rules": map[string]any{
				"text_on_dark_bg":  "#F5F0E8",
				"text_on_light_bg": "#2C2C2C",
				"never_use":        []any{"neon", "oversaturated gradients"},
			},
		},
		"typography": map[string]any{
			"heading_feel": "Editorial serif",
			"body_feel":    "Clean sans-serif",
			"overlay_feel": "Elegant display text",
			"rules": []any{
				"Use sentence case",
				"Keep overlay text short",
			},
		},
		"visual_identity": map[string]any{
			"grid_aesthetic": "Curated, spacious, and tactile",
			"dominant_mood":  "Warm premium",
			"avoid": []any{
				"Busy cluttered compositions",
				"Harsh direct flash",
				"Cheap stock image look",
			},
			"prefer": []any{
				"Generous whitespace",
				"Natural light or soft studio light",
				"Textured physical backgrounds",
			},
		},
		"props_library": map[string]any{
			"warm":      []any{"ceramic bowl", "textured linen", "dried florals"},
			"minimal":   []any{"single stem", "neutral paper", "matte stone"},
			"luxe":      []any{"brass tray", "smoked glass", "silk ribbon"},
			"earthy":    []any{"wood surface", "terracotta", "jute fabric"},
			"never_use": []any{"plastic props", "brand logos", "novelty decor"},
		},
		"display_styles": map[string]any{
			"hero-closeup":   "Tight frame on hero detail",
			"flat-lay":       "Top-down clean arrangement",
			"lifestyle":      "In-use context scene",
			"texture-detail": "Macro detail showing material quality",
		},
		"variation_modifiers": []any{
			"Minimal and gallery-like with high whitespace.",
			"Warm and intimate with tactile textures.",
			"Editorial and bold with controlled contrast.",
		},
		"hashtags": map[string]any{
			"brand_always":      []any{"#craftedwithintent"},
			"craft":             []any{"#handcrafted", "#designprocess"},
			"product":           []any{"#productdesign", "#newdrop"},
			"product_other":     []any{"#collection", "#limitedrun"},
			"discovery":         []any{"#brandstory", "#smallbusiness"},
			"occasion_festive":  []any{"#celebrationstyle"},
			"occasion_wedding":  []any{"#eventstyle"},
			"occasion_everyday": []any{"#everydaystyle"},
			"niche":             []any{"#materialculture"},
			"never_use":         []any{"#fyp", "#viral", "#trending"},
		},
		"caption_rules": map[string]any{
			"optimal_length": "150-220 words",
			"max_length":     280,
			"emoji_limit":    2,
			"must_mention":   []any{},
			"banned_words": []any{
				"must-have",
				"best ever",
				"limited stock hurry",
			},
		},
		"occasions": map[string]any{
			"festive":  []any{"festivals", "seasonal gifting"},
			"wedding":  []any{"wedding guest", "celebration dinner"},
			"everyday": []any{"workday", "weekend outing"},
			"campaign": []any{"new launch", "maker spotlight"},
			"content_mix": map[string]any{
				"hero":      50,
				"lifestyle": 25,
				"detail":    25,
			},
		},
		"cta_rotation": []any{
			"Save this look for later.",
			"Tell us which detail stood out to you.",
			"DM us for availability.",
		},
		"sample_artisans":  []any{"Aarav", "Meera", "Naina"},
		"audience_profile": "People who value quality and design-led storytelling.",
		"brand_voice":      "Warm, clear, and confident.",
		"llm_guardrails":   "Avoid hype, avoid aggressive sales language, avoid competitor mentions.",
	}
}

var categoryOverrides = map[string]map[string]any{
	"fashion": {
		"product_vocabulary": map[string]any{
			"singular":      "garment",
			"plural":        "garments",
			"featured_part": "silhouette",
			"parts": map[string]any{
				"neckline": "Neckline",
				"hem":      "Hem",
				"sleeve":   "Sleeve",
			},
		},
		"props_library": map[string]any{
			"warm":      []any{"brass bangle", "silk drape", "fresh flowers"},
			"minimal":   []any{"matte hanger", "plain backdrop", "single accessory"},
			"luxe":      []any{"mirror tray", "pearl string", "velvet base"},
			"earthy":    []any{"jute mat", "wood stool", "terracotta vase"},
			"never_use": []any{"plastic mannequins", "discount stickers"},
		},
		"display_styles": map[string]any{
			"draped-flowing":     "Fabric movement with soft folds",
			"flat-lay-folded":    "Folded product with hero detail visible",
			"on-model-editorial": "Worn look with premium framing",
			"detail-border":      "Close crop of edge detail",
		},
		"hashtags": map[string]any{
			"craft":     []any{"#artisanmade", "#slowfashion", "#handfinished"},
			"product":   []any{"#fashiondesign", "#statementstyle", "#wardrobestory"},
			"discovery": []any{"#fashionbrand", "#consciousfashion", "#madeinindia"},
		},
		"occasions": map[string]any{
			"festive":  []any{"festive dressing", "cocktail evening"},
			"wedding":  []any{"wedding guest", "engagement celebration"},
			"everyday": []any{"brunch look", "work event"},
		},
	},
	"furniture": {
		"product_vocabulary": map[string]any{
			"singular":      "furniture piece",
			"plural":        "furniture pieces",
			"featured_part": "finish",
			"parts": map[string]any{
				"arm":        "Arm",
				"base":       "Base",
				"upholstery": "Upholstery",
			},
		},
		"props_library": map[string]any{
			"warm":      []any{"ceramic vase", "linen throw", "wood side table"},
			"minimal":   []any{"neutral wall", "single sculpture", "plain rug"},
			"luxe":      []any{"marble top", "metal lamp", "art book"},
			"earthy":    []any{"clay pot", "woven basket", "raw wood"},
			"never_use": []any{"cluttered decor", "fake plants"},
		},
		"display_styles": map[string]any{
			"room-hero":          "Product as focal point in a styled room",
			"detail-material":    "Close-up on grain, stitch, or joinery",
			"angled-perspective": "Three-quarter view showing depth",
			"paired-styling":     "Piece shown with complementary decor",
		},
		"hashtags": map[string]any{
			"craft":     []any{"#interiordesign", "#craftedfurniture", "#materiality"},
			"product":   []any{"#furnituredesign", "#homedecor", "#spaces"},
			"discovery": []any{"#interiors", "#designstudio", "#homeinspo"},
		},
		"occasions": map[string]any{
			"festive":  []any{"holiday hosting", "seasonal refresh"},
			"wedding":  []any{"new home setup", "registry picks"},
			"everyday": []any{"daily living", "work from home"},
		},
	},
	"food": {
		"product_vocabulary": map[string]any{
			"singular":      "dish",
			"plural":        "dishes",
			"featured_part": "garnish",
			"parts": map[string]any{
				"texture": "Texture",
				"topping": "Topping",
				"plating": "Plating",
			},
		},
		"props_library": map[string]any{
			"warm":      []any{"wood board", "linen napkin", "cutlery"},
			"minimal":   []any{"plain plate", "clean table", "single herb"},
			"luxe":      []any{"stoneware", "wine glass", "metal cutlery"},
			"earthy":    []any{"terracotta bowl", "kraft paper", "fresh produce"},
			"never_use": []any{"neon backgrounds", "oversized logos"},
		},
		"display_styles": map[string]any{
			"plated-hero":      "Close hero shot of plated item",
			"overhead-spread":  "Top-down composition with supporting items",
			"pour-action":      "Action shot showing movement",
			"ingredient-story": "Dish with key ingredient context",
		},
		"hashtags": map[string]any{
			"craft":     []any{"#foodcraft", "#chefmade", "#freshingredients"},
			"product":   []any{"#foodphotography", "#restaurantlife", "#menufeature"},
			"discovery": []any{"#foodie", "#eatlocal", "#culinary"},
		},
		"occasions": map[string]any{
			"festive":  []any{"festival menu", "holiday specials"},
			"wedding":  []any{"event catering", "celebration table"},
			"everyday": []any{"weekday meal", "quick bite"},
		},
	},
	"beauty": {
		"product_vocabulary": map[string]any{
			"singular":      "beauty product",
			"plural":        "beauty products",
			"featured_part": "formula texture",
			"parts": map[string]any{
				"finish":     "Finish",
				"applicator": "Applicator",
				"packaging":  "Packaging",
			},
		},
		"props_library": map[string]any{
			"warm":      []any{"stone tray", "soft towel", "fresh petals"},
			"minimal":   []any{"clear acrylic", "white tile", "single dropper"},
			"luxe":      []any{"glass vessel", "gold hardware", "mirror surface"},
			"earthy":    []any{"clay bowl", "botanical stems", "linen cloth"},
			"never_use": []any{"busy glitter backgrounds", "cheap plastic props"},
		},
		"display_styles": map[string]any{
			"texture-swatch":   "Close-up texture spread or swatch",
			"product-stack":    "Layered bottles/jars in clean arrangement",
			"shelfie-curated":  "Styled skincare shelf composition",
			"ritual-lifestyle": "In-use routine context",
		},
		"hashtags": map[string]any{
			"craft":     []any{"#cleanbeauty", "#skincareroutine", "#beautyritual"},
			"product":   []any{"#beautybrand", "#skincare", "#cosmetics"},
			"discovery": []any{"#selfcare", "#glowskin", "#wellness"},
		},
		"occasions": map[string]any{
			"festive":  []any{"holiday glam", "party prep"},
			"wedding":  []any{"bridal prep", "event makeup"},
			"everyday": []any{"daily routine", "morning ritual"},
		},
	},
	"general": {},
}
