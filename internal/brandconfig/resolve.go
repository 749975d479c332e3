// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package brandconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ValidationError reports a merged configuration value of the wrong shape.
// Path names the offending field so an operator can locate the bad edit
// without re-running with verbose logging.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("brand config validation failed at %q: %s", e.Path, e.Reason)
}

// TemplateSource provides the most recent active template fragment for a
// category. A nil map with a nil error means no active template exists.
type TemplateSource interface {
	ActiveTemplate(ctx context.Context, category string) (map[string]any, error)
}

// OverrideSource provides a brand's stored override fragment. A nil map
// with a nil error means the brand has no overrides yet.
type OverrideSource interface {
	ActiveOverride(ctx context.Context, brandID uuid.UUID) (map[string]any, error)
}

// Resolver merges the configuration layers for a brand:
// schema defaults, then the active "general" template, then the active
// template for the brand's category, then the brand's own override
// fragment (after legacy-key migration), then schema validation.
type Resolver struct {
	templates TemplateSource
	overrides OverrideSource
}

// NewResolver returns a Resolver reading templates and overrides from the
// given sources. Either source may be nil; a nil source skips that layer
// and the built-in category template fills the gap.
func NewResolver(templates TemplateSource, overrides OverrideSource) *Resolver {
	return &Resolver{templates: templates, overrides: overrides}
}

// Resolve builds the configuration for a brand. It never fails: missing
// rows are skipped, storage errors are logged and skipped, and a merged
// tree that does not validate falls back to the built-in category template
// so the brand is never left unconfigured. The fallback discards brand
// edits, so the validation failure is logged at error level with the
// offending field path.
func (r *Resolver) Resolve(ctx context.Context, brandID uuid.UUID, category string) *Config {
	normalized := NormalizeCategory(category)
	merged := r.mergeLayers(ctx, brandID, normalized)

	cfg, err := Decode(merged)
	if err != nil {
		slog.Error("brand config failed validation, falling back to category template",
			"brand_id", brandID,
			"category", normalized,
			"error", err,
		)
		cfg, err = Decode(BuildCategoryTemplate(normalized))
		if err != nil {
			// Built-in templates are schema-valid by construction.
			panic(fmt.Sprintf("built-in %s template does not validate: %v", normalized, err))
		}
	}
	return cfg
}

func (r *Resolver) mergeLayers(ctx context.Context, brandID uuid.UUID, category string) map[string]any {
	merged := Defaults()

	if r.templates != nil {
		if general := r.fetchTemplate(ctx, "general"); general != nil {
			merged = DeepMerge(merged, general)
		}
		if category != "general" {
			if tpl := r.fetchTemplate(ctx, category); tpl != nil {
				merged = DeepMerge(merged, tpl)
			}
		}
	} else {
		merged = DeepMerge(merged, BuildCategoryTemplate(category))
	}

	if r.overrides != nil && brandID != uuid.Nil {
		fragment, err := r.overrides.ActiveOverride(ctx, brandID)
		if err != nil {
			slog.Warn("brand override lookup failed, resolving without overrides",
				"brand_id", brandID, "error", err)
		} else if fragment != nil {
			merged = DeepMerge(merged, MigrateLegacyKeys(fragment))
		}
	}

	return merged
}

func (r *Resolver) fetchTemplate(ctx context.Context, category string) map[string]any {
	tpl, err := r.templates.ActiveTemplate(ctx, category)
	if err != nil {
		slog.Warn("category template lookup failed, skipping layer",
			"category", category, "error", err)
		return nil
	}
	return tpl
}

// Decode validates a merged tree against the schema and returns the typed
// configuration. Unknown keys are ignored for forward compatibility; a
// value of the wrong shape yields a *ValidationError naming the field.
func Decode(merged map[string]any) (*Config, error) {
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, &ValidationError{Path: "", Reason: err.Error()}
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = "(root)"
			}
			return nil, &ValidationError{
				Path:   path,
				Reason: fmt.Sprintf("cannot use %s value here", typeErr.Value),
			}
		}
		return nil, &ValidationError{Path: "", Reason: err.Error()}
	}
	return &cfg, nil
}
