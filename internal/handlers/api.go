// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface: resolved config
// reads, override edits, template publishing, credential status, and
// caption prompt generation. Authentication is owned by the fronting
// admin layer; nothing here assumes a session.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brandpress/internal/ai"
	"brandpress/internal/brandconfig"
	"brandpress/internal/cache"
	"brandpress/internal/models"
	"brandpress/internal/prompt"
	"brandpress/internal/store"
	"brandpress/internal/vault"
)

// API groups the brand configuration and content-pipeline handlers.
// configCache may be nil when Valkey is not configured; every read path
// then resolves from storage directly.
type API struct {
	brands      *store.BrandStore
	templates   *store.CategoryTemplateStore
	overrides   *store.BrandOverrideStore
	resolver    *brandconfig.Resolver
	vault       *vault.Vault
	aiRegistry  *ai.Registry
	configCache *cache.ConfigCache
}

// NewAPI creates the API handler group.
func NewAPI(
	brands *store.BrandStore,
	templates *store.CategoryTemplateStore,
	overrides *store.BrandOverrideStore,
	resolver *brandconfig.Resolver,
	v *vault.Vault,
	aiRegistry *ai.Registry,
	configCache *cache.ConfigCache,
) *API {
	return &API{
		brands:      brands,
		templates:   templates,
		overrides:   overrides,
		resolver:    resolver,
		vault:       v,
		aiRegistry:  aiRegistry,
		configCache: configCache,
	}
}

// brandFromSlug loads the brand for the {slug} route param, writing a 404
// on absence. Returns nil when the response has already been written.
func (a *API) brandFromSlug(w http.ResponseWriter, r *http.Request) *models.Brand {
	slug := chi.URLParam(r, "slug")
	brand, err := a.brands.FindBySlug(r.Context(), slug)
	if err != nil {
		slog.Error("brand lookup failed", "slug", slug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "brand lookup failed")
		return nil
	}
	if brand == nil {
		writeJSONError(w, http.StatusNotFound, "no such brand")
		return nil
	}
	return brand
}

// BrandConfig returns the brand's fully resolved configuration as
// canonical JSON. Cached per brand; resolution itself never fails.
func (a *API) BrandConfig(w http.ResponseWriter, r *http.Request) {
	brand := a.brandFromSlug(w, r)
	if brand == nil {
		return
	}
	ctx := r.Context()

	if a.configCache != nil {
		if cached, ok := a.configCache.Get(ctx, brand.ID); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}
	}

	cfg := a.resolver.Resolve(ctx, brand.ID, brand.Category)
	raw, err := cfg.CanonicalJSON()
	if err != nil {
		slog.Error("config encode failed", "brand_id", brand.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "config encode failed")
		return
	}

	if a.configCache != nil {
		a.configCache.Set(ctx, brand.ID, raw)
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// MergeOverride deep-merges a JSON edit fragment into the brand's stored
// override and invalidates the cached config. The body is the fragment
// itself, shaped like a partial configuration tree.
func (a *API) MergeOverride(w http.ResponseWriter, r *http.Request) {
	brand := a.brandFromSlug(w, r)
	if brand == nil {
		return
	}

	var edit map[string]any
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		writeJSONError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	if err := a.overrides.MergeSection(r.Context(), brand.ID, edit); err != nil {
		slog.Error("override merge failed", "brand_id", brand.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "override merge failed")
		return
	}

	if a.configCache != nil {
		a.configCache.Invalidate(r.Context(), brand.ID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "merged"})
}

// PublishTemplate stores a new active template version for a category and
// clears every cached config, since any brand may inherit from it.
func (a *API) PublishTemplate(w http.ResponseWriter, r *http.Request) {
	category := brandconfig.NormalizeCategory(chi.URLParam(r, "category"))

	var fragment map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fragment); err != nil {
		writeJSONError(w, http.StatusBadRequest, "body must be a JSON object")
		return
	}

	tpl, err := a.templates.Publish(r.Context(), category, fragment)
	if err != nil {
		slog.Error("template publish failed", "category", category, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "template publish failed")
		return
	}

	if a.configCache != nil {
		a.configCache.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, tpl)
}

// credentialStatus is the public view of a brand's credential state:
// presence booleans and non-secret identifiers only.
type credentialStatus struct {
	Configured    bool     `json:"configured"`
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields,omitempty"`
	MetaAppID     string   `json:"meta_app_id,omitempty"`
	GraphVersion  string   `json:"graph_api_version,omitempty"`
	TokenExpires  string   `json:"token_expires_at,omitempty"`
}

// CredentialsStatus reports whether a brand's publish credentials are
// configured and complete. Secret values never appear in the response.
func (a *API) CredentialsStatus(w http.ResponseWriter, r *http.Request) {
	brand := a.brandFromSlug(w, r)
	if brand == nil {
		return
	}

	bundle, err := a.vault.Resolve(r.Context(), brand.ID)
	if err != nil {
		slog.Error("credential resolve failed", "brand_id", brand.ID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "credential lookup failed")
		return
	}
	if bundle == nil {
		writeJSON(w, http.StatusOK, credentialStatus{})
		return
	}

	status := credentialStatus{
		Configured:    true,
		MissingFields: bundle.MissingFields(),
		MetaAppID:     bundle.MetaAppID,
		GraphVersion:  bundle.GraphAPIVersion,
	}
	status.Complete = len(status.MissingFields) == 0
	if bundle.TokenExpiresAt != nil {
		status.TokenExpires = bundle.TokenExpiresAt.Format("2006-01-02T15:04:05Z07:00")
	}
	writeJSON(w, http.StatusOK, status)
}

// captionRequest is the caption generation input. Context is free-form
// operator guidance appended to the rendered prompt.
type captionRequest struct {
	Context string `json:"context"`
}

type captionResponse struct {
	Prompt  string `json:"prompt"`
	Caption string `json:"caption,omitempty"`
}

// GenerateCaption renders the brand's caption prompt and, when an AI
// provider is registered, runs it through the active provider. Without a
// provider the rendered prompt is returned alone so callers can use their
// own model.
func (a *API) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	brand := a.brandFromSlug(w, r)
	if brand == nil {
		return
	}
	ctx := r.Context()

	var req captionRequest
	if r.Body != nil {
		// An empty or absent body is fine; context is optional.
		json.NewDecoder(r.Body).Decode(&req)
	}

	cfg := a.resolver.Resolve(ctx, brand.ID, brand.Category)
	rendered := prompt.RenderCaption(cfg)

	userPrompt := "Write one Instagram caption for the next post."
	if extra := strings.TrimSpace(req.Context); extra != "" {
		userPrompt += "\n\nAdditional context: " + extra
	}

	resp := captionResponse{Prompt: rendered}
	if a.aiRegistry != nil {
		if _, err := a.aiRegistry.Active(); err == nil {
			caption, err := a.aiRegistry.Generate(ctx, rendered, userPrompt)
			if err != nil {
				slog.Error("caption generation failed",
					"brand_id", brand.ID,
					"provider", a.aiRegistry.ActiveName(),
					"error", err,
				)
				writeJSONError(w, http.StatusBadGateway, "caption generation failed")
				return
			}
			resp.Caption = strings.TrimSpace(caption)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
