// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// the config cache is left nil so Valkey is not required.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"brandpress/internal/ai"
	"brandpress/internal/brandconfig"
	"brandpress/internal/database"
	"brandpress/internal/models"
	"brandpress/internal/store"
	"brandpress/internal/vault"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAPI wires an API handler group over the test database with a nil
// config cache and the given registry (may be nil).
func testAPI(t *testing.T, db *sql.DB, registry *ai.Registry) (*API, *store.BrandStore, *vault.Vault) {
	t.Helper()

	brands := store.NewBrandStore(db)
	templates := store.NewCategoryTemplateStore(db)
	overrides := store.NewBrandOverrideStore(db)
	credStore := store.NewBrandCredentialStore(db)
	v := vault.New(credStore, "handler-test-secret")
	resolver := brandconfig.NewResolver(templates, overrides)

	return NewAPI(brands, templates, overrides, resolver, v, registry, nil), brands, v
}

// testRouter mounts the API routes the way the real router does.
func testRouter(api *API) chi.Router {
	r := chi.NewRouter()
	r.Route("/api/brands/{slug}", func(r chi.Router) {
		r.Get("/config", api.BrandConfig)
		r.Put("/config/overrides", api.MergeOverride)
		r.Get("/credentials/status", api.CredentialsStatus)
		r.Post("/prompts/caption", api.GenerateCaption)
	})
	return r
}

func createTestBrand(t *testing.T, db *sql.DB, brands *store.BrandStore, slug, category string) *models.Brand {
	t.Helper()
	t.Cleanup(func() { db.Exec("DELETE FROM brands WHERE slug = $1", slug) })
	brand, err := brands.Create(context.Background(), &models.Brand{
		Slug: slug, Name: "Handler Test Brand", Category: category,
	})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	return brand
}

func TestBrandConfigEndpoint(t *testing.T) {
	db := testDB(t)
	api, brands, _ := testAPI(t, db, nil)
	r := testRouter(api)

	createTestBrand(t, db, brands, "test-handler-config", "fashion")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands/test-handler-config/config", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var cfg map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := cfg["caption_rules"]; !ok {
		t.Error("resolved config should carry caption_rules")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands/no-such-brand/config", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug: status = %d, want 404", rec.Code)
	}
}

func TestMergeOverrideShowsUpInConfig(t *testing.T) {
	db := testDB(t)
	api, brands, _ := testAPI(t, db, nil)
	r := testRouter(api)

	createTestBrand(t, db, brands, "test-handler-override", "general")

	body := strings.NewReader(`{"brand":{"name":"Overridden Name"}}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/brands/test-handler-override/config/overrides", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("merge status = %d, body %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands/test-handler-override/config", nil))
	if !strings.Contains(rec.Body.String(), "Overridden Name") {
		t.Error("merged override should appear in the resolved config")
	}
}

func TestCredentialsStatusNeverLeaksSecrets(t *testing.T) {
	db := testDB(t)
	api, brands, v := testAPI(t, db, nil)
	r := testRouter(api)

	brand := createTestBrand(t, db, brands, "test-handler-creds", "food")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands/test-handler-creds/credentials/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"configured":false`) {
		t.Errorf("unconfigured brand should report configured=false, got %s", rec.Body)
	}

	err := v.Upsert(context.Background(), brand.ID, vault.Plaintext{
		MetaAppID:                  "app-1",
		MetaAppSecret:              "super-secret-value",
		PageAccessToken:            "super-secret-token",
		InstagramBusinessAccountID: "ig-1",
		GraphAPIVersion:            "v25.0",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/brands/test-handler-creds/credentials/status", nil))
	got := rec.Body.String()
	if !strings.Contains(got, `"complete":true`) {
		t.Errorf("complete bundle should report complete=true, got %s", got)
	}
	for _, secret := range []string{"super-secret-value", "super-secret-token"} {
		if strings.Contains(got, secret) {
			t.Fatalf("status response leaked secret material: %s", got)
		}
	}
}

func TestGenerateCaptionWithAndWithoutProvider(t *testing.T) {
	db := testDB(t)

	// No provider: the rendered prompt comes back alone.
	api, brands, _ := testAPI(t, db, ai.NewRegistry("openai", nil))
	r := testRouter(api)
	createTestBrand(t, db, brands, "test-handler-caption", "beauty")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/brands/test-handler-caption/prompts/caption", strings.NewReader(`{}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Prompt  string `json:"prompt"`
		Caption string `json:"caption"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Prompt == "" || strings.Contains(resp.Prompt, "{brand_name}") {
		t.Errorf("prompt should be rendered with placeholders substituted")
	}
	if resp.Caption != "" {
		t.Errorf("no provider registered, caption should be empty, got %q", resp.Caption)
	}

	// Scripted provider: the caption comes from the model.
	registry := ai.NewRegistry("scripted", nil)
	registry.Register("scripted", &mockAIProvider{name: "scripted", response: " A generated caption. "})
	api2, _, _ := testAPI(t, db, registry)
	r2 := testRouter(api2)

	rec = httptest.NewRecorder()
	r2.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/brands/test-handler-caption/prompts/caption", strings.NewReader(`{"context":"diwali launch"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Caption != "A generated caption." {
		t.Errorf("caption = %q", resp.Caption)
	}
}
