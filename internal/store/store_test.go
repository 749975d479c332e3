// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"brandpress/internal/database"
	"brandpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
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

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanBrands removes test brands by slug. Credentials and overrides
// cascade. Call in t.Cleanup().
func cleanBrands(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM brands WHERE slug = $1", slug)
	}
}

// cleanTemplates removes test template rows by category. Call in t.Cleanup().
func cleanTemplates(t *testing.T, db *sql.DB, categories ...string) {
	t.Helper()
	for _, category := range categories {
		db.Exec("DELETE FROM brand_category_templates WHERE category = $1", category)
	}
}

func TestBrandStoreCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	brands := NewBrandStore(db)
	t.Cleanup(func() { cleanBrands(t, db, "test-crud-brand") })

	created, err := brands.Create(ctx, testBrand("test-crud-brand", "Test Brand", "fashion"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := brands.FindBySlug(ctx, "test-crud-brand")
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("FindBySlug returned %+v, want id %s", found, created.ID)
	}

	found.Category = "food"
	if err := brands.Update(ctx, found); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again, err := brands.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if again.Category != "food" {
		t.Errorf("category = %q after update", again.Category)
	}

	missing, err := brands.FindBySlug(ctx, "no-such-brand")
	if err != nil {
		t.Fatalf("FindBySlug missing: %v", err)
	}
	if missing != nil {
		t.Error("missing slug should return nil, nil")
	}
}

func TestCategoryTemplateActiveIsNewest(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	templates := NewCategoryTemplateStore(db)
	t.Cleanup(func() { cleanTemplates(t, db, "test-sportswear") })

	if _, err := templates.Publish(ctx, "test-sportswear", map[string]any{"version": "old"}); err != nil {
		t.Fatalf("Publish old: %v", err)
	}
	if _, err := templates.Publish(ctx, "test-sportswear", map[string]any{"version": "new"}); err != nil {
		t.Fatalf("Publish new: %v", err)
	}

	active, err := templates.ActiveTemplate(ctx, "test-sportswear")
	if err != nil {
		t.Fatalf("ActiveTemplate: %v", err)
	}
	if active["version"] != "new" {
		t.Errorf("active template version = %v, want the newest", active["version"])
	}

	history, err := templates.History(ctx, "test-sportswear")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("history has %d rows, want 2 (old versions retained)", len(history))
	}

	none, err := templates.ActiveTemplate(ctx, "test-nonexistent")
	if err != nil {
		t.Fatalf("ActiveTemplate missing: %v", err)
	}
	if none != nil {
		t.Error("missing category should return nil, nil")
	}
}

func TestBrandOverrideMergeSection(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	brands := NewBrandStore(db)
	overrides := NewBrandOverrideStore(db)
	t.Cleanup(func() { cleanBrands(t, db, "test-override-brand") })

	brand, err := brands.Create(ctx, testBrand("test-override-brand", "Override Brand", "general"))
	if err != nil {
		t.Fatalf("Create brand: %v", err)
	}

	err = overrides.Replace(ctx, brand.ID, map[string]any{
		"caption_rules": map[string]any{"max_length": 300, "voice": "warm"},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	err = overrides.MergeSection(ctx, brand.ID, map[string]any{
		"caption_rules": map[string]any{"max_length": 200},
	})
	if err != nil {
		t.Fatalf("MergeSection: %v", err)
	}

	fragment, err := overrides.ActiveOverride(ctx, brand.ID)
	if err != nil {
		t.Fatalf("ActiveOverride: %v", err)
	}
	rules, ok := fragment["caption_rules"].(map[string]any)
	if !ok {
		t.Fatalf("caption_rules = %T", fragment["caption_rules"])
	}
	// JSONB round-trips numbers as float64.
	if rules["max_length"] != float64(200) {
		t.Errorf("max_length = %v, edit should replace the scalar", rules["max_length"])
	}
	if rules["voice"] != "warm" {
		t.Errorf("voice = %v, sibling keys must survive the merge", rules["voice"])
	}
}

func TestBrandCredentialStoreTokenUpdate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	brands := NewBrandStore(db)
	creds := NewBrandCredentialStore(db)
	t.Cleanup(func() { cleanBrands(t, db, "test-cred-brand") })

	brand, err := brands.Create(ctx, testBrand("test-cred-brand", "Cred Brand", "beauty"))
	if err != nil {
		t.Fatalf("Create brand: %v", err)
	}

	row := testCredentialRow(brand.ID)
	if err := creds.Upsert(ctx, &row); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := creds.UpdateToken(ctx, brand.ID, "ciphertext-v2", nil); err != nil {
		t.Fatalf("UpdateToken: %v", err)
	}

	got, err := creds.Get(ctx, brand.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.EncryptedPageAccessToken != "ciphertext-v2" {
		t.Errorf("token = %q after update", got.EncryptedPageAccessToken)
	}
	if got.EncryptedAppSecret != row.EncryptedAppSecret {
		t.Error("app secret must be untouched by a token update")
	}

	if err := creds.UpdateToken(ctx, newUUID(t), "x", nil); err == nil {
		t.Error("UpdateToken for an unknown brand should fail")
	}
}

// testBrand builds a brand row for insertion.
func testBrand(slug, name, category string) *models.Brand {
	return &models.Brand{Slug: slug, Name: name, Category: category}
}

// testCredentialRow builds a complete credential row with dummy ciphertext.
func testCredentialRow(brandID uuid.UUID) models.BrandCredential {
	return models.BrandCredential{
		BrandID:                    brandID,
		MetaAppID:                  "app-1",
		EncryptedAppSecret:         "ciphertext-secret",
		EncryptedPageAccessToken:   "ciphertext-token",
		InstagramBusinessAccountID: "ig-1",
		GraphAPIVersion:            "v25.0",
	}
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}
