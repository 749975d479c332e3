// Package database tests cover PostgreSQL connection and migration execution.
// These are integration tests that require a running PostgreSQL instance.
package database

import (
	"os"
	"testing"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func TestConnectAndMigrate(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Errorf("ping failed after Connect: %v", err)
	}

	// Migrations must be re-runnable: goose skips applied versions.
	if err := Migrate(db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	// The core tables exist after migration.
	for _, table := range []string{"brands", "brand_category_templates", "brand_overrides", "brand_credentials"} {
		if _, err := db.Exec("SELECT COUNT(*) FROM " + table); err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}
