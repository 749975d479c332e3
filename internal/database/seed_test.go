package database

import (
	"testing"

	"brandpress/internal/brandconfig"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only inserts when the template table is empty. Call twice to
	// verify idempotency. We don't clear the database first because other
	// test packages may be running concurrently against the same database.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Every built-in category has at least one active template row.
	for _, category := range brandconfig.Categories {
		var count int
		err := db.QueryRow(`
			SELECT COUNT(*) FROM brand_category_templates
			WHERE category = $1 AND is_active = TRUE
		`, category).Scan(&count)
		if err != nil {
			t.Fatalf("count %s templates: %v", category, err)
		}
		if count < 1 {
			t.Errorf("category %s has no active template after seed", category)
		}
	}
}
