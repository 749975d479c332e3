package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"brandpress/internal/brandconfig"
)

// Seed populates the database with the built-in category starter
// templates when the template table is empty. Existing rows are left
// alone so operator-published template versions survive restarts.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM brand_category_templates").Scan(&count); err != nil {
		return fmt.Errorf("seed check templates: %w", err)
	}

	if count > 0 {
		slog.Info("category templates already seeded, skipping")
		return nil
	}

	for _, category := range brandconfig.Categories {
		raw, err := json.Marshal(brandconfig.BuildCategoryTemplate(category))
		if err != nil {
			return fmt.Errorf("seed encode %s template: %w", category, err)
		}
		_, err = db.Exec(`
			INSERT INTO brand_category_templates (category, template, is_active)
			VALUES ($1, $2, TRUE)
		`, category, raw)
		if err != nil {
			return fmt.Errorf("seed insert %s template: %w", category, err)
		}
	}

	slog.Info("database seeded with category templates",
		"categories", len(brandconfig.Categories),
	)
	return nil
}
