// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"brandpress/internal/models"
)

// CategoryTemplateStore manages category template fragments. Templates
// are append-only: publishing a new version inserts a row rather than
// mutating the old one, so history is preserved for audit.
type CategoryTemplateStore struct {
	db *sql.DB
}

// NewCategoryTemplateStore returns a new CategoryTemplateStore.
func NewCategoryTemplateStore(db *sql.DB) *CategoryTemplateStore {
	return &CategoryTemplateStore{db: db}
}

// ActiveTemplate returns the most recently created active template
// fragment for a category, or nil if none exists. Implements the
// resolver's template source.
func (s *CategoryTemplateStore) ActiveTemplate(ctx context.Context, category string) (map[string]any, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT template FROM brand_category_templates
		WHERE category = $1 AND is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`, category).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active template %s: %w", category, err)
	}

	var tpl map[string]any
	if err := json.Unmarshal(raw, &tpl); err != nil {
		return nil, fmt.Errorf("decode template %s: %w", category, err)
	}
	return tpl, nil
}

// Publish inserts a new active template version for a category and
// deactivates older versions.
func (s *CategoryTemplateStore) Publish(ctx context.Context, category string, template map[string]any) (*models.CategoryTemplate, error) {
	raw, err := json.Marshal(template)
	if err != nil {
		return nil, fmt.Errorf("encode template %s: %w", category, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE brand_category_templates SET is_active = FALSE
		WHERE category = $1 AND is_active = TRUE
	`, category); err != nil {
		return nil, fmt.Errorf("deactivate templates %s: %w", category, err)
	}

	var t models.CategoryTemplate
	t.Template = template
	err = tx.QueryRowContext(ctx, `
		INSERT INTO brand_category_templates (category, template, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, category, is_active, created_at
	`, category, raw).Scan(&t.ID, &t.Category, &t.IsActive, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("publish template %s: %w", category, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template %s: %w", category, err)
	}
	return &t, nil
}

// History returns all template versions for a category, newest first.
func (s *CategoryTemplateStore) History(ctx context.Context, category string) ([]models.CategoryTemplate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, template, is_active, created_at
		FROM brand_category_templates
		WHERE category = $1
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("template history %s: %w", category, err)
	}
	defer rows.Close()

	var items []models.CategoryTemplate
	for rows.Next() {
		var t models.CategoryTemplate
		var raw []byte
		if err := rows.Scan(&t.ID, &t.Category, &raw, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		if err := json.Unmarshal(raw, &t.Template); err != nil {
			return nil, fmt.Errorf("decode template %s: %w", t.ID, err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
