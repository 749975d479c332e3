// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the PostgreSQL persistence layer: brands,
// category templates, brand overrides, and encrypted credentials.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandpress/internal/models"
)

// BrandStore manages brands in the database.
type BrandStore struct {
	db *sql.DB
}

// NewBrandStore returns a new BrandStore.
func NewBrandStore(db *sql.DB) *BrandStore {
	return &BrandStore{db: db}
}

const brandColumns = `id, slug, name, description, category, created_at, updated_at`

func scanBrand(scanner interface{ Scan(...any) error }) (*models.Brand, error) {
	var b models.Brand
	err := scanner.Scan(
		&b.ID, &b.Slug, &b.Name, &b.Description,
		&b.Category, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all brands ordered by name.
func (s *BrandStore) List(ctx context.Context) ([]models.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+brandColumns+` FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var items []models.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a brand by its slug. Returns nil if not found.
func (s *BrandStore) FindBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE slug = $1`, slug)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by slug: %w", err)
	}
	return b, nil
}

// FindByID retrieves a brand by ID. Returns nil if not found.
func (s *BrandStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find brand by id: %w", err)
	}
	return b, nil
}

// Create inserts a new brand and returns it.
func (s *BrandStore) Create(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO brands (slug, name, description, category)
		VALUES ($1, $2, $3, $4)
		RETURNING `+brandColumns,
		b.Slug, b.Name, b.Description, b.Category,
	)
	result, err := scanBrand(row)
	if err != nil {
		return nil, fmt.Errorf("create brand: %w", err)
	}
	return result, nil
}

// Update modifies an existing brand.
func (s *BrandStore) Update(ctx context.Context, b *models.Brand) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE brands SET
			slug = $1, name = $2, description = $3, category = $4, updated_at = NOW()
		WHERE id = $5
	`, b.Slug, b.Name, b.Description, b.Category, b.ID)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

// Delete removes a brand by ID. Overrides and credentials cascade.
func (s *BrandStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}
