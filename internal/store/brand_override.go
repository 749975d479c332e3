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

	"github.com/google/uuid"

	"brandpress/internal/brandconfig"
)

// BrandOverrideStore manages per-brand configuration override fragments.
// Each brand holds at most one active fragment; edits deep-merge into it.
type BrandOverrideStore struct {
	db *sql.DB
}

// NewBrandOverrideStore returns a new BrandOverrideStore.
func NewBrandOverrideStore(db *sql.DB) *BrandOverrideStore {
	return &BrandOverrideStore{db: db}
}

// ActiveOverride returns the brand's active override fragment, or nil if
// the brand has none. Implements the resolver's override source.
func (s *BrandOverrideStore) ActiveOverride(ctx context.Context, brandID uuid.UUID) (map[string]any, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT config FROM brand_overrides
		WHERE brand_id = $1 AND is_active = TRUE
	`, brandID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active override for brand %s: %w", brandID, err)
	}

	var fragment map[string]any
	if err := json.Unmarshal(raw, &fragment); err != nil {
		return nil, fmt.Errorf("decode override for brand %s: %w", brandID, err)
	}
	return fragment, nil
}

// Replace stores fragment as the brand's override, discarding any
// previous fragment.
func (s *BrandOverrideStore) Replace(ctx context.Context, brandID uuid.UUID, fragment map[string]any) error {
	raw, err := json.Marshal(fragment)
	if err != nil {
		return fmt.Errorf("encode override for brand %s: %w", brandID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO brand_overrides (brand_id, config, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (brand_id) DO UPDATE
		SET config = EXCLUDED.config, is_active = TRUE, updated_at = NOW()
	`, brandID, raw)
	if err != nil {
		return fmt.Errorf("replace override for brand %s: %w", brandID, err)
	}
	return nil
}

// MergeSection deep-merges an edit fragment into the brand's stored
// override and persists the result. Maps merge recursively; lists and
// scalars in the edit replace the stored value wholesale.
func (s *BrandOverrideStore) MergeSection(ctx context.Context, brandID uuid.UUID, edit map[string]any) error {
	current, err := s.ActiveOverride(ctx, brandID)
	if err != nil {
		return err
	}
	if current == nil {
		current = map[string]any{}
	}
	return s.Replace(ctx, brandID, brandconfig.DeepMerge(current, edit))
}

// Deactivate disables the brand's override so resolution falls back to
// the category template. The fragment is kept for reactivation.
func (s *BrandOverrideStore) Deactivate(ctx context.Context, brandID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE brand_overrides SET is_active = FALSE, updated_at = NOW()
		WHERE brand_id = $1
	`, brandID)
	if err != nil {
		return fmt.Errorf("deactivate override for brand %s: %w", brandID, err)
	}
	return nil
}
