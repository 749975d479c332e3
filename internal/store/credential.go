// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brandpress/internal/models"
)

// BrandCredentialStore persists encrypted Meta credentials, one row per
// brand. It is the vault's storage backend and only ever sees ciphertext
// in the secret columns.
type BrandCredentialStore struct {
	db *sql.DB
}

// NewBrandCredentialStore returns a new BrandCredentialStore.
func NewBrandCredentialStore(db *sql.DB) *BrandCredentialStore {
	return &BrandCredentialStore{db: db}
}

const credentialColumns = `brand_id, meta_app_id, encrypted_app_secret,
	encrypted_page_access_token, instagram_business_account_id,
	graph_api_version, token_expires_at, updated_at`

// Get retrieves a brand's credential row. Returns nil if the brand has
// no credentials, which is a normal state, not an error.
func (s *BrandCredentialStore) Get(ctx context.Context, brandID uuid.UUID) (*models.BrandCredential, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM brand_credentials WHERE brand_id = $1`, brandID)

	var c models.BrandCredential
	err := row.Scan(
		&c.BrandID, &c.MetaAppID, &c.EncryptedAppSecret,
		&c.EncryptedPageAccessToken, &c.InstagramBusinessAccountID,
		&c.GraphAPIVersion, &c.TokenExpiresAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials for brand %s: %w", brandID, err)
	}
	return &c, nil
}

// Upsert writes a brand's full credential row, replacing any existing one.
func (s *BrandCredentialStore) Upsert(ctx context.Context, c *models.BrandCredential) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brand_credentials (
			brand_id, meta_app_id, encrypted_app_secret,
			encrypted_page_access_token, instagram_business_account_id,
			graph_api_version, token_expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (brand_id) DO UPDATE SET
			meta_app_id = EXCLUDED.meta_app_id,
			encrypted_app_secret = EXCLUDED.encrypted_app_secret,
			encrypted_page_access_token = EXCLUDED.encrypted_page_access_token,
			instagram_business_account_id = EXCLUDED.instagram_business_account_id,
			graph_api_version = EXCLUDED.graph_api_version,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = NOW()
	`, c.BrandID, c.MetaAppID, c.EncryptedAppSecret,
		c.EncryptedPageAccessToken, c.InstagramBusinessAccountID,
		c.GraphAPIVersion, c.TokenExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert credentials for brand %s: %w", c.BrandID, err)
	}
	return nil
}

// UpdateToken replaces only the encrypted page access token and its
// expiry, leaving the rest of the row intact.
func (s *BrandCredentialStore) UpdateToken(ctx context.Context, brandID uuid.UUID, encryptedToken string, expiresAt *time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE brand_credentials SET
			encrypted_page_access_token = $1, token_expires_at = $2, updated_at = NOW()
		WHERE brand_id = $3
	`, encryptedToken, expiresAt, brandID)
	if err != nil {
		return fmt.Errorf("update token for brand %s: %w", brandID, err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("update token for brand %s: no credential row", brandID)
	}
	return nil
}

// Delete removes a brand's credential row.
func (s *BrandCredentialStore) Delete(ctx context.Context, brandID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM brand_credentials WHERE brand_id = $1`, brandID)
	if err != nil {
		return fmt.Errorf("delete credentials for brand %s: %w", brandID, err)
	}
	return nil
}
