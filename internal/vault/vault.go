// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"brandpress/internal/models"
)

// Store is the persistence boundary for credential rows. Writes are
// transactional at the storage layer; the vault only dictates the
// before/after field values.
type Store interface {
	// Get returns the stored row for a brand, or (nil, nil) when none exists.
	Get(ctx context.Context, brandID uuid.UUID) (*models.BrandCredential, error)
	Upsert(ctx context.Context, row *models.BrandCredential) error
	// UpdateToken replaces only the encrypted token and its expiry.
	UpdateToken(ctx context.Context, brandID uuid.UUID, encryptedToken string, expiresAt *time.Time) error
}

// Plaintext carries the decrypted credential fields through process
// memory. It is never persisted or logged.
type Plaintext struct {
	MetaAppID                  string
	MetaAppSecret              string
	PageAccessToken            string
	InstagramBusinessAccountID string
	GraphAPIVersion            string
}

// Bundle is a brand's resolved credential set plus the token expiry, if
// known.
type Bundle struct {
	Plaintext
	TokenExpiresAt *time.Time
}

// MissingFields lists the bundle fields that are empty, in a stable order.
// The publisher refuses to start a publish attempt while any are missing.
func (b *Bundle) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"meta_app_id", b.MetaAppID},
		{"meta_app_secret", b.MetaAppSecret},
		{"meta_page_access_token", b.PageAccessToken},
		{"instagram_business_account_id", b.InstagramBusinessAccountID},
		{"meta_graph_api_version", b.GraphAPIVersion},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Vault resolves and updates per-brand credentials, encrypting the two
// secret fields at rest.
type Vault struct {
	store  Store
	cipher *Cipher
}

// New returns a vault over the given store, keyed by the root secret.
func New(store Store, rootSecret string) *Vault {
	return &Vault{store: store, cipher: NewCipher(rootSecret)}
}

// Upsert encrypts the secret fields and writes the full credential row for
// a brand, creating it if absent.
func (v *Vault) Upsert(ctx context.Context, brandID uuid.UUID, creds Plaintext) error {
	encSecret, err := v.cipher.Encrypt(creds.MetaAppSecret)
	if err != nil {
		return fmt.Errorf("encrypt app secret: %w", err)
	}
	encToken, err := v.cipher.Encrypt(creds.PageAccessToken)
	if err != nil {
		return fmt.Errorf("encrypt page token: %w", err)
	}

	version := creds.GraphAPIVersion
	if version == "" {
		version = "v25.0"
	}

	return v.store.Upsert(ctx, &models.BrandCredential{
		BrandID:                    brandID,
		MetaAppID:                  creds.MetaAppID,
		EncryptedAppSecret:         encSecret,
		EncryptedPageAccessToken:   encToken,
		InstagramBusinessAccountID: creds.InstagramBusinessAccountID,
		GraphAPIVersion:            version,
	})
}

// Resolve returns the decrypted credential bundle for a brand, or
// (nil, nil) when no bundle has been stored yet — callers decide whether
// that is fatal.
func (v *Vault) Resolve(ctx context.Context, brandID uuid.UUID) (*Bundle, error) {
	row, err := v.store.Get(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("credential lookup for brand %s: %w", brandID, err)
	}
	if row == nil {
		return nil, nil
	}

	secret, err := v.decryptField(row.EncryptedAppSecret)
	if err != nil {
		return nil, fmt.Errorf("decrypt app secret for brand %s: %w", brandID, err)
	}
	token, err := v.decryptField(row.EncryptedPageAccessToken)
	if err != nil {
		return nil, fmt.Errorf("decrypt page token for brand %s: %w", brandID, err)
	}

	return &Bundle{
		Plaintext: Plaintext{
			MetaAppID:                  row.MetaAppID,
			MetaAppSecret:              secret,
			PageAccessToken:            token,
			InstagramBusinessAccountID: row.InstagramBusinessAccountID,
			GraphAPIVersion:            row.GraphAPIVersion,
		},
		TokenExpiresAt: row.TokenExpiresAt,
	}, nil
}

// UpdateToken persists a refreshed page access token and its expiry. The
// stored row is untouched on any failure, so a bad refresh can never
// partially overwrite a working credential.
func (v *Vault) UpdateToken(ctx context.Context, brandID uuid.UUID, token string, expiresAt *time.Time) error {
	if token == "" {
		return fmt.Errorf("refusing to store an empty page token for brand %s", brandID)
	}
	encToken, err := v.cipher.Encrypt(token)
	if err != nil {
		return fmt.Errorf("encrypt refreshed token: %w", err)
	}
	return v.store.UpdateToken(ctx, brandID, encToken, expiresAt)
}

func (v *Vault) decryptField(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	return v.cipher.Decrypt(encoded)
}
