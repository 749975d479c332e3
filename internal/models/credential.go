// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandCredential is the persisted form of a brand's Meta credentials.
// The app secret and page access token columns hold ciphertext only;
// plaintext never reaches this struct.
type BrandCredential struct {
	BrandID                    uuid.UUID  `json:"brand_id"`
	MetaAppID                  string     `json:"meta_app_id"`
	EncryptedAppSecret         string     `json:"-"`
	EncryptedPageAccessToken   string     `json:"-"`
	InstagramBusinessAccountID string     `json:"instagram_business_account_id"`
	GraphAPIVersion            string     `json:"graph_api_version"`
	TokenExpiresAt             *time.Time `json:"token_expires_at,omitempty"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}
