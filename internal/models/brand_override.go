// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandOverride is a brand's accumulated configuration edits, layered over
// its category template during resolution. At most one active row exists
// per brand.
type BrandOverride struct {
	ID        uuid.UUID      `json:"id"`
	BrandID   uuid.UUID      `json:"brand_id"`
	Config    map[string]any `json:"config"`
	IsActive  bool           `json:"is_active"`
	UpdatedAt time.Time      `json:"updated_at"`
}
