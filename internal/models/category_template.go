// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryTemplate is a starter configuration fragment for a product
// category. Multiple rows may exist per category as history; only the most
// recently created active row is authoritative. Inactive rows are retained
// for audit.
type CategoryTemplate struct {
	ID        uuid.UUID      `json:"id"`
	Category  string         `json:"category"`
	Template  map[string]any `json:"template"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
}
