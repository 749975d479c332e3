// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// PostShape is the publish shape of a generated post. The pipeline knows
// exactly these three shapes.
type PostShape string

const (
	ShapeSingle   PostShape = "single"
	ShapeCarousel PostShape = "carousel"
	ShapeReel     PostShape = "reel"
)

// PostStatus mirrors the lifecycle the owning pipeline tracks for a post.
// The publish state machine only reads these; transitions are owned
// externally, and the caller must move a post out of its publishable
// status before scheduling a second publish attempt.
type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusApproved  PostStatus = "approved"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
	StatusFailed    PostStatus = "failed"
)
