// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"brandpress/internal/models"
)

// TokenRefresh reports the outcome of a token exchange.
type TokenRefresh struct {
	ExpiresAt *time.Time
}

// RefreshToken exchanges a brand's long-lived page token for a fresh one
// and persists the new encrypted token plus its computed expiry through
// the vault. On any failure the stored token is left untouched and the
// error is surfaced for operator handling — a credential is never
// partially overwritten.
func (p *Publisher) RefreshToken(ctx context.Context, brandID uuid.UUID) (*TokenRefresh, error) {
	creds, err := p.resolveCredentials(ctx, brandID)
	if err != nil {
		return nil, err
	}

	if p.opts.DryRun {
		// No exchange, no persistence: a synthetic token must never
		// clobber a real stored credential.
		expiry := time.Now().UTC().Add(60 * 24 * time.Hour)
		return &TokenRefresh{ExpiresAt: &expiry}, nil
	}

	token, expiresIn, err := p.graph.refreshToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if expiresIn > 0 {
		t := time.Now().UTC().Add(time.Duration(expiresIn) * time.Second)
		expiresAt = &t
	}

	if err := p.vault.UpdateToken(ctx, brandID, token, expiresAt); err != nil {
		return nil, &PublishError{Op: "token_refresh", Detail: "exchanged token could not be persisted", Err: err}
	}

	slog.Info("page token refreshed", "brand_id", brandID, "expires_at", expiresAt)
	return &TokenRefresh{ExpiresAt: expiresAt}, nil
}

// BrandLister supplies the brands to sweep during a scheduled refresh.
type BrandLister interface {
	List(ctx context.Context) ([]models.Brand, error)
}

// RefreshAllTokens refreshes every brand's token, skipping brands without
// credentials and continuing past per-brand failures.
func (p *Publisher) RefreshAllTokens(ctx context.Context, brands BrandLister) {
	list, err := brands.List(ctx)
	if err != nil {
		slog.Warn("token refresh sweep: brand list failed", "error", err)
		return
	}

	for _, brand := range list {
		if _, err := p.RefreshToken(ctx, brand.ID); err != nil {
			slog.Warn("token refresh failed",
				"brand_id", brand.ID,
				"brand", brand.Slug,
				"error", err,
			)
		}
	}
}
