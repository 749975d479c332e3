// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// config.go provides a Valkey-backed cache of resolved brand
// configurations. Resolution walks four merge layers and two tables, so
// hot paths (prompt rendering, API reads) take the cached canonical JSON
// instead. Any template or override edit must invalidate the brand.

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// configKeyPrefix is the Valkey key prefix for resolved configs.
	configKeyPrefix = "brandcfg:"

	// DefaultConfigTTL bounds staleness if an invalidation is missed.
	DefaultConfigTTL = 10 * time.Minute
)

// ConfigCache caches resolved brand configuration JSON in Valkey.
type ConfigCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConfigCache creates a config cache backed by the given Valkey client.
func NewConfigCache(client *redis.Client, ttl time.Duration) *ConfigCache {
	if ttl == 0 {
		ttl = DefaultConfigTTL
	}
	return &ConfigCache{client: client, ttl: ttl}
}

// Get retrieves the cached canonical JSON for a brand. Returns false on
// miss or on any transport error; the caller re-resolves either way.
func (cc *ConfigCache) Get(ctx context.Context, brandID uuid.UUID) ([]byte, bool) {
	val, err := cc.client.Get(ctx, configKeyPrefix+brandID.String()).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("config cache get error", "brand_id", brandID, "error", err)
		return nil, false
	}
	slog.Debug("config cache hit", "brand_id", brandID)
	return val, true
}

// Set stores a brand's canonical resolved JSON with the configured TTL.
func (cc *ConfigCache) Set(ctx context.Context, brandID uuid.UUID, raw []byte) {
	if err := cc.client.Set(ctx, configKeyPrefix+brandID.String(), raw, cc.ttl).Err(); err != nil {
		slog.Warn("config cache set error", "brand_id", brandID, "error", err)
	}
}

// Invalidate removes one brand's cached config after an override edit.
func (cc *ConfigCache) Invalidate(ctx context.Context, brandID uuid.UUID) {
	if err := cc.client.Del(ctx, configKeyPrefix+brandID.String()).Err(); err != nil {
		slog.Warn("config cache invalidate error", "brand_id", brandID, "error", err)
	}
	slog.Debug("config cache invalidated", "brand_id", brandID)
}

// InvalidateAll removes every cached config by scanning for the prefix.
// Used when a category template changes, since any brand could inherit
// from it.
func (cc *ConfigCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, configKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("config cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("config cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("config cache fully cleared", "deleted", deleted)
	}
}
