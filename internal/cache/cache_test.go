// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, configKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConfigCacheRoundTrip(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewConfigCache(client, time.Minute)
	ctx := context.Background()
	brandID := uuid.New()

	if _, ok := cc.Get(ctx, brandID); ok {
		t.Fatal("fresh brand should miss")
	}

	raw := []byte(`{"brand":{"name":"Test"}}`)
	cc.Set(ctx, brandID, raw)

	got, ok := cc.Get(ctx, brandID)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(raw) {
		t.Errorf("got %s", got)
	}

	cc.Invalidate(ctx, brandID)
	if _, ok := cc.Get(ctx, brandID); ok {
		t.Error("expected miss after Invalidate")
	}
}

func TestConfigCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	cc := NewConfigCache(client, time.Minute)
	ctx := context.Background()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		cc.Set(ctx, id, []byte(`{}`))
	}

	cc.InvalidateAll(ctx)

	for _, id := range ids {
		if _, ok := cc.Get(ctx, id); ok {
			t.Errorf("brand %s still cached after InvalidateAll", id)
		}
	}
}
