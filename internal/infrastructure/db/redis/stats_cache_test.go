package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/v4tech/servicedesk/internal/core/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestStatsCache_MissThenHit(t *testing.T) {
	_, client := setupTestRedis(t)
	cache := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := &domain.Stats{TotalCustomers: 4, PendingCustomers: 1, TotalMessages: 9}
	if err := cache.Set(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if *got != *want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestStatsCache_Expires(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewStatsCache(client, 5*time.Second)
	ctx := context.Background()

	_ = cache.Set(ctx, &domain.Stats{TotalReviews: 2})
	mr.FastForward(6 * time.Second)

	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStatsCache_DefaultTTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewStatsCache(client, 0)

	_ = cache.Set(context.Background(), &domain.Stats{})
	if ttl := mr.TTL(statsKey); ttl != defaultStatsTTL {
		t.Fatalf("expected ttl %v, got %v", defaultStatsTTL, ttl)
	}
}
