package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/v4tech/servicedesk/internal/core/domain"
)

const (
	statsKey        = "servicedesk:stats"
	defaultStatsTTL = 10 * time.Second
)

// StatsCache keeps the last dashboard counters in Redis for a short TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache wraps client. A non-positive ttl falls back to defaultStatsTTL.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns the cached counters; ok is false on a miss.
func (c *StatsCache) Get(ctx context.Context) (*domain.Stats, bool, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}

	var s domain.Stats
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("stats cache decode: %w", err)
	}
	return &s, true, nil
}

// Set stores the counters until the TTL lapses.
func (c *StatsCache) Set(ctx context.Context, s *domain.Stats) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey, raw, c.ttl).Err()
}
