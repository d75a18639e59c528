package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Janushan11/scout-api/internal/domain"
)

const leaderboardCacheKey = "leaderboard:snapshot"

// DefaultLeaderboardTTL keeps the snapshot short-lived; the cache only has
// to absorb read bursts between duty writes
const DefaultLeaderboardTTL = 10 * time.Second

// RedisCmdable is the subset of redis operations the cache needs
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LeaderboardCache stores a serialized snapshot of the ranked user list.
// A sorted set would be the obvious shape, but score ties there order
// lexically by member, which breaks the registration-order tie rule, so the
// whole ordered list is cached as one JSON value instead.
type LeaderboardCache struct {
	client RedisCmdable
	ttl    time.Duration
}

// NewLeaderboardCache creates a leaderboard cache. A nil client disables
// caching; every operation becomes a no-op miss.
func NewLeaderboardCache(client RedisCmdable, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = DefaultLeaderboardTTL
	}
	return &LeaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot, (nil, nil) on a miss
func (c *LeaderboardCache) Get(ctx context.Context) ([]*domain.User, error) {
	if c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, leaderboardCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var users []*domain.User
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Set stores a snapshot with the configured TTL
func (c *LeaderboardCache) Set(ctx context.Context, users []*domain.User) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardCacheKey, string(data), c.ttl).Err()
}

// Invalidate drops the snapshot; called after any duty write or registration
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, leaderboardCacheKey).Err()
}
