// Package cache provides an optional Redis read cache for zone leaderboards.
// Every operation is best effort: a cold or unreachable Redis behaves like a
// permanent miss and never fails the request it was meant to speed up.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MattyxD3D/pacematch-connect-sub001/internal/config"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/domain"
	"github.com/MattyxD3D/pacematch-connect-sub001/internal/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "leaderboard"

// RedisLeaderboardCache implements service.LeaderboardCache on Redis with a
// fixed TTL per entry.
type RedisLeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLeaderboardCache connects to Redis and returns a cache, or nil when
// cfg.Address is empty or the server cannot be reached. Callers treat a nil
// cache as caching disabled.
func NewRedisLeaderboardCache(cfg config.RedisConfig, ttl time.Duration) *RedisLeaderboardCache {
	if cfg.Address == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warning("Redis unreachable at %s, leaderboard cache disabled: %v", cfg.Address, err)
		return nil
	}

	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisLeaderboardCache{client: client, ttl: ttl}
}

func cacheKey(zoneID string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, zoneID, limit)
}

// GetTop returns the cached entries for (zone, limit), or ok=false on miss or
// any Redis/decode failure.
func (c *RedisLeaderboardCache) GetTop(ctx context.Context, zoneID string, limit int) ([]domain.LeaderboardEntry, bool) {
	payload, err := c.client.Get(ctx, cacheKey(zoneID, limit)).Bytes()
	if err != nil {
		return nil, false
	}
	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// SetTop stores the entries under (zone, limit) with the configured TTL.
func (c *RedisLeaderboardCache) SetTop(ctx context.Context, zoneID string, limit int, entries []domain.LeaderboardEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(zoneID, limit), payload, c.ttl).Err(); err != nil {
		logger.Warning("Leaderboard cache write failed for zone %s: %v", zoneID, err)
	}
}

// Invalidate drops every cached limit variant for the zone. Failures leave
// stale entries behind until the TTL expires; they are logged, never
// propagated.
func (c *RedisLeaderboardCache) Invalidate(ctx context.Context, zoneID string) {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, zoneID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warning("Leaderboard cache invalidation failed for zone %s: %v", zoneID, err)
			return
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warning("Leaderboard cache scan failed for zone %s: %v", zoneID, err)
	}
}
