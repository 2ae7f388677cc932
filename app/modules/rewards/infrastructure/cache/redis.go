// Package rewardscache mirrors the leaderboard into Redis so read replicas
// and other services can serve standings without the engine in the loop.
package rewardscache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	rewardsservice "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/application"
	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
)

const leaderboardKey = "rewards:leaderboard"

// RedisCache keeps the standings in a sorted set keyed by points.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects a cache to the given Redis address.
func NewRedisCache(addr, password string, db int) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping verifies the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Upsert writes one account's points into the sorted set.
func (c *RedisCache) Upsert(ctx context.Context, accountID string, points int64) error {
	return c.client.ZAdd(ctx, leaderboardKey, &redis.Z{
		Score:  float64(points),
		Member: accountID,
	}).Err()
}

// Remove drops an account from the sorted set.
func (c *RedisCache) Remove(ctx context.Context, accountID string) error {
	return c.client.ZRem(ctx, leaderboardKey, accountID).Err()
}

// Rebuild replaces the whole set with fresh standings in one pipeline.
func (c *RedisCache) Rebuild(ctx context.Context, standings []rewardsdomain.Standing) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, leaderboardKey)
	for _, st := range standings {
		pipe.ZAdd(ctx, leaderboardKey, &redis.Z{
			Score:  float64(st.Points),
			Member: string(st.AccountID),
		})
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Top returns the highest-scoring account ids, best first.
func (c *RedisCache) Top(ctx context.Context, n int64) ([]string, error) {
	return c.client.ZRevRange(ctx, leaderboardKey, 0, n-1).Result()
}

// Close releases the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ rewardsservice.LeaderboardCache = (*RedisCache)(nil)
