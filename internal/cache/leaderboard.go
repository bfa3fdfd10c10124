// Package cache holds the Redis-backed leaderboard cache. The server runs
// fine without it; main wires it in only when Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"quizhub/internal/models"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 30 * time.Second

type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(addr, password string, ttl time.Duration) (*LeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LeaderboardCache{client: client, ttl: ttl}, nil
}

func (c *LeaderboardCache) Close() error {
	return c.client.Close()
}

func key(quizID string) string {
	return "leaderboard:" + quizID
}

func (c *LeaderboardCache) Get(ctx context.Context, quizID string) ([]models.Result, bool) {
	raw, err := c.client.Get(ctx, key(quizID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Leaderboard cache read failed for quiz %s: %v", quizID, err)
		}
		return nil, false
	}
	var results []models.Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *LeaderboardCache) Set(ctx context.Context, quizID string, results []models.Result) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(quizID), raw, c.ttl).Err(); err != nil {
		log.Printf("Leaderboard cache write failed for quiz %s: %v", quizID, err)
	}
}

func (c *LeaderboardCache) Invalidate(ctx context.Context, quizID string) {
	if err := c.client.Del(ctx, key(quizID)).Err(); err != nil {
		log.Printf("Leaderboard cache invalidation failed for quiz %s: %v", quizID, err)
	}
}
