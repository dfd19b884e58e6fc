package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMiss = errors.New("CACHE_MISS")

// LeaderboardCache stores rendered leaderboards. Get returns ErrMiss when nothing
// is cached under key.
type LeaderboardCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type RedisLeaderboard struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisLeaderboard(client *redis.Client, logger *zap.Logger) LeaderboardCache {
	return &RedisLeaderboard{client: client, logger: logger}
}

func (r *RedisLeaderboard) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, nil
}

func (r *RedisLeaderboard) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// Invalidate drops every cached leaderboard.
func (r *RedisLeaderboard) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, NamespaceKey(LeaderboardPrefix, "*"), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	r.logger.Debug("Leaderboard cache invalidated", zap.Int("keys", len(keys)))

	return nil
}

// Noop is used when redis is disabled. Every lookup misses.
type Noop struct{}

func NewNoop() LeaderboardCache {
	return Noop{}
}

func (Noop) Get(context.Context, string) ([]byte, error) {
	return nil, ErrMiss
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (Noop) Invalidate(context.Context) error {
	return nil
}
