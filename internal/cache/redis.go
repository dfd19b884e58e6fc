package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/whatssound/tipservice/internal/config"
	"go.uber.org/zap"
)

const pingAttempts = 5

// NewRedisClient connects to redis, retrying the initial ping a few times while the
// server comes up.
func NewRedisClient(ctx context.Context, cfg config.Redis, logger *zap.Logger) (*redis.Client, error) {
	log := logger.With(
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.Info("Connected to Redis")
			return rdb, nil
		}

		log.Warn("Redis not ready, retrying", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	_ = rdb.Close()
	return nil, err
}
