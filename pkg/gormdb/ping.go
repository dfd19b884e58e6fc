package gormdb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	pingAttempts = 5
	pingDelay    = 3 * time.Second
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingWithRetry pings db until it answers, waiting delay between attempts.
func PingWithRetry(ctx context.Context, db Pinger, logger *zap.Logger, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}

		if i == attempts {
			break
		}

		logger.Warn("Database not ready, retrying",
			zap.Int("attempt", i),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("database ping cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("database ping failed after %d attempt(s): %w", attempts, err)
}
