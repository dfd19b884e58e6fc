package service

import (
	"context"
	"errors"
	"time"

	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/constants"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/repository"
	"go.uber.org/zap"
)

// persister retries writes that fail for reasons other than the state of the data.
type persister struct {
	maxRetries int
	delay      time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func newPersister(cfg config.Persistence, metrics *metrics.Metrics, logger *zap.Logger) persister {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return persister{maxRetries: maxRetries, delay: cfg.RetryDelay, metrics: metrics, logger: logger}
}

func (p persister) persist(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if ctxErr := contextError(err); ctxErr != nil {
			p.metrics.RecordPersistenceFailure(op)
			return NewServiceError(constants.ErrCodePersistenceFailed,
				&PersistenceError{Op: op, Attempts: attempt, Err: ctxErr})
		}

		if !retryable(err) {
			return err
		}

		lastErr = err
		p.logger.Warn("Write attempt failed",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == p.maxRetries {
			break
		}

		p.metrics.RecordPersistenceRetry(op)

		select {
		case <-ctx.Done():
			return NewServiceError(constants.ErrCodePersistenceFailed,
				&PersistenceError{Op: op, Attempts: attempt, Err: ctx.Err()})
		case <-time.After(time.Duration(attempt) * p.delay):
		}
	}

	p.metrics.RecordPersistenceFailure(op)
	p.logger.Error("Write failed after all attempts",
		zap.String("operation", op),
		zap.Int("maxRetries", p.maxRetries),
		zap.Error(lastErr))

	return NewServiceError(constants.ErrCodePersistenceFailed,
		&PersistenceError{Op: op, Attempts: p.maxRetries, Err: lastErr})
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, repository.ErrNoRowsAffected),
		errors.Is(err, repository.ErrTipDuplicate),
		errors.Is(err, repository.ErrTipNotFound),
		errors.Is(err, repository.ErrSongNotFound),
		contextError(err) != nil:
		return false
	}

	var serviceErr Error
	return !errors.As(err, &serviceErr)
}

func contextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded
	}

	return nil
}
