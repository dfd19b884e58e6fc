package main

import (
	"context"

	"github.com/whatssound/tipservice/internal/cache"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/consumers"
	"github.com/whatssound/tipservice/internal/database"
	"github.com/whatssound/tipservice/internal/logger"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/publishers"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/pkg/httpclient"
	"github.com/whatssound/tipservice/pkg/mq"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Provide(
			config.Load,
			logger.New,
			metrics.NewMetrics,
			database.NewConnection,
			NewMQConnection,
			NewMQConsumer,
			NewLeaderboardCache,

			repository.NewTipRepository,
			repository.NewSongRepository,
			repository.NewTipEventRepository,
			repository.NewTransactionManager,
			NewPaymentProcessor,
			service.NewPaymentService,
			service.NewTipService,
			service.NewChargeService,

			NewChargeConsumer,
		),
		fx.Invoke(runChargeConsumer),
	).Run()
}

func runChargeConsumer(chargeConsumer consumers.ChargeConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(publishers.ChargeQueue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", publishers.ChargeQueue))

			go func() {
				if err := chargeConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("charge consumer started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping charge consumer")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewChargeConsumer(cfg *config.Config, charge service.ChargeService, consumer mq.Consumer,
	logger *zap.Logger) consumers.ChargeConsumer {
	return consumers.NewChargeConsumer(charge, consumer, cfg.Worker.Prefetch, logger)
}

func NewPaymentProcessor(cfg *config.Config) paymentprocessor.Processor {
	client := httpclient.NewHTTPClient(cfg.Processor.Timeout, nil)
	return paymentprocessor.NewProcessor(cfg.Processor, client)
}

// NewLeaderboardCache lets settled charges invalidate cached boards.
func NewLeaderboardCache(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (cache.LeaderboardCache, error) {
	if !cfg.Redis.Enabled {
		return cache.NewNoop(), nil
	}

	client, err := cache.NewRedisClient(context.Background(), cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisLeaderboard(client, logger), nil
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}
