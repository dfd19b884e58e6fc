package main

import (
	"context"
	"time"

	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/database"
	"github.com/whatssound/tipservice/internal/logger"
	"github.com/whatssound/tipservice/internal/publishers"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/pkg/mq"
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

			database.NewConnection,
			NewMQConnection,
			NewMQPublisher,

			repository.NewTipEventRepository,

			service.NewChargeQueueService,

			NewChargePublisher,
		),
		fx.Invoke(runChargePublisher),
	).Run()
}

func runChargePublisher(cfg *config.Config, publisher publishers.ChargePublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(publishers.ChargeQueue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", publishers.ChargeQueue))

			interval := cfg.Worker.PublishInterval
			if interval <= 0 {
				interval = 10 * time.Second
			}

			go func() {
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ticker.C:
						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("failed to publish charge events", zap.Error(err))
						}
					case <-appCtx.Done():
						logger.Info("publisher context cancelled")
						return
					}
				}
			}()

			logger.Info("charge publisher started", zap.Duration("interval", interval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping charge publisher")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewChargePublisher(cfg *config.Config, queue service.ChargeQueueService, publisher mq.Publisher,
	logger *zap.Logger) publishers.ChargePublisher {
	return publishers.NewChargePublisher(queue, publisher, cfg.Worker.BatchSize, logger)
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}
