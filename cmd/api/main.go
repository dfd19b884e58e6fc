package main

import (
	"context"
	"time"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/whatssound/tipservice/internal/api"
	v1 "github.com/whatssound/tipservice/internal/api/v1"
	"github.com/whatssound/tipservice/internal/api/validator"
	"github.com/whatssound/tipservice/internal/cache"
	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/database"
	"github.com/whatssound/tipservice/internal/logger"
	"github.com/whatssound/tipservice/internal/metrics"
	"github.com/whatssound/tipservice/internal/repository"
	"github.com/whatssound/tipservice/internal/service"
	"github.com/whatssound/tipservice/pkg/httpclient"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const collectInterval = 15 * time.Second

func main() {
	fx.New(
		fxLogger,
		fx.Provide(
			config.Load,
			logger.New,
			metrics.NewMetrics,
			database.NewConnection,
			NewLeaderboardCache,
			NewPaymentProcessor,

			repository.NewTipRepository,
			repository.NewSongRepository,
			repository.NewTipEventRepository,
			repository.NewTransactionManager,

			service.NewPaymentService,
			service.NewTipService,
			service.NewLeaderboardService,

			metrics.NewSystemCollector,
			metrics.NewDatabaseMetricsCollector,
			NewValidator,
			api.NewApp,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

var fxLogger = fx.WithLogger(func(cfg *config.Config, logger *zap.Logger) fxevent.Logger {
	if cfg.App.Env == "production" {
		return fxevent.NopLogger
	}

	return &fxevent.ZapLogger{Logger: logger}
})

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, db *gorm.DB,
	system *metrics.SystemCollector, dbMetrics *metrics.DatabaseMetricsCollector, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			system.Start(collectInterval, version)
			dbMetrics.Start(collectInterval)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("server exited", zap.Error(err))
				}
			}()

			logger.Info("api started", zap.String("port", cfg.API.Port), zap.String("mode", string(cfg.Tips.Mode)))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping api")
			system.Stop()
			dbMetrics.Stop()

			if err := app.ShutdownWithContext(ctx); err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			return sqlDB.Close()
		},
	})
}

func NewValidator(m *metrics.Metrics) validator.IXValidator {
	return validator.NewXValidator(govalidator.New(), m)
}

func NewPaymentProcessor(cfg *config.Config) paymentprocessor.Processor {
	client := httpclient.NewHTTPClient(cfg.Processor.Timeout, nil)
	return paymentprocessor.NewProcessor(cfg.Processor, client)
}

// NewLeaderboardCache falls back to no caching when redis is disabled.
func NewLeaderboardCache(cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) (cache.LeaderboardCache, error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, leaderboards are read from the database")
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
