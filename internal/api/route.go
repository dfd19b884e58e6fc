package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	v1 "github.com/whatssound/tipservice/internal/api/v1"
	"github.com/whatssound/tipservice/internal/config"
	middleware "github.com/whatssound/tipservice/internal/errors"
	"github.com/whatssound/tipservice/internal/metrics"
	"go.uber.org/zap"
)

const prefixV1 = "api/v1/"

func NewApp(cfg *config.Config, m *metrics.Metrics, dbMetrics *metrics.DatabaseMetricsCollector, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ErrorHandler:          middleware.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))

	var check func() error
	if dbMetrics != nil {
		check = dbMetrics.HealthCheck
	}
	app.Use(metrics.HealthCheckMiddleware(cfg.App.Name, check))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app
}

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)

	app.Get("/"+prefixV1+"tips/fees", handler.QuoteFees)
	app.Post("/"+prefixV1+"tips", handler.SendTip)
	app.Get("/"+prefixV1+"tips/:id", handler.GetTip)
	app.Post("/"+prefixV1+"tips/:id/transitions", handler.TransitionTip)
	app.Get("/"+prefixV1+"djs/:id/tips", handler.ListReceivedTips)

	app.Get("/"+prefixV1+"leaderboards/djs", handler.DJLeaderboard)
	app.Get("/"+prefixV1+"leaderboards/supporters", handler.SupporterLeaderboard)
	app.Get("/"+prefixV1+"users/:id/golden-boosts", handler.GoldenBoostBalance)
}
