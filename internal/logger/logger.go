package logger

import (
	"github.com/whatssound/tipservice/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envProduction = "production"

func New(cfg *config.Config) (*zap.Logger, error) {
	log, err := build(cfg.App.Env)
	if err != nil {
		return nil, err
	}

	log = log.With(
		zap.String("service_name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	zap.ReplaceGlobals(log)

	return log, nil
}

func build(env string) (*zap.Logger, error) {
	if env != envProduction {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.LevelKey = "severity"
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Encoding = "json"
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
