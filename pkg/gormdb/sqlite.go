package gormdb

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type SQLiteConfig struct {
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// NewSQLite opens a single-connection sqlite database. It backs local test-mode runs
// and repository tests; ":memory:" gives a throwaway database.
func NewSQLite(ctx context.Context, cfg SQLiteConfig, logger *zap.Logger) (*gorm.DB, error) {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         NewLogger(logger, cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		logger.Error("Failed to open sqlite database", zap.Error(err), zap.String("path", path))
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// every new connection to ":memory:" would see an empty database
	sqlDB.SetMaxOpenConns(1)

	if err := PingWithRetry(ctx, sqlDB, logger, 1, 0); err != nil {
		logger.Error("Sqlite ping failed", zap.Error(err))
		return nil, err
	}

	logger.Info("Opened sqlite database", zap.String("path", path))

	return db.WithContext(ctx), nil
}
