package database

import (
	"context"
	"fmt"

	"github.com/whatssound/tipservice/internal/config"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/pkg/gormdb"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	ctx := context.Background()

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Database.Driver {
	case DriverMySQL, "":
		db, err = gormdb.NewMySQL(ctx, cfg.Database.MySQL, logger)
	case DriverSQLite:
		db, err = gormdb.NewSQLite(ctx, cfg.Database.SQLite, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			logger.Error("Auto migration failed", zap.Error(err))
			return nil, err
		}

		logger.Info("Database schema migrated", zap.String("driver", cfg.Database.Driver))
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Tip{}, &model.Song{}, &model.TipEvent{})
}

// NewTest returns a migrated in-memory sqlite database.
func NewTest() (*gorm.DB, error) {
	db, err := gormdb.NewSQLite(context.Background(), gormdb.SQLiteConfig{Path: ":memory:", LogLevel: "silent"}, zap.NewNop())
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}
