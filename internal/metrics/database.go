package metrics

import (
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DatabaseMetricsCollector struct {
	metrics *Metrics
	logger  *zap.Logger
	sqlDB   *sql.DB
	ticker  *time.Ticker
	stopCh  chan struct{}
}

func NewDatabaseMetricsCollector(metrics *Metrics, logger *zap.Logger, db *gorm.DB) *DatabaseMetricsCollector {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get sql.DB from gorm.DB", zap.Error(err))
		metrics.RecordDBConnectionError()
	}

	dmc := &DatabaseMetricsCollector{
		metrics: metrics,
		logger:  logger,
		sqlDB:   sqlDB,
		stopCh:  make(chan struct{}),
	}

	if err := dmc.registerCallbacks(db); err != nil {
		logger.Error("Failed to register query metrics callbacks", zap.Error(err))
	}

	return dmc
}

const queryStartedKey = "metrics:query_started"

// registerCallbacks times every statement gorm runs through db.
func (dmc *DatabaseMetricsCollector) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	processors := []struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, p := range processors {
		operation := p.operation
		if err := p.before("metrics:before_"+operation, startQuery); err != nil {
			return err
		}

		if err := p.after("metrics:after_"+operation, func(tx *gorm.DB) {
			dmc.finishQuery(operation, tx)
		}); err != nil {
			return err
		}
	}

	return nil
}

func startQuery(tx *gorm.DB) {
	tx.InstanceSet(queryStartedKey, time.Now())
}

func (dmc *DatabaseMetricsCollector) finishQuery(operation string, tx *gorm.DB) {
	v, ok := tx.InstanceGet(queryStartedKey)
	if !ok {
		return
	}

	started, ok := v.(time.Time)
	if !ok {
		return
	}

	table := tx.Statement.Table
	if table == "" {
		table = "unknown"
	}

	dmc.observe(operation, table, tx.Error, time.Since(started))
}

func (dmc *DatabaseMetricsCollector) Start(interval time.Duration) {
	if dmc.sqlDB == nil {
		dmc.logger.Warn("Cannot start database metrics collector: sqlDB is nil")
		return
	}

	dmc.ticker = time.NewTicker(interval)
	go dmc.collectLoop()
	dmc.logger.Info("Database metrics collector started", zap.Duration("interval", interval))
}

func (dmc *DatabaseMetricsCollector) Stop() {
	if dmc.ticker != nil {
		dmc.ticker.Stop()
	}
	close(dmc.stopCh)
}

func (dmc *DatabaseMetricsCollector) collectLoop() {
	dmc.collect()

	for {
		select {
		case <-dmc.ticker.C:
			dmc.collect()
		case <-dmc.stopCh:
			return
		}
	}
}

func (dmc *DatabaseMetricsCollector) collect() {
	stats := dmc.sqlDB.Stats()

	dmc.metrics.DBConnectionsInUse.Set(float64(stats.InUse))
	dmc.metrics.DBConnectionsIdle.Set(float64(stats.Idle))
}

// WithMetrics times fn and records it as one query against table.
func (dmc *DatabaseMetricsCollector) WithMetrics(operation, table string, fn func() error) error {
	start := time.Now()
	err := fn()
	dmc.observe(operation, table, err, time.Since(start))

	return err
}

func (dmc *DatabaseMetricsCollector) observe(operation, table string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
		if errors.Is(err, gorm.ErrRecordNotFound) {
			status = "not_found"
		}
	}

	dmc.metrics.RecordDBQuery(operation, table, status, duration)

	if duration > 100*time.Millisecond {
		dmc.logger.Warn("Slow database query",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}
}

// HealthCheck pings the database. It backs the /health endpoint.
func (dmc *DatabaseMetricsCollector) HealthCheck() error {
	if dmc.sqlDB == nil {
		dmc.metrics.RecordDBConnectionError()
		return sql.ErrConnDone
	}

	return dmc.WithMetrics("ping", "health_check", func() error {
		return dmc.sqlDB.Ping()
	})
}
