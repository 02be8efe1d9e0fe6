package database

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

const (
	startTimeKey = "metrics:start_time"

	tableUnknown = "unknown"
	tableOther   = "other"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats sql.DBStats)
}

type operationKey struct{}

// WithOperation labels every query run with ctx as op instead of its SQL verb
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

func operationFrom(db *gorm.DB, verb string) string {
	if db.Statement == nil || db.Statement.Context == nil {
		return verb
	}
	if op, ok := db.Statement.Context.Value(operationKey{}).(string); ok && op != "" {
		return op
	}
	return verb
}

// tableLabel keeps the table label to the study schema
func tableLabel(table string) string {
	if table == "" {
		return tableUnknown
	}
	for _, m := range allModels() {
		if m.tableName == table {
			return table
		}
	}
	return tableOther
}

type registerFunc func(name string, fn func(*gorm.DB)) error

// RegisterMetricsCallbacks registers GORM callbacks for metrics collection
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	hooks := []struct {
		verb   string
		before registerFunc
		after  registerFunc
	}{
		{"select", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"insert", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		verb := h.verb
		_ = h.before("metrics:"+verb+"_before", func(db *gorm.DB) {
			db.InstanceSet(startTimeKey, time.Now())
		})
		_ = h.after("metrics:"+verb+"_after", func(db *gorm.DB) {
			startTime, ok := db.InstanceGet(startTimeKey)
			if !ok {
				return
			}
			recorder.RecordDBQuery(
				operationFrom(db, verb),
				tableLabel(db.Statement.Table),
				time.Since(startTime.(time.Time)),
				db.Error,
			)
		})
	}
}

// StartDBStatsCollector starts periodic DB stats collection
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
