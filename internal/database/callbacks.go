package database

import (
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks times every query, create, update and delete
// statement and reports it to recorder.
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	start := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	finish := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			startTime, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), tx.Error)
		}
	}

	cb := db.Callback()
	return firstErr(
		cb.Query().Before("gorm:query").Register("metrics:select_before", start),
		cb.Query().After("gorm:query").Register("metrics:select_after", finish("select")),
		cb.Create().Before("gorm:create").Register("metrics:insert_before", start),
		cb.Create().After("gorm:create").Register("metrics:insert_after", finish("insert")),
		cb.Update().Before("gorm:update").Register("metrics:update_before", start),
		cb.Update().After("gorm:update").Register("metrics:update_after", finish("update")),
		cb.Delete().Before("gorm:delete").Register("metrics:delete_before", start),
		cb.Delete().After("gorm:delete").Register("metrics:delete_after", finish("delete")),
	)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// StartDBStatsCollector reports connection pool stats every interval until
// the returned channel is closed.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
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
