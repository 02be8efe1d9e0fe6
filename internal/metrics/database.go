package metrics

import (
	"database/sql"
	"strings"
	"time"
)

// UpdateDBStats updates the connection pool gauges. sql.DBStats reports the wait count and wait
// duration as running totals, so only the growth since the previous call is added to the counters.
func (m *Metrics) UpdateDBStats(stats sql.DBStats) {
	m.safeExecute("UpdateDBStats", func() {
		m.DBConnectionsOpen.Set(float64(stats.OpenConnections))
		m.DBConnectionsInUse.Set(float64(stats.InUse))
		m.DBConnectionsIdle.Set(float64(stats.Idle))
		m.DBConnectionsMax.Set(float64(stats.MaxOpenConnections))

		m.dbStatsMu.Lock()
		defer m.dbStatsMu.Unlock()
		// a reopened pool starts its totals from zero again
		if stats.WaitCount < m.lastDBStats.WaitCount || stats.WaitDuration < m.lastDBStats.WaitDuration {
			m.lastDBStats = sql.DBStats{}
		}
		m.DBConnectionWaitTotal.Add(float64(stats.WaitCount - m.lastDBStats.WaitCount))
		m.DBConnectionWaitDuration.Add((stats.WaitDuration - m.lastDBStats.WaitDuration).Seconds())
		m.lastDBStats = stats
	})
}

// RecordDBQuery records a query under its operation and table labels. Operations are either
// SQL verbs or the named paths of the service (sweep_contents, recount, unread_count, ...).
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration, err error) {
	m.safeExecute("RecordDBQuery", func() {
		operation = strings.ToLower(operation)
		m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())

		if err != nil {
			m.DBQueryErrors.WithLabelValues(operation, table).Inc()
		}
	})
}
