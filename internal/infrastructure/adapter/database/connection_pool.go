package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// ConnectionPoolMetrics is a snapshot of sql.DBStats
type ConnectionPoolMetrics struct {
	OpenConnections    int           `json:"openConnections"`
	IdleConnections    int           `json:"idleConnections"`
	MaxOpenConnections int           `json:"maxOpenConnections"`
	InUse              int           `json:"inUse"`
	WaitCount          int64         `json:"waitCount"`
	WaitDuration       time.Duration `json:"waitDuration"`
	MaxIdleClosed      int64         `json:"maxIdleClosed"`
	MaxLifetimeClosed  int64         `json:"maxLifetimeClosed"`
}

// CollectPoolMetrics reads the current pool statistics of db
func CollectPoolMetrics(db *gorm.DB) (ConnectionPoolMetrics, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return ConnectionPoolMetrics{}, fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()
	return ConnectionPoolMetrics{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}, nil
}

// ConnectionPoolMonitor periodically samples the pool and warns when it nears exhaustion
type ConnectionPoolMonitor struct {
	db           *gorm.DB
	logger       coreport.Logger
	metricsCache *ConnectionPoolMetrics
	mutex        sync.RWMutex
}

func NewConnectionPoolMonitor(db *gorm.DB, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:     db,
		logger: logger,
	}
}

// Run samples the pool every interval until ctx is cancelled
func (m *ConnectionPoolMonitor) Run(ctx context.Context, interval time.Duration) error {
	if err := m.collectMetrics(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.collectMetrics(); err != nil {
				m.logger.Error("Failed to collect connection pool metrics", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}

// GetMetrics returns the last sampled metrics
func (m *ConnectionPoolMonitor) GetMetrics() ConnectionPoolMetrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.metricsCache == nil {
		return ConnectionPoolMetrics{}
	}
	return *m.metricsCache
}

func (m *ConnectionPoolMonitor) collectMetrics() error {
	metrics, err := CollectPoolMetrics(m.db)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	m.metricsCache = &metrics
	m.mutex.Unlock()

	threshold := float64(metrics.MaxOpenConnections) * 0.8
	if metrics.MaxOpenConnections > 0 && float64(metrics.InUse) > threshold {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     metrics.InUse,
			"max_open":   metrics.MaxOpenConnections,
			"idle":       metrics.IdleConnections,
			"wait_count": metrics.WaitCount,
			"wait_time":  metrics.WaitDuration.String(),
		})
	}
	return nil
}
