package database

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/config"
)

// ConfigFromAppConfig adapts the application configuration to database configuration
func ConfigFromAppConfig(conf *config.Config) *Config {
	dbConf := DefaultConfig()

	dbConf.Driver = conf.Database.Driver
	dbConf.Host = conf.Database.Host
	dbConf.Username = conf.Database.Username
	dbConf.Password = conf.Database.Password
	dbConf.Database = conf.Database.Database
	dbConf.Path = conf.Database.Path
	if port := ParsePort(conf.Database.Port); port > 0 {
		dbConf.Port = port
	}
	if conf.Database.SSLMode != "" {
		dbConf.SSLMode = conf.Database.SSLMode
	}
	if conf.Database.MaxOpenConns > 0 {
		dbConf.MaxOpenConns = conf.Database.MaxOpenConns
	}
	if conf.Database.MaxIdleConns > 0 {
		dbConf.MaxIdleConns = conf.Database.MaxIdleConns
	}
	if conf.Database.ConnMaxLifetime > 0 {
		dbConf.ConnMaxLifetime = conf.Database.ConnMaxLifetime
	}
	if conf.Database.ConnMaxIdleTime > 0 {
		dbConf.ConnMaxIdleTime = conf.Database.ConnMaxIdleTime
	}
	if conf.Database.QueryTimeout > 0 {
		dbConf.QueryTimeout = conf.Database.QueryTimeout
	}
	if conf.Database.RetryAttempts > 0 {
		dbConf.RetryAttempts = conf.Database.RetryAttempts
	}
	if conf.Database.RetryDelay > 0 {
		dbConf.RetryDelay = conf.Database.RetryDelay
	}
	if conf.Database.SlowQueryThreshold > 0 {
		dbConf.SlowQueryThreshold = conf.Database.SlowQueryThreshold
	}
	if conf.Database.LogLevel != "" {
		dbConf.LogLevel = conf.Database.LogLevel
	}
	if conf.Database.MonitorInterval > 0 {
		dbConf.MonitorInterval = conf.Database.MonitorInterval
	}

	dbConf.Retry.MaxRetries = conf.Transaction.MaxRetries + 1
	if conf.Transaction.RetryIntervalMs > 0 {
		dbConf.Retry.RetryInterval = time.Duration(conf.Transaction.RetryIntervalMs) * time.Millisecond
	}

	return dbConf
}

// ParsePort converts a port string to an int, returning 0 when it is not a valid port
func ParsePort(port string) int {
	var p int
	if _, err := fmt.Sscanf(port, "%d", &p); err != nil || p <= 0 || p > 65535 {
		return 0
	}
	return p
}
