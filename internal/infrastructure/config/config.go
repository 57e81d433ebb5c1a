package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Session     SessionConfig     `mapstructure:"session"`
	Seed        SeedConfig        `mapstructure:"seed"`
}

// IsProduction reports whether the process runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"` // postgres | sqlite
	Host               string        `mapstructure:"host"`
	Port               string        `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	Path               string        `mapstructure:"path"` // sqlite file or DSN
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`         // seconds
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"` // milliseconds
	LogLevel           string        `mapstructure:"logLevel"`           // gorm: silent | error | warn | info
	MonitorInterval    time.Duration `mapstructure:"monitorInterval"`    // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TransactionConfig controls retries of ledger transactions
type TransactionConfig struct {
	MaxRetries      int `mapstructure:"maxRetries"`
	RetryIntervalMs int `mapstructure:"retryIntervalMs"`
}

// AuthConfig contains credential and token settings
type AuthConfig struct {
	JWTSecret              string        `mapstructure:"jwtSecret"`
	JWTIssuer              string        `mapstructure:"jwtIssuer"`
	JWTAudience            string        `mapstructure:"jwtAudience"`
	SessionTokenTTL        time.Duration `mapstructure:"sessionTokenTTL"` // hours
	AccessTokenTTL         time.Duration `mapstructure:"accessTokenTTL"`  // hours
	BcryptCost             int           `mapstructure:"bcryptCost"`
	AllowStaffRegistration bool          `mapstructure:"allowStaffRegistration"`
}

// SessionConfig contains settings for opaque session housekeeping
type SessionConfig struct {
	SweepInterval time.Duration `mapstructure:"sweepInterval"` // minutes
	CacheEnabled  bool          `mapstructure:"cacheEnabled"`
	CacheTTL      time.Duration `mapstructure:"cacheTTL"` // seconds
}

// SeedConfig toggles demo data on startup
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
