package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "BANK"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// envBindings maps environment variables that do not follow the plain PREFIX_SECTION_KEY scheme
var envBindings = map[string]string{
	"BANK_DB_DRIVER":                  "database.driver",
	"BANK_DB_HOST":                    "database.host",
	"BANK_DB_PORT":                    "database.port",
	"BANK_DB_USERNAME":                "database.username",
	"BANK_DB_PASSWORD":                "database.password",
	"BANK_DB_NAME":                    "database.database",
	"BANK_DB_SSL_MODE":                "database.sslMode",
	"BANK_DB_PATH":                    "database.path",
	"BANK_DB_MAX_OPEN_CONNS":          "database.maxOpenConns",
	"BANK_DB_MAX_IDLE_CONNS":          "database.maxIdleConns",
	"BANK_DB_QUERY_TIMEOUT_SECONDS":   "database.queryTimeout",
	"BANK_SERVER_HOST":                "server.host",
	"BANK_SERVER_PORT":                "server.port",
	"BANK_LOGGER_LEVEL":               "logger.level",
	"BANK_LOGGER_FORMAT":              "logger.format",
	"BANK_JWT_SECRET":                 "auth.jwtSecret",
	"BANK_AUTH_BCRYPT_COST":           "auth.bcryptCost",
	"BANK_AUTH_ALLOW_STAFF_SIGNUP":    "auth.allowStaffRegistration",
	"BANK_SESSION_SWEEP_MINUTES":      "session.sweepInterval",
	"BANK_SESSION_CACHE_ENABLED":      "session.cacheEnabled",
	"BANK_TRANSACTION_MAX_RETRIES":    "transaction.maxRetries",
	"BANK_SEED_ENABLED":               "seed.enabled",
	"BANK_SERVER_ALLOWED_ORIGINS":     "server.allowedOrigins",
	"BANK_SERVER_SHUTDOWN_TIMEOUT":    "server.shutdownTimeout",
	"BANK_SESSION_CACHE_TTL_SECONDS":  "session.cacheTTL",
	"BANK_AUTH_ACCESS_TOKEN_TTL_HOUR": "auth.accessTokenTTL",
}

// LoadConfig loads configuration for the environment named by BANK_ENV
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: no %s.yaml found, using defaults and environment\n", env)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)
	v.SetDefault("server.writeTimeout", 15)
	v.SetDefault("server.idleTimeout", 60)
	v.SetDefault("server.readHeaderTimeout", 10)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.path", "bankportal.db")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30)
	v.SetDefault("database.connMaxIdleTime", 15)
	v.SetDefault("database.queryTimeout", 5)
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1)
	v.SetDefault("database.slowQueryThreshold", 200)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.monitorInterval", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("transaction.maxRetries", 3)
	v.SetDefault("transaction.retryIntervalMs", 50)

	v.SetDefault("auth.jwtIssuer", "banking-portal")
	v.SetDefault("auth.jwtAudience", "banking-users")
	v.SetDefault("auth.sessionTokenTTL", 7*24)
	v.SetDefault("auth.accessTokenTTL", 24)
	v.SetDefault("auth.bcryptCost", 12)
	v.SetDefault("auth.allowStaffRegistration", false)

	v.SetDefault("session.sweepInterval", 15)
	v.SetDefault("session.cacheEnabled", true)
	v.SetDefault("session.cacheTTL", 30)

	v.SetDefault("seed.enabled", false)
}

func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides copies explicitly bound environment variables over file values
func processEnvOverrides(v *viper.Viper) {
	for envName, key := range envBindings {
		value, ok := os.LookupEnv(envName)
		if !ok || value == "" {
			continue
		}
		if key == "server.allowedOrigins" {
			v.Set(key, strings.Split(value, ","))
			continue
		}
		// integers must stay integers so processDurations can scale them
		if n, err := strconv.Atoi(value); err == nil {
			v.Set(key, n)
			continue
		}
		v.Set(key, value)
	}
}

// processDurations converts raw integer units from the config file into durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second
	config.Database.SlowQueryThreshold = time.Duration(config.Database.SlowQueryThreshold) * time.Millisecond
	config.Database.MonitorInterval = time.Duration(config.Database.MonitorInterval) * time.Second

	config.Auth.SessionTokenTTL = time.Duration(config.Auth.SessionTokenTTL) * time.Hour
	config.Auth.AccessTokenTTL = time.Duration(config.Auth.AccessTokenTTL) * time.Hour

	config.Session.SweepInterval = time.Duration(config.Session.SweepInterval) * time.Minute
	config.Session.CacheTTL = time.Duration(config.Session.CacheTTL) * time.Second
}
