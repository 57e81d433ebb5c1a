package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment: Development,
		Server:      ServerConfig{Port: 8080},
		Database:    DatabaseConfig{Driver: "sqlite", Path: ":memory:", MaxOpenConns: 1},
		Logger:      LoggerConfig{Level: "info"},
		Auth: AuthConfig{
			JWTSecret:       "dev-secret",
			BcryptCost:      12,
			SessionTokenTTL: 7 * 24 * time.Hour,
			AccessTokenTTL:  24 * time.Hour,
		},
		Session:     SessionConfig{SweepInterval: 15 * time.Minute},
		Transaction: TransactionConfig{MaxRetries: 3},
	}
}

func TestValidate(t *testing.T) {
	t.Run("should accept a complete configuration", func(t *testing.T) {
		assert.NoError(t, Validate(validConfig()))
	})

	t.Run("should reject a missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.JWTSecret = ""

		err := Validate(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwtSecret")
	})

	t.Run("should reject a short secret in production only", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, Validate(cfg))

		cfg.Environment = Production
		err := Validate(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 bytes")
	})

	t.Run("should require postgres connection details", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "postgres"

		err := Validate(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
		assert.Contains(t, err.Error(), "database name is required")
	})

	t.Run("should reject unknown drivers and bad bcrypt costs", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "oracle"
		cfg.Auth.BcryptCost = 2

		err := Validate(cfg)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Contains(t, err.Error(), "bcryptCost")
	})
}

func TestLoadConfig(t *testing.T) {
	writeConfig := func(t *testing.T, body string) string {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(body), 0o600))
		return dir
	}

	t.Run("should convert raw units into durations", func(t *testing.T) {
		dir := writeConfig(t, `
server:
  port: 9090
  shutdownTimeout: 5
auth:
  jwtSecret: from-file
  accessTokenTTL: 12
session:
  sweepInterval: 10
  cacheTTL: 20
`)
		t.Setenv("BANK_ENV", "test")
		t.Setenv("BANK_CONFIG_DIR", dir)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTokenTTL)
		assert.Equal(t, 7*24*time.Hour, cfg.Auth.SessionTokenTTL)
		assert.Equal(t, 10*time.Minute, cfg.Session.SweepInterval)
		assert.Equal(t, 20*time.Second, cfg.Session.CacheTTL)
	})

	t.Run("should let environment variables override the file", func(t *testing.T) {
		dir := writeConfig(t, `
auth:
  jwtSecret: from-file
database:
  driver: postgres
`)
		t.Setenv("BANK_ENV", "test")
		t.Setenv("BANK_CONFIG_DIR", dir)
		t.Setenv("BANK_JWT_SECRET", "from-env")
		t.Setenv("BANK_DB_DRIVER", "sqlite")
		t.Setenv("BANK_SESSION_SWEEP_MINUTES", "3")
		t.Setenv("BANK_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, 3*time.Minute, cfg.Session.SweepInterval)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	})
}
