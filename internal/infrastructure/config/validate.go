package config

import (
	"errors"
	"fmt"
	"strings"
)

// MinProductionSecretLength is the shortest JWT secret accepted in production
const MinProductionSecretLength = 32

// Validate checks the loaded configuration and reports every problem at once
func Validate(c *Config) error {
	var problems []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			problems = append(problems, errors.New("database host is required"))
		}
		if c.Database.Username == "" {
			problems = append(problems, errors.New("database username is required"))
		}
		if c.Database.Database == "" {
			problems = append(problems, errors.New("database name is required"))
		}
	case "sqlite":
		if c.Database.Path == "" {
			problems = append(problems, errors.New("database path is required for sqlite"))
		}
	default:
		problems = append(problems, fmt.Errorf("unsupported database driver: %q", c.Database.Driver))
	}
	if c.Database.MaxOpenConns <= 0 {
		problems = append(problems, fmt.Errorf("max open connections must be positive, got: %d", c.Database.MaxOpenConns))
	}

	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Errorf("invalid log level: %q", c.Logger.Level))
	}

	if c.Auth.JWTSecret == "" {
		problems = append(problems, errors.New("auth.jwtSecret is required (set BANK_JWT_SECRET)"))
	} else if c.IsProduction() && len(c.Auth.JWTSecret) < MinProductionSecretLength {
		problems = append(problems, fmt.Errorf("auth.jwtSecret must be at least %d bytes in production", MinProductionSecretLength))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		problems = append(problems, fmt.Errorf("auth.bcryptCost must be between 4 and 31, got: %d", c.Auth.BcryptCost))
	}
	if c.Auth.SessionTokenTTL <= 0 {
		problems = append(problems, errors.New("auth.sessionTokenTTL must be positive"))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		problems = append(problems, errors.New("auth.accessTokenTTL must be positive"))
	}

	if c.Session.SweepInterval <= 0 {
		problems = append(problems, errors.New("session.sweepInterval must be positive"))
	}
	if c.Transaction.MaxRetries < 0 {
		problems = append(problems, fmt.Errorf("transaction.maxRetries must be non-negative, got: %d", c.Transaction.MaxRetries))
	}

	return errors.Join(problems...)
}
