// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
)

// Supported session stores.
const (
	SessionStoreSQL   = "sql"
	SessionStoreRedis = "redis"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidServerConfigs, cfg.Server.Port)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Security.Session.Store {
	case SessionStoreSQL:
	case SessionStoreRedis:
		if cfg.Storage.Redis.Addr == "" {
			return fmt.Errorf("%w: redis session store requires storage.redis.addr", ErrInvalidSecurityConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown session store %q", ErrInvalidSecurityConfigs, cfg.Security.Session.Store)
	}
	if cfg.Security.Session.MaxAge <= 0 {
		return fmt.Errorf("%w: session max-age must be positive", ErrInvalidSecurityConfigs)
	}

	if !strings.HasPrefix(cfg.Swagger.Path, "/") {
		return fmt.Errorf("%w: path %q must start with /", ErrInvalidSwaggerConfigs, cfg.Swagger.Path)
	}
	if _, err := regexp.Compile(cfg.Swagger.DefaultIncludePattern); err != nil {
		return fmt.Errorf("%w: include pattern: %w", ErrInvalidSwaggerConfigs, err)
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLoggingConfigs, err)
	}

	return nil
}
