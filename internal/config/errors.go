package config

import "errors"

// Errors returned while loading properties or validating [StructuredConfig].
var (
	// ErrReadConfigFile indicates that a YAML configuration file could not be
	// read or parsed.
	ErrReadConfigFile = errors.New("error reading configuration file")
	// ErrBindConfig indicates that properties could not be bound into
	// [StructuredConfig].
	ErrBindConfig = errors.New("error binding configuration properties")
	// ErrInvalidServerConfigs indicates invalid listener settings
	// (for example, a port outside 1..65535).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an unsupported driver or empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSecurityConfigs indicates invalid session settings
	// (for example, an unknown session store).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidSwaggerConfigs indicates an invalid documentation path or
	// include pattern.
	ErrInvalidSwaggerConfigs = errors.New("invalid swagger configuration")
	// ErrInvalidLoggingConfigs indicates an unknown log level.
	ErrInvalidLoggingConfigs = errors.New("invalid logging configuration")
)
