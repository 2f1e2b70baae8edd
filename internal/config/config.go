// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the typed configuration of the gateway. It is bound
// from [Properties] and then layered with environment variables and
// command-line flags.
//
// Struct tags:
//   - koanf    : property key relative to the group prefix.
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Profile selects application-<Profile>.yml.
	// Env: BACKEND_ENV
	Profile string `env:"BACKEND_ENV"`

	// ConfigDir is the directory holding the YAML configuration files.
	// Env: CONFIG_DIR
	ConfigDir string `env:"CONFIG_DIR"`

	// EnvFile is the optional .env file loaded before everything else.
	// Env: ENV_FILE
	EnvFile string `env:"ENV_FILE"`

	// AppName is the client application name (jhipster.clientApp.name).
	AppName string

	// IPAddress is the first non-loopback IPv4 address of the host.
	IPAddress string

	Server    Server
	Security  Security
	Swagger   Swagger
	Consul    Consul
	Vault     Vault
	SSHTunnel SSHTunnel
	Storage   Storage `envPrefix:"STORAGE_"`
	Logging   Logging
	Tracing   Tracing
}

// Server holds listener and HTTP pipeline settings (server.*).
type Server struct {
	// Port is the HTTP listen port.
	// Env: NODE_SERVER_PORT
	Port int `koanf:"port" env:"NODE_SERVER_PORT"`

	// GRPCAddress enables the gRPC health server when non-empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `koanf:"grpc-address" env:"SERVER_GRPC_ADDRESS"`

	// ClientPath is the directory of the static client application.
	ClientPath string `koanf:"client-path"`

	ReadHeaderTimeout time.Duration `koanf:"read-header-timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown-timeout"`

	RateLimit RateLimit `koanf:"rate-limit"`
	CORS      CORS      `koanf:"-"`
}

// RateLimit configures the global request rate limiter. Zero RPS disables it.
type RateLimit struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// CORS lists the origins allowed to call the gateway from a browser.
// An empty list disables CORS handling.
type CORS struct {
	AllowedOrigins []string
}

// Security holds session and OIDC login settings (jhipster.security.*).
type Security struct {
	Session Session `koanf:"session"`
	OIDC    OIDC    `koanf:"-"`
}

// Session configures the server-side session store and cookie.
type Session struct {
	Secret string        `koanf:"secret"`
	Store  string        `koanf:"store"`
	MaxAge time.Duration `koanf:"max-age"`
}

// OIDC configures the authorization-code login against the identity provider.
type OIDC struct {
	IssuerURI    string   `koanf:"issuer-uri"`
	ClientID     string   `koanf:"client-id"`
	ClientSecret string   `koanf:"client-secret"`
	RedirectURI  string   `koanf:"redirect-uri"`
	Scopes       []string `koanf:"-"`
}

// Swagger configures the API documentation endpoints (jhipster.swagger.*).
type Swagger struct {
	Title                 string `koanf:"title"`
	Description           string `koanf:"description"`
	Version               string `koanf:"version"`
	Path                  string `koanf:"path"`
	DefaultIncludePattern string `koanf:"default-include-pattern"`
}

// Consul configures service registration (consul.*).
type Consul struct {
	Enabled     bool   `koanf:"enabled"`
	Host        string `koanf:"host"`
	Port        int    `koanf:"port"`
	Scheme      string `koanf:"scheme"`
	Token       string `koanf:"token"`
	ServiceName string `koanf:"service-name"`
	ServiceID   string `koanf:"service-id"`

	HealthCheckInterval            time.Duration `koanf:"health-check-interval"`
	HealthCheckTimeout             time.Duration `koanf:"health-check-timeout"`
	DeregisterCriticalServiceAfter time.Duration `koanf:"health-check-deregister-critical-service-after"`

	PreferIPAddress bool `koanf:"prefer-ip-address"`

	// Metadata is announced as service meta (consul.metadata-map.*).
	Metadata map[string]string `koanf:"-"`
}

// Vault configures secret loading (vault.*).
type Vault struct {
	Enabled bool   `koanf:"enabled"`
	URI     string `koanf:"uri"`
	Token   string `koanf:"token"`
	Scheme  string `koanf:"scheme"`

	KV                  VaultKV                  `koanf:"kv"`
	Configuration       VaultConfiguration       `koanf:"configuration"`
	ServiceRegistration VaultServiceRegistration `koanf:"service-registration"`
}

// VaultKV selects the application secret path <Backend>/data/<ApplicationName>.
type VaultKV struct {
	Enabled         bool   `koanf:"enabled"`
	Backend         string `koanf:"backend"`
	ApplicationName string `koanf:"application-name"`
}

// VaultConfiguration holds additional secret paths.
type VaultConfiguration struct {
	Infrastructure string `koanf:"infrastructure"`
}

// VaultServiceRegistration mirrors the vault-side registration settings.
type VaultServiceRegistration struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service-name"`
	ServiceID   string `koanf:"service-id"`
}

// SSHTunnel configures the development reverse tunnel (sshTunnel.*).
type SSHTunnel struct {
	VPSHost     string `koanf:"vpsHost"`
	VPSUser     string `koanf:"vpsUser"`
	VPSPassword string `koanf:"vpsPassword"`
	HostKey     string `koanf:"hostKey"`
	ServicePort int    `koanf:"servicePort"`
	LocalPort   int    `koanf:"localPort"`
	DevSuffix   string `koanf:"devSuffix"`
}

// Storage groups the configuration for the persistence backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `koanf:"db" envPrefix:"DB_"`

	// Redis holds the optional Redis session store settings.
	Redis Redis `koanf:"redis" envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver is one of "pgx", "sqlite3" or "mysql".
	// Env: STORAGE_DB_DRIVER
	Driver string `koanf:"driver" env:"DRIVER"`

	// DSN is the driver-specific Data Source Name.
	// Env: STORAGE_DB_DSN
	DSN string `koanf:"dsn" env:"DSN"`
}

// Redis holds connection settings for the Redis session store.
type Redis struct {
	// Env: STORAGE_REDIS_ADDR
	Addr     string `koanf:"addr" env:"ADDR"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// Logging configures the log level.
type Logging struct {
	// Env: LOG_LEVEL
	Level string `koanf:"level" env:"LOG_LEVEL"`
}

// Tracing configures the OTLP trace exporter. An empty endpoint disables it.
type Tracing struct {
	// Env: TRACING_ENDPOINT
	Endpoint    string `koanf:"endpoint" env:"TRACING_ENDPOINT"`
	ServiceName string `koanf:"service-name"`
}

// GetStructuredConfig binds props and layers the remaining sources on top
// in the following priority order (last source wins for non-zero fields):
//  1. Properties
//  2. Environment variables
//  3. Command-line flags in args
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(props *Properties, args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withProperties(props).
		withEnv().
		withFlags(args).
		build()
}

// GetVaultConfig binds only the vault.* group of props. Secrets are read
// before the full configuration is bound and validated.
func GetVaultConfig(props *Properties) (Vault, error) {
	cfg, err := bind(props)
	if err != nil {
		return Vault{}, err
	}
	return cfg.Vault, nil
}

// GetBootstrapConfig resolves the settings needed before properties can be
// loaded (profile, config directory, env file) from the environment and
// args. The result is not validated.
func GetBootstrapConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withValues(&StructuredConfig{ConfigDir: defaultConfigDir, EnvFile: defaultEnvFile, Profile: defaultProfile}).
		withEnv().
		withFlags(args).
		merge()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

const defaultConfigDir = "config"
