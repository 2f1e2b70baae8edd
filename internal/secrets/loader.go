// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secrets overlays secrets from the secret store onto the gateway
// configuration at startup.
package secrets

import (
	"context"
	"os"
	"strings"

	"github.com/MKhiriev/go-gateway/internal/adapter"
	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/internal/logger"
)

// Loader reads the application and infrastructure secrets and overlays them
// onto [config.Properties] and the process environment.
type Loader struct {
	store  adapter.SecretStore
	setenv func(key, value string) error
	logger *logger.Logger
}

// Option customizes a [Loader].
type Option func(*Loader)

// WithSetenv replaces os.Setenv. Intended for tests.
func WithSetenv(fn func(key, value string) error) Option {
	return func(l *Loader) {
		l.setenv = fn
	}
}

// NewLoader returns a Loader reading from store.
func NewLoader(store adapter.SecretStore, log *logger.Logger, opts ...Option) *Loader {
	l := &Loader{
		store:  store,
		setenv: os.Setenv,
		logger: log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads <kv.backend>/data/<kv.application-name> and the infrastructure
// path when vault and its KV engine are enabled, and overlays every returned
// pair. Existing unrelated keys are kept.
//
// Load never fails: a path that cannot be read is logged and skipped, and
// startup continues with the configuration loaded so far. It returns the
// number of keys overlaid.
func (l *Loader) Load(ctx context.Context, props *config.Properties, vaultCfg config.Vault) int {
	if !vaultCfg.Enabled || !vaultCfg.KV.Enabled {
		l.logger.Info().Msg("vault secrets disabled, using local configuration only")
		return 0
	}

	overlaid := 0
	for _, path := range SecretPaths(vaultCfg) {
		secret, err := l.store.Read(ctx, path)
		if err != nil {
			l.logger.Err(err).Str("path", path).Msg("error loading secrets from vault, continuing with local configuration")
			continue
		}

		n := l.overlay(props, secret)
		overlaid += n
		l.logger.Info().Str("path", path).Int("keys", n).Msg("secrets loaded from vault")
	}

	return overlaid
}

func (l *Loader) overlay(props *config.Properties, secret map[string]any) int {
	flat := config.Flatten(secret)
	for key, value := range flat {
		props.Set(key, value)

		if err := l.setenv(key, config.FormatValue(value)); err != nil {
			l.logger.Warn().Err(err).Str("key", key).Msg("error exporting secret to environment")
		}
	}
	return len(flat)
}

// SecretPaths returns the secret store paths read by [Loader.Load]: the
// application path and, when configured, the infrastructure path.
func SecretPaths(vaultCfg config.Vault) []string {
	paths := []string{ApplicationPath(vaultCfg.KV)}
	if infra := strings.TrimSpace(vaultCfg.Configuration.Infrastructure); infra != "" {
		paths = append(paths, KVv2DataPath(infra))
	}
	return paths
}

// ApplicationPath returns <backend>/data/<application-name>.
func ApplicationPath(kv config.VaultKV) string {
	return strings.Trim(kv.Backend, "/") + "/data/" + strings.Trim(kv.ApplicationName, "/")
}

// KVv2DataPath rewrites <mount>/<rest> into the KV v2 read path
// <mount>/data/<rest>. Paths that already contain the data segment are
// returned unchanged.
func KVv2DataPath(path string) string {
	path = strings.Trim(path, "/")
	mount, rest, found := strings.Cut(path, "/")
	if !found || rest == "" {
		return path
	}
	if rest == "data" || strings.HasPrefix(rest, "data/") {
		return path
	}
	return mount + "/data/" + rest
}
