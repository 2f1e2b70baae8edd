// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound HTTP integrations of the gateway:
// the secret store (Vault), the service registry (Consul) and the OpenID
// Connect provider.
//
// Each integration is exposed through a small interface so that the startup
// steps depend only on the capability they need. All implementations use
// resty, carry no retry logic and map non-2xx responses to the sentinel
// errors in errors.go (e.g. [ErrNotFound] for 404, [ErrPermissionDenied]
// for 403, [ErrUnavailable] for 5xx).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// SecretStore reads key/value secrets from a path.
type SecretStore interface {
	// Read returns the key/value pairs stored at path. Returns an error
	// wrapping [ErrSecretNotFound] and [ErrNotFound] when the path does not
	// exist.
	Read(ctx context.Context, path string) (map[string]any, error)
}

// ServiceRegistry announces and withdraws service instances.
type ServiceRegistry interface {
	// Register announces the instance described by reg. Registering the same
	// id again replaces the previous registration.
	Register(ctx context.Context, reg models.ServiceRegistration) error

	// Deregister withdraws the instance with the given id.
	Deregister(ctx context.Context, id string) error
}

// IdentityProvider talks to an OpenID Connect provider.
type IdentityProvider interface {
	// Discover fetches the provider metadata from
	// <issuer>/.well-known/openid-configuration.
	Discover(ctx context.Context) (models.ProviderMetadata, error)

	// Exchange redeems an authorization code at tokenEndpoint.
	Exchange(ctx context.Context, tokenEndpoint, code, redirectURI string) (models.TokenResponse, error)
}
