// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// gateway HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// the "detail" member of problem responses. Keeping them in one place ensures
// consistent wording throughout the API.
package app

const (
	// MsgNotAuthenticated is returned when a request needs a logged-in user
	// but its session has none.
	MsgNotAuthenticated = "no authenticated session"

	// MsgLoginNotConfigured is returned by the login routes when no OIDC
	// issuer is configured.
	MsgLoginNotConfigured = "login is not configured"

	// MsgIdentityProviderUnavailable is returned when the OIDC discovery
	// document cannot be fetched at login.
	MsgIdentityProviderUnavailable = "identity provider is unavailable"

	// MsgRateLimitExceeded is returned with 429 when the request rate limit
	// is exhausted.
	MsgRateLimitExceeded = "rate limit exceeded, please retry shortly"
)
