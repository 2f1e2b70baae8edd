package adapter

import "errors"

// Errors returned by the outbound adapters. Non-2xx responses are mapped to
// these values by mapHTTPError so callers can match them with [errors.Is].
var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrUnavailable      = errors.New("upstream unavailable")

	// ErrSecretNotFound is returned by the secret store for a path that does
	// not exist. It is reported together with ErrNotFound.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrMalformedResponse indicates a 2xx response whose body could not be
	// interpreted.
	ErrMalformedResponse = errors.New("malformed response")
)
