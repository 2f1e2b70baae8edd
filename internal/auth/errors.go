package auth

import "errors"

var (
	// ErrStateMismatch is returned when the callback state does not match
	// the state stored in the session when the login started.
	ErrStateMismatch = errors.New("oauth2 state mismatch")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("authorization code is missing")

	// ErrProviderError is returned when the provider redirected back with an
	// "error" parameter instead of a code.
	ErrProviderError = errors.New("identity provider returned an error")
)
