package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidIDToken is returned when an ID token is malformed or its claims
// fail validation.
var ErrInvalidIDToken = errors.New("invalid ID token")

// ParseIDTokenClaims parses an OIDC ID token received directly from the
// token endpoint over TLS and validates its registered claims.
//
// The signature is not verified: the token was obtained by the gateway itself
// from the provider's token endpoint, which the OpenID Connect core
// specification allows as the validation source. Validation includes:
//   - Issuer (iss) equal to issuer
//   - Audience (aud) containing clientID
//   - Expiration (exp) present and in the future (with one minute leeway)
//   - Subject (sub) present
//
// Parameters:
//
//	rawToken - the compact serialized ID token
//	issuer   - expected issuer (the configured issuer-uri)
//	clientID - expected audience (the configured client-id)
//
// Example usage:
//
//	claims, err := utils.ParseIDTokenClaims(tokens.IDToken, issuerURI, clientID)
func ParseIDTokenClaims(rawToken, issuer, clientID string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	validator := jwt.NewValidator(
		jwt.WithIssuer(issuer),
		jwt.WithAudience(clientID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Minute),
	)
	if err := validator.Validate(claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}
	if sub == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidIDToken)
	}

	return claims, nil
}

// ClaimString returns the string claim name, or "" when it is absent or not
// a string.
func ClaimString(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

// ClaimStrings returns a string-list claim such as "groups" or "roles".
// A single string is returned as a one-element slice.
func ClaimStrings(claims jwt.MapClaims, name string) []string {
	switch v := claims[name].(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
