package service

import "errors"

var (
	// ErrInvalidClaims is returned when the ID token claims carry neither a
	// preferred_username nor a subject to derive the login from.
	ErrInvalidClaims = errors.New("invalid identity claims")
)
