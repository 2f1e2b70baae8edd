package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for users, sessions and trace ids.
type UUIDGenerator struct {
}

// NewUUIDGenerator returns a ready-to-use generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to a random UUIDv4
// when the clock source fails. Used for user ids and trace ids.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateRandom returns a random UUIDv4. Used where the identifier must not
// be guessable from its creation time (session ids, OIDC state).
func (g *UUIDGenerator) GenerateRandom() string {
	return uuid.NewString()
}
