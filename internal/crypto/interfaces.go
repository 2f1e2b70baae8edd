// Package crypto seals values for storage outside the process.
//
// A sealed value is the JSON encoding of the input encrypted with
// AES-256-GCM under a key derived from a shared secret with Argon2id. Every
// gateway instance configured with the same secret opens the values sealed
// by the others.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Sealer encrypts values into opaque strings and back.
type Sealer interface {
	// Seal serializes data to JSON and encrypts it. The result is the
	// Base64 (standard encoding) of nonce ‖ ciphertext.
	Seal(data any) (string, error)

	// Open decrypts a value produced by Seal and unmarshals it into target,
	// which must be a non-nil pointer as for [encoding/json.Unmarshal].
	// A value sealed under another key fails with [ErrDecrypt].
	Open(sealed string, target any) error
}
