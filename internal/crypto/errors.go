package crypto

import "errors"

var (
	// ErrEmptySecret is returned by [NewSealer] when no secret is configured.
	ErrEmptySecret = errors.New("sealer secret is empty")

	// ErrCiphertextTooShort is returned when a sealed value is shorter than
	// the GCM nonce.
	ErrCiphertextTooShort = errors.New("ciphertext too short")

	// ErrDecrypt is returned when the authentication tag does not match:
	// the value was sealed under another key or was altered.
	ErrDecrypt = errors.New("decryption failed")
)
