// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// saltContext domain-separates the derived key from other uses of the same
// secret (the session cookie signature).
const saltContext = "gateway-sealer:"

// sealer is the private implementation of [Sealer].
type sealer struct {
	aead cipher.AEAD
}

// Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
)

// NewSealer derives a 256-bit key from secret with Argon2id and returns a
// [Sealer] using it. The salt is derived from scope, so instances sharing
// secret and scope derive the same key.
//
// Returns [ErrEmptySecret] when secret is empty.
func NewSealer(secret, scope string) (Sealer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	salt := sha256.Sum256([]byte(saltContext + scope))
	key := argon2.IDKey([]byte(secret), salt[:16], argonTime, argonMemory, argonThreads, argonKeyLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &sealer{aead: aead}, nil
}

// Seal implements [Sealer].
func (s *sealer) Seal(data any) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// nonce || ciphertext
	blob := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [Sealer].
func (s *sealer) Open(sealed string, target any) error {
	blob, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(blob) < nonceSize {
		return ErrCiphertextTooShort
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecrypt, err)
	}

	if err = json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}
