// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package vault encrypts per-brand third-party secrets at rest and
// resolves a brand's full credential bundle on demand. Decrypted values
// live only in process memory and are handed exclusively to the publisher.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// devFallbackSeed keys the cipher when no root secret is configured.
// config.Load refuses to start production or staging without a real
// secret, so this only ever applies to development and tests.
const devFallbackSeed = "credential-dev-secret"

// Cipher symmetrically encrypts credential fields. The key is derived
// deterministically from the root secret so restarts can decrypt
// previously stored values.
type Cipher struct {
	key []byte
}

// NewCipher derives a cipher key from the configured root secret, falling
// back to the development seed when the secret is empty.
func NewCipher(rootSecret string) *Cipher {
	seed := rootSecret
	if seed == "" {
		seed = devFallbackSeed
	}
	key := sha256.Sum256([]byte(seed))
	return &Cipher{key: key[:]}
}

// Encrypt seals plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext). Encrypting the same value twice yields
// different ciphertexts.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("vault cipher init: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("vault nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It fails when the ciphertext is malformed or
// was sealed under a different root secret.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("vault decode: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("vault cipher init: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("vault decrypt: ciphertext too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("vault decrypt: %w", err)
	}
	return string(plaintext), nil
}
