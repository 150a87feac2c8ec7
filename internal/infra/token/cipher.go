// Package token implements the symmetric sealing of proof-of-presence tokens.
// Tokens are self-contained: the sealed blob is the only state, so nothing has
// to be persisted between issuance and verification.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"swapmeet/internal/domain/service"
	"swapmeet/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrMalformedBlob is returned when a blob cannot be decoded or authenticated.
var ErrMalformedBlob = errors.New("malformed or tampered token blob")

// staticKeyProvider derives a fixed 32-byte key from the server-wide secret.
// Rotation happens out of band by restarting with a new secret; blobs sealed
// under the prior secret stop opening.
type staticKeyProvider struct {
	key [32]byte
}

// NewKeyProvider derives the AEAD key as SHA-256 of the server-wide secret.
func NewKeyProvider(secret string) service.KeyProvider {
	return &staticKeyProvider{key: sha256.Sum256([]byte(secret))}
}

// Key returns the derived key.
func (p *staticKeyProvider) Key() [32]byte {
	return p.key
}

type aeadCipher struct {
	keys service.KeyProvider
}

// NewCipher creates a TokenCipher sealing with ChaCha20-Poly1305 under the
// provider's key. The random nonce is prepended to the ciphertext and the
// whole blob is base64url-encoded.
func NewCipher(keys service.KeyProvider) service.TokenCipher {
	return &aeadCipher{keys: keys}
}

// Seal encrypts the plaintext and returns an opaque base64 blob.
func (c *aeadCipher) Seal(plaintext []byte) (string, error) {
	key := c.keys.Key()
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return "", errors.Wrap(err, "failed to construct AEAD")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "failed to generate nonce")
	}

	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a blob produced by Seal.
func (c *aeadCipher) Open(blob string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrMalformedBlob
	}

	key := c.keys.Key()
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct AEAD")
	}

	if len(raw) < aead.NonceSize() {
		return nil, ErrMalformedBlob
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrMalformedBlob
	}

	return plaintext, nil
}
