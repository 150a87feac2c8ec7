package service

// KeyProvider supplies the symmetric key material for proof tokens. It is an
// injected dependency rather than process-global state so tests can supply
// deterministic keys and rotation can be modeled explicitly. Tokens sealed
// under a rotated-out secret simply fail to open.
type KeyProvider interface {
	// Key returns the 32-byte AEAD key derived from the server-wide secret.
	Key() [32]byte
}

// TokenCipher seals and opens opaque token blobs. The blob carries no external
// structure; everything needed for verification is inside the sealed payload.
type TokenCipher interface {
	// Seal encrypts the plaintext and returns an opaque base64 blob.
	Seal(plaintext []byte) (string, error)

	// Open decrypts a blob produced by Seal. Any tampering, truncation or
	// key mismatch yields an error.
	Open(blob string) ([]byte, error)
}
