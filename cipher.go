package passcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// CipherEngine provides AEAD encryption/decryption for the codec. The
// encode, decode, and decrypt paths only depend on this interface, so the
// core logic can be exercised with a deterministic stub engine in tests.
type CipherEngine interface {
	// Encrypt encrypts plaintext with the given IV and returns the
	// ciphertext with the authentication tag appended
	Encrypt(iv, plaintext []byte) ([]byte, error)

	// Decrypt decrypts ciphertext (tag included) with the given IV
	Decrypt(iv, ciphertext []byte) ([]byte, error)

	// NonceSize returns the size of IVs in bytes
	NonceSize() int

	// Overhead returns the authentication tag size
	Overhead() int
}

// AESGCMEngine implements CipherEngine using AES-256-GCM with the 16-byte
// IV required by encoding version 0. Note that the deployed format feeds
// the full 128-bit IV to GCM rather than the usual 96-bit nonce, so the
// GCM instance is constructed with an explicit nonce size.
type AESGCMEngine struct {
	aead cipher.AEAD
}

// NewAESGCMEngine creates a new AES-256-GCM cipher engine for the given
// 32-byte key
func NewAESGCMEngine(key []byte) (*AESGCMEngine, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, NewCryptoError("encrypt", fmt.Errorf("failed to create AES cipher: %w", err))
	}

	aead, err := cipher.NewGCMWithNonceSize(block, IVLength)
	if err != nil {
		return nil, NewCryptoError("encrypt", fmt.Errorf("failed to create GCM: %w", err))
	}

	return &AESGCMEngine{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM. The same IV must never be
// reused with the same key for two different plaintexts.
func (e *AESGCMEngine) Encrypt(iv, plaintext []byte) ([]byte, error) {
	if len(iv) != e.NonceSize() {
		return nil, NewValidationError("iv", len(iv),
			fmt.Sprintf("IV must be %d bytes, got %d", e.NonceSize(), len(iv)))
	}

	return e.aead.Seal(nil, iv, plaintext, nil), nil
}

// Decrypt decrypts ciphertext using AES-256-GCM. A tag mismatch is reported
// as ErrAuthenticationFailed regardless of whether the cause was a wrong
// key, a wrong IV, or tampered data.
func (e *AESGCMEngine) Decrypt(iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != e.NonceSize() {
		return nil, NewValidationError("iv", len(iv),
			fmt.Sprintf("IV must be %d bytes, got %d", e.NonceSize(), len(iv)))
	}

	plaintext, err := e.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}

// NonceSize returns the IV size required by encoding version 0 (16 bytes)
func (e *AESGCMEngine) NonceSize() int {
	return e.aead.NonceSize()
}

// Overhead returns the authentication tag size (16 bytes)
func (e *AESGCMEngine) Overhead() int {
	return e.aead.Overhead()
}

// GenerateSalt generates a random key-derivation salt of the length
// required by encoding version 0
func GenerateSalt() ([]byte, error) {
	return randomBytes(SaltLength, "salt")
}

// GenerateIV generates a random initialization vector of the length
// required by encoding version 0
func GenerateIV() ([]byte, error) {
	return randomBytes(IVLength, "IV")
}

func randomBytes(n int, what string) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, NewCryptoError("random", fmt.Errorf("failed to generate %s: %w", what, err))
	}
	return b, nil
}
