package passcrypt

import (
	"fmt"
)

// Input validation helpers shared by the encode, decode, and decrypt paths

// ValidateKeyID checks that a key ID is non-empty and fits the one-byte
// length field of the encoded representation
func ValidateKeyID(keyID []byte) error {
	if len(keyID) == 0 {
		return &ValidationError{
			Field:   "keyID",
			Message: "key ID cannot be empty",
		}
	}
	if len(keyID) > MaxKeyIDLength {
		return &ValidationError{
			Field:   "keyID",
			Value:   len(keyID),
			Message: fmt.Sprintf("key ID too long: got %d bytes, maximum is %d bytes", len(keyID), MaxKeyIDLength),
		}
	}
	return nil
}

// ValidatePassphrase checks that a passphrase is non-empty
func ValidatePassphrase(passphrase []byte) error {
	if len(passphrase) == 0 {
		return &ValidationError{
			Field:   "passphrase",
			Message: "passphrase cannot be empty",
		}
	}
	return nil
}

// ValidateClearText checks that a clear-text password is non-empty
func ValidateClearText(clearText []byte) error {
	if len(clearText) == 0 {
		return &ValidationError{
			Field:   "clearText",
			Message: "clear-text password cannot be empty",
		}
	}
	return nil
}

// ValidateSalt checks that a key-derivation salt has the exact length
// required by encoding version 0
func ValidateSalt(salt []byte) error {
	if len(salt) != SaltLength {
		return &ValidationError{
			Field:   "salt",
			Value:   len(salt),
			Message: fmt.Sprintf("invalid salt size: got %d bytes, expected exactly %d bytes", len(salt), SaltLength),
		}
	}
	return nil
}

// ValidateIV checks that an initialization vector has the exact length
// required by encoding version 0
func ValidateIV(iv []byte) error {
	if len(iv) != IVLength {
		return &ValidationError{
			Field:   "iv",
			Value:   len(iv),
			Message: fmt.Sprintf("invalid IV size: got %d bytes, expected exactly %d bytes", len(iv), IVLength),
		}
	}
	return nil
}

// ValidateKey checks that a symmetric key has the exact length required by
// encoding version 0
func ValidateKey(key []byte) error {
	if len(key) != KeyLength {
		return &ValidationError{
			Field:   "key",
			Value:   len(key),
			Message: fmt.Sprintf("invalid key size: got %d bytes, expected exactly %d bytes", len(key), KeyLength),
		}
	}
	return nil
}
