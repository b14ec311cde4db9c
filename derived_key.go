package passcrypt

import (
	"crypto/sha512"

	"golang.org/x/crypto/pbkdf2"
)

// DerivedKey holds a symmetric key derived from an encryption settings
// definition passphrase, together with the salt and key ID it was derived
// with. A DerivedKey is created per encode or decrypt call and must be
// destroyed as soon as that operation completes; when many passwords are
// encoded under the same definition and salt, a single key may be reused
// across those calls and destroyed afterwards.
type DerivedKey struct {
	key       []byte
	salt      []byte
	keyID     []byte
	destroyed bool
}

// DeriveKey derives a symmetric key from a key ID, a passphrase, and a
// 16-byte salt using the encoding version 0 parameters: PBKDF2 with
// HMAC-SHA-512, 32,768 iterations, and a 256-bit derived key. Equal inputs
// always yield an equal key; this is what lets Decrypt recompute the key
// from the salt stored in the encoded password.
func DeriveKey(keyID, passphrase, salt []byte) (*DerivedKey, error) {
	if err := ValidateKeyID(keyID); err != nil {
		return nil, err
	}
	if err := ValidatePassphrase(passphrase); err != nil {
		return nil, err
	}
	if err := ValidateSalt(salt); err != nil {
		return nil, err
	}

	key := pbkdf2.Key(passphrase, salt, KDFIterations, KeyLength, sha512.New)

	saltCopy := make([]byte, len(salt))
	copy(saltCopy, salt)
	idCopy := make([]byte, len(keyID))
	copy(idCopy, keyID)

	return &DerivedKey{
		key:   key,
		salt:  saltCopy,
		keyID: idCopy,
	}, nil
}

// Key returns the derived key bytes. The slice is owned by the DerivedKey
// and is zeroed when Destroy is called; callers must not retain or mutate
// it.
func (k *DerivedKey) Key() []byte {
	return k.key
}

// Salt returns the salt the key was derived with
func (k *DerivedKey) Salt() []byte {
	return k.salt
}

// KeyID returns the key ID the key was derived for
func (k *DerivedKey) KeyID() []byte {
	return k.keyID
}

// Destroyed reports whether Destroy has been called
func (k *DerivedKey) Destroyed() bool {
	return k.destroyed
}

// Destroy zeroes the key material. The DerivedKey refuses any further
// cryptographic use afterwards. Destroy is idempotent.
func (k *DerivedKey) Destroy() {
	Wipe(k.key)
	k.destroyed = true
}

// checkUsable returns an error if the key has been destroyed
func (k *DerivedKey) checkUsable() error {
	if k == nil {
		return NewValidationError("key", nil, "derived key cannot be nil")
	}
	if k.destroyed {
		return NewCryptoError("derive", ErrKeyDestroyed)
	}
	return nil
}
