package passcrypt

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodedPassword is the immutable decoded form of an encoded password
// blob. It exposes the structural fields without requiring a passphrase;
// Decrypt recovers the original clear text when the right passphrase is
// supplied. Instances are safe for concurrent use: nothing mutates them
// after construction.
type EncodedPassword struct {
	encoded       []byte
	version       EncodingVersion
	paddingLength int
	keySalt       []byte
	iv            []byte
	keyID         []byte
	ciphertext    []byte
}

// Version returns the encoding version the password was produced with
func (p *EncodedPassword) Version() EncodingVersion {
	return p.version
}

// PaddingLength returns the number of zero bytes that were appended to the
// clear text before encryption
func (p *EncodedPassword) PaddingLength() int {
	return p.paddingLength
}

// KeySalt returns a copy of the key-derivation salt
func (p *EncodedPassword) KeySalt() []byte {
	return cloneBytes(p.keySalt)
}

// IV returns a copy of the initialization vector
func (p *EncodedPassword) IV() []byte {
	return cloneBytes(p.iv)
}

// KeyID returns a copy of the raw key ID naming the encryption settings
// definition whose passphrase was used. The ID is opaque to the codec and
// is not itself secret.
func (p *EncodedPassword) KeyID() []byte {
	return cloneBytes(p.keyID)
}

// KeyIDHex returns the upper-case hexadecimal representation of the key ID
func (p *EncodedPassword) KeyIDHex() string {
	return strings.ToUpper(hex.EncodeToString(p.keyID))
}

// Ciphertext returns a copy of the authenticated ciphertext, tag included
func (p *EncodedPassword) Ciphertext() []byte {
	return cloneBytes(p.ciphertext)
}

// EncodedBytes returns a copy of the complete raw encoded representation
func (p *EncodedPassword) EncodedBytes() []byte {
	return cloneBytes(p.encoded)
}

// StringRepresentation returns the textual form of the encoded password:
// the base64 encoding of the raw bytes, preceded by the "{AES256}" prefix
// when includeScheme is true
func (p *EncodedPassword) StringRepresentation(includeScheme bool) string {
	return encodeTextForm(p.encoded, includeScheme)
}

// String returns a descriptive representation. The encoded blob is not
// secret without its passphrase, so including it here is safe.
func (p *EncodedPassword) String() string {
	return fmt.Sprintf("EncodedPassword(version=%d, paddingLength=%d, keyIDHex=%q, stringRepresentation=%q)",
		p.version, p.paddingLength, p.KeyIDHex(), p.StringRepresentation(true))
}

// Encode encrypts a clear-text password under the passphrase associated
// with the given key ID, generating a fresh random salt and IV. The key ID
// and clear text must be non-empty and the key ID must be at most 255
// bytes.
func Encode(keyID, passphrase, clearText []byte) (*EncodedPassword, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}
	iv, err := GenerateIV()
	if err != nil {
		return nil, err
	}
	return EncodeWithSaltAndIV(keyID, passphrase, salt, iv, clearText)
}

// EncodeString is a convenience form of Encode that accepts the key ID as
// a hexadecimal string. Local copies of the passphrase and clear text are
// wiped before returning.
func EncodeString(keyIDHex, passphrase, clearText string) (*EncodedPassword, error) {
	keyID, err := hex.DecodeString(keyIDHex)
	if err != nil {
		return nil, NewParseError(0,
			fmt.Sprintf("key ID is not a valid hexadecimal string: %v", err), err)
	}

	passphraseBytes := []byte(passphrase)
	clearTextBytes := []byte(clearText)
	defer Wipe(passphraseBytes)
	defer Wipe(clearTextBytes)

	return Encode(keyID, passphraseBytes, clearTextBytes)
}

// EncodeWithSaltAndIV encrypts a clear-text password using a caller-chosen
// salt and IV. Pinning the salt and IV makes the output deterministic,
// which is intended for tests and for re-encoding checks; production
// callers should let Encode pick fresh random values, since reusing an IV
// under the same key breaks GCM's guarantees.
func EncodeWithSaltAndIV(keyID, passphrase, salt, iv, clearText []byte) (*EncodedPassword, error) {
	key, err := DeriveKey(keyID, passphrase, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return EncodeWithKey(key, iv, clearText)
}

// EncodeWithKey encrypts a clear-text password with a pre-derived key,
// amortizing the derivation cost across many encodes under the same
// definition and salt. The caller remains responsible for destroying the
// key and for supplying a fresh IV per call.
func EncodeWithKey(key *DerivedKey, iv, clearText []byte) (*EncodedPassword, error) {
	if err := key.checkUsable(); err != nil {
		return nil, err
	}
	if err := ValidateIV(iv); err != nil {
		return nil, err
	}
	if err := ValidateClearText(clearText); err != nil {
		return nil, err
	}

	padded, paddingLength := padClearText(clearText)
	if paddingLength > 0 {
		// padded is a fresh buffer holding the clear text
		defer Wipe(padded)
	}

	engine, err := NewAESGCMEngine(key.key)
	if err != nil {
		return nil, err
	}

	ciphertext, err := engine.Encrypt(iv, padded)
	if err != nil {
		return nil, err
	}

	encoded := marshalEncodedPassword(paddingLength, key.salt, iv, key.keyID, ciphertext)
	return parseEncodedPassword(encoded)
}

// Decode parses the textual form of an encoded password: the
// base64-encoded raw representation, optionally preceded by the "{AES256}"
// prefix. No passphrase is needed; the result is still encrypted.
func Decode(encoded string) (*EncodedPassword, error) {
	if len(encoded) == 0 {
		return nil, NewValidationError("encoded", nil, "encoded password cannot be empty")
	}

	raw, err := decodeTextForm(encoded)
	if err != nil {
		return nil, err
	}
	return parseEncodedPassword(raw)
}

// DecodeBytes parses the raw binary form of an encoded password
func DecodeBytes(encoded []byte) (*EncodedPassword, error) {
	if len(encoded) == 0 {
		return nil, NewValidationError("encoded", nil, "encoded password cannot be empty")
	}
	return parseEncodedPassword(encoded)
}

// Decrypt recovers the original clear-text password by re-deriving the key
// from the supplied passphrase and the stored salt and key ID. It may be
// called repeatedly; the aggregate is not mutated. A wrong passphrase and
// tampered data are indistinguishable: both surface as an authentication
// error. The caller owns wiping the returned clear text.
func (p *EncodedPassword) Decrypt(passphrase []byte) ([]byte, error) {
	key, err := DeriveKey(p.keyID, passphrase, p.keySalt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	return p.DecryptWithKey(key)
}

// DecryptWithKey recovers the original clear-text password using a
// pre-derived key. The key's salt and ID must match the ones stored in the
// encoded password, otherwise authentication fails.
func (p *EncodedPassword) DecryptWithKey(key *DerivedKey) ([]byte, error) {
	if err := key.checkUsable(); err != nil {
		return nil, err
	}

	engine, err := NewAESGCMEngine(key.key)
	if err != nil {
		return nil, err
	}

	// Authentication must succeed before any padding byte is trusted.
	padded, err := engine.Decrypt(p.iv, p.ciphertext)
	if err != nil {
		return nil, NewAuthenticationError("password decryption failed")
	}

	clearText, err := stripPadding(padded, p.paddingLength)
	if err != nil {
		Wipe(padded)
		return nil, err
	}
	if p.paddingLength > 0 {
		// stripPadding returned a copy; the padded original is no longer
		// needed.
		Wipe(padded)
	}

	return clearText, nil
}

// Matches reports whether the provided clear text is the password this
// blob was encoded from, given the definition passphrase. An
// authentication or padding failure means "no" rather than an error; any
// other failure propagates. The comparison is constant time and the
// recovered clear text is wiped before returning.
func (p *EncodedPassword) Matches(clearText, passphrase []byte) (bool, error) {
	decrypted, err := p.Decrypt(passphrase)
	if err != nil {
		if IsAuthenticationError(err) || IsPaddingError(err) {
			return false, nil
		}
		return false, err
	}
	defer Wipe(decrypted)

	if len(decrypted) != len(clearText) {
		return false, nil
	}
	return subtle.ConstantTimeCompare(decrypted, clearText) == 1, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
