package passcrypt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Binary framing for encoding version 0. The layout is fixed:
//
//	offset 0      1 byte   version (bits 7-4) | padding length (bits 3-0)
//	offset 1      16 bytes key-derivation salt
//	offset 17     16 bytes initialization vector
//	offset 33     1 byte   key ID length N
//	offset 34     N bytes  key ID
//	offset 34+N   rest     authenticated ciphertext (tag included)
//
// Offsets after the fixed header are computed from the previous field's
// end, since the key ID length varies per instance.

// marshalEncodedPassword serializes the component fields into a raw
// encoded representation
func marshalEncodedPassword(paddingLength int, salt, iv, keyID, ciphertext []byte) []byte {
	buf := make([]byte, 0, 1+len(salt)+len(iv)+1+len(keyID)+len(ciphertext))
	buf = append(buf, byte(int(EncodingVersion0)<<4)|byte(paddingLength&0x0F))
	buf = append(buf, salt...)
	buf = append(buf, iv...)
	buf = append(buf, byte(len(keyID)))
	buf = append(buf, keyID...)
	buf = append(buf, ciphertext...)
	return buf
}

// parseEncodedPassword deserializes a raw encoded representation into a
// populated, still-encrypted EncodedPassword
func parseEncodedPassword(encoded []byte) (*EncodedPassword, error) {
	if len(encoded) < MinEncodedLength {
		return nil, NewParseError(0,
			fmt.Sprintf("encoded password is %d bytes; a valid encoded password is at least %d bytes",
				len(encoded), MinEncodedLength),
			ErrTooShort)
	}

	version := EncodingVersion(encoded[0]>>4) & 0x0F
	if version != EncodingVersion0 {
		return nil, NewParseError(0,
			fmt.Sprintf("unsupported encoding version %d; only version %d is supported",
				version, EncodingVersion0),
			ErrUnsupportedVersion)
	}
	paddingLength := int(encoded[0] & 0x0F)

	pos := 1
	salt := make([]byte, SaltLength)
	copy(salt, encoded[pos:pos+SaltLength])
	pos += SaltLength

	iv := make([]byte, IVLength)
	copy(iv, encoded[pos:pos+IVLength])
	pos += IVLength

	// The declared key ID must fit, and at least one ciphertext byte must
	// follow it.
	idLengthPos := pos
	idLength := int(encoded[idLengthPos])
	if len(encoded) < idLengthPos+2+idLength {
		return nil, NewParseError(idLengthPos,
			fmt.Sprintf("encoded password is %d bytes; too short for a %d-byte key ID",
				len(encoded), idLength),
			ErrTooShort)
	}

	keyID := make([]byte, idLength)
	copy(keyID, encoded[idLengthPos+1:idLengthPos+1+idLength])

	ciphertextPos := idLengthPos + 1 + idLength
	ciphertext := make([]byte, len(encoded)-ciphertextPos)
	copy(ciphertext, encoded[ciphertextPos:])

	raw := make([]byte, len(encoded))
	copy(raw, encoded)

	return &EncodedPassword{
		encoded:       raw,
		version:       version,
		paddingLength: paddingLength,
		keySalt:       salt,
		iv:            iv,
		keyID:         keyID,
		ciphertext:    ciphertext,
	}, nil
}

// decodeTextForm strips the optional "{AES256}" prefix and base64-decodes
// the remainder
func decodeTextForm(encoded string) ([]byte, error) {
	base64Start := 0
	if strings.HasPrefix(encoded, SchemePrefix) {
		base64Start = len(SchemePrefix)
		encoded = encoded[base64Start:]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, NewParseError(base64Start,
			fmt.Sprintf("encoded password is not valid base64: %v", err), err)
	}
	return raw, nil
}

// encodeTextForm produces the textual representation of a raw encoded
// password, with or without the scheme prefix
func encodeTextForm(raw []byte, includeScheme bool) string {
	base64String := base64.StdEncoding.EncodeToString(raw)
	if includeScheme {
		return SchemePrefix + base64String
	}
	return base64String
}
