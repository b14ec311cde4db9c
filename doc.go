// Package passcrypt implements the reversible AES256 password-encoding
// scheme used by directory servers to store passwords that must later be
// recoverable in clear text by clients that know the passphrase the
// encryption key was derived from.
//
// # Overview
//
// An encoded password is a self-describing binary blob. Given the passphrase
// associated with the key ID stored inside the blob, the original clear-text
// password can always be recovered. Every field width, byte offset, and
// cryptographic parameter is a compatibility contract with an already
// deployed format, so the codec never deviates from them.
//
// # Binary Format (encoding version 0)
//
// The raw encoded representation is laid out as follows:
//   - Byte 0: the encoding version in the upper four bits (always zero) and
//     the padding length in the lower four bits
//   - Bytes 1-16: the key-derivation salt
//   - Bytes 17-32: the initialization vector
//   - Byte 33: the length of the key ID (0-255)
//   - The key ID bytes
//   - The encrypted padded password, including the authentication tag
//
// The string representation is the base64 encoding of the raw bytes,
// prefixed with "{AES256}".
//
// # Cryptographic Parameters (encoding version 0)
//
//   - Cipher: AES-256-GCM with a 128-bit authentication tag and a 128-bit
//     initialization vector
//   - Key derivation: PBKDF2 with HMAC-SHA-512, 32,768 iterations, a 16-byte
//     salt, and a 256-bit derived key
//   - Padding modulus: 16
//
// # Basic Usage
//
//	encoded, err := passcrypt.Encode(keyID, passphrase, []byte("password"))
//	if err != nil {
//	    panic(err)
//	}
//
//	stored := encoded.StringRepresentation(true) // "{AES256}..."
//
//	decoded, err := passcrypt.Decode(stored)
//	if err != nil {
//	    panic(err)
//	}
//
//	clear, err := decoded.Decrypt(passphrase)
//
// # Padding
//
// AES in Galois/Counter Mode behaves as a stream cipher, so the ciphertext
// length would otherwise reveal the exact password length. Before
// encryption the clear text is padded with zero bytes to a multiple of
// sixteen bytes. On decryption the padding bytes are verified to be zero;
// a non-zero padding byte after a successful tag check is reported as a
// distinct integrity failure.
//
// # Security Considerations
//
// Protected against:
//   - Recovery of passwords without the definition passphrase
//   - Ciphertext tampering (authenticated encryption)
//   - Password length disclosure through ciphertext length
//   - Offline brute-force attacks (expensive key derivation)
//
// Not protected against:
//   - Memory dumps while clear text or derived keys are resident
//   - Compromise of the definition passphrase itself
//
// Sensitive intermediate buffers (derived keys, padded plaintext, local
// passphrase copies) are zeroed before every return, including error
// returns. Callers are expected to do the same with the clear-text bytes
// they receive.
package passcrypt
