package passcrypt

// EncodingVersion identifies which set of structural and cryptographic
// parameters an encoded password was produced with.
type EncodingVersion uint8

const (
	// EncodingVersion0 is the only encoding version currently defined.
	EncodingVersion0 EncodingVersion = 0
)

// String returns the string representation of the encoding version
func (v EncodingVersion) String() string {
	switch v {
	case EncodingVersion0:
		return "v0"
	default:
		return "unknown"
	}
}

// Parameters fixed by encoding version 0. These values are a compatibility
// contract with the deployed password storage format and must never change.
const (
	// SchemePrefix is the literal that precedes the base64 text form of an
	// encoded password.
	SchemePrefix = "{AES256}"

	// SaltLength is the key-derivation salt length in bytes.
	SaltLength = 16

	// IVLength is the initialization vector length in bytes. The full
	// 128-bit IV is handed to GCM, not truncated to the usual 96 bits.
	IVLength = 16

	// KeyLength is the derived symmetric key length in bytes (256 bits).
	KeyLength = 32

	// KDFIterations is the PBKDF2 iteration count. The cost is deliberate;
	// it is what makes offline brute-force expensive.
	KDFIterations = 32768

	// TagLength is the GCM authentication tag length in bytes (128 bits).
	TagLength = 16

	// PaddingModulus is the block size the padded clear text must be a
	// multiple of.
	PaddingModulus = 16

	// MaxKeyIDLength is the largest key ID that fits the one-byte length
	// field.
	MaxKeyIDLength = 255

	// MinEncodedLength is the smallest parseable blob: the header byte,
	// salt, IV, key ID length byte, a zero-length key ID, and at least two
	// ciphertext bytes.
	MinEncodedLength = 36
)

// KDFParams describes a password-based key derivation configuration.
// Encoding version 0 pins these to Version0KDFParams; the type exists so
// that the derivation step is explicit about what it was run with.
type KDFParams struct {
	Iterations int // PBKDF2 iteration count
	SaltSize   int // Salt size in bytes
	KeySize    int // Derived key size in bytes
}

// Version0KDFParams returns the key derivation parameters required by
// encoding version 0.
func Version0KDFParams() KDFParams {
	return KDFParams{
		Iterations: KDFIterations,
		SaltSize:   SaltLength,
		KeySize:    KeyLength,
	}
}
