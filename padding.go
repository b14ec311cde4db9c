package passcrypt

// Zero padding conceals the clear-text password length. AES-GCM output has
// the same length as its input, so without padding the ciphertext length
// would reveal exactly how long the password is.

// padClearText appends zero bytes to the clear text until its length is a
// multiple of PaddingModulus. When no padding is needed the input slice is
// returned as-is; otherwise a new buffer is allocated, and the caller owns
// wiping it.
func padClearText(clearText []byte) (padded []byte, paddingLength int) {
	rem := len(clearText) % PaddingModulus
	if rem == 0 {
		return clearText, 0
	}

	paddingLength = PaddingModulus - rem
	padded = make([]byte, len(clearText)+paddingLength)
	copy(padded, clearText)
	return padded, paddingLength
}

// stripPadding returns the decrypted clear text with paddingLength trailing
// bytes removed. The removed bytes must all be zero; a non-zero byte after a
// successful authentication check indicates tampering that survived under a
// different key, or caller error, and fails loudly rather than returning
// sanitized garbage. The whole padding region is always scanned so the
// decision does not leak the position of a bad byte.
func stripPadding(decrypted []byte, paddingLength int) ([]byte, error) {
	if paddingLength == 0 {
		return decrypted, nil
	}
	if paddingLength < 0 || paddingLength >= PaddingModulus {
		return nil, NewValidationError("paddingLength", paddingLength,
			"padding length must be between 0 and 15")
	}
	if paddingLength > len(decrypted) {
		return nil, NewValidationError("paddingLength", paddingLength,
			"padding length exceeds decrypted length")
	}

	var acc byte
	for _, b := range decrypted[len(decrypted)-paddingLength:] {
		acc |= b
	}
	if acc != 0 {
		return nil, NewPaddingError(paddingLength)
	}

	clearText := make([]byte, len(decrypted)-paddingLength)
	copy(clearText, decrypted)
	return clearText, nil
}
