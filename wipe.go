package passcrypt

// Wipe overwrites a sensitive byte buffer with zeros. The codec wipes every
// intermediate buffer it allocates (derived keys, padded plaintext, local
// passphrase copies) before returning; callers should do the same with the
// clear-text bytes they receive once they are done with them. This bounds
// how long secret material stays resident rather than waiting for the
// garbage collector.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
