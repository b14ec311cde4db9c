package passcrypt

import (
	"errors"
	"fmt"
)

// Error types represent the failure categories of the codec. Parse,
// cryptographic, authentication, and padding failures are deliberately kept
// distinct: callers may branch on the category, but never on anything finer
// (a wrong key and tampered data are indistinguishable by design).

// ParseError represents a malformed encoded password. Offset is the byte
// position of the offending field within the raw encoded representation.
type ParseError struct {
	Offset  int    // Byte offset of the field that failed to parse
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an invalid parameter supplied by the caller
type ValidationError struct {
	Field   string // The parameter that failed validation
	Value   any    // The invalid value
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CryptoError represents a failure in the underlying cryptographic
// provider: cipher construction, key derivation, or random generation.
// It is never used to mask a parse, authentication, or padding failure.
type CryptoError struct {
	Operation string // "derive", "encrypt", "decrypt", "random"
	Message   string // Human-readable error message
	Err       error  // Underlying error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto error: %s: %s", e.Operation, e.Message)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// AuthenticationError represents a ciphertext whose authentication tag did
// not verify: tampered data, a wrong passphrase, or a wrong IV.
type AuthenticationError struct {
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// PaddingError represents non-zero padding bytes found after a successful
// authentication check. This is a stronger integrity signal than a tag
// failure alone and is reported as its own condition.
type PaddingError struct {
	Message string // Human-readable error message
}

func (e *PaddingError) Error() string {
	return fmt.Sprintf("padding error: %s", e.Message)
}

// Common sentinel errors
var (
	ErrAuthenticationFailed = errors.New("authentication failed - wrong passphrase or tampered data")
	ErrUnsupportedVersion   = errors.New("unsupported encoding version")
	ErrTooShort             = errors.New("encoded password too short")
	ErrNonZeroPadding       = errors.New("padding bytes are not all zero")
	ErrKeyDestroyed         = errors.New("derived key has been destroyed")
	ErrUnknownKeyID         = errors.New("no encryption settings definition with the requested ID")
)

// Helper functions for creating structured errors

// NewParseError creates a new parse error at the given byte offset
func NewParseError(offset int, message string, err error) error {
	return &ParseError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewCryptoError creates a new cryptographic provider error
func NewCryptoError(operation string, err error) error {
	return &CryptoError{
		Operation: operation,
		Message:   err.Error(),
		Err:       err,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(message string) error {
	return &AuthenticationError{
		Message: message,
		Err:     ErrAuthenticationFailed,
	}
}

// NewPaddingError creates a new padding-integrity error
func NewPaddingError(paddingLength int) error {
	return &PaddingError{
		Message: fmt.Sprintf("%d trailing padding bytes are not all zero", paddingLength),
	}
}

// Error checking helpers

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsCryptoError checks if an error is a cryptographic provider error
func IsCryptoError(err error) bool {
	var ce *CryptoError
	return errors.As(err, &ce)
}

// IsAuthenticationError checks if an error is an authentication error
func IsAuthenticationError(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}

// IsPaddingError checks if an error is a padding-integrity error
func IsPaddingError(err error) bool {
	var pe *PaddingError
	return errors.As(err, &pe)
}
