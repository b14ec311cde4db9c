package passcrypt

import (
	"bytes"
	"testing"
)

func TestValidateKeyID(t *testing.T) {
	tests := []struct {
		name    string
		keyID   []byte
		wantErr bool
	}{
		{"one byte", []byte{0xAA}, false},
		{"max length", bytes.Repeat([]byte{0x01}, 255), false},
		{"empty", nil, true},
		{"too long", bytes.Repeat([]byte{0x01}, 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyID(tt.keyID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKeyID() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFixedLengths(t *testing.T) {
	tests := []struct {
		name    string
		fn      func([]byte) error
		length  int
		wantErr bool
	}{
		{"salt correct", ValidateSalt, SaltLength, false},
		{"salt short", ValidateSalt, 8, true},
		{"salt long", ValidateSalt, 32, true},
		{"salt empty", ValidateSalt, 0, true},
		{"iv correct", ValidateIV, IVLength, false},
		{"iv short", ValidateIV, 12, true},
		{"iv empty", ValidateIV, 0, true},
		{"key correct", ValidateKey, KeyLength, false},
		{"key short", ValidateKey, 16, true},
		{"key long", ValidateKey, 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(make([]byte, tt.length))
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("error has wrong category: %v", err)
			}
		})
	}
}

func TestValidateNonEmpty(t *testing.T) {
	if err := ValidatePassphrase(nil); !IsValidationError(err) {
		t.Errorf("ValidatePassphrase(nil): got %v, want validation error", err)
	}
	if err := ValidatePassphrase([]byte("p")); err != nil {
		t.Errorf("ValidatePassphrase: unexpected error %v", err)
	}

	if err := ValidateClearText(nil); !IsValidationError(err) {
		t.Errorf("ValidateClearText(nil): got %v, want validation error", err)
	}
	if err := ValidateClearText([]byte("pw")); err != nil {
		t.Errorf("ValidateClearText: unexpected error %v", err)
	}
}
