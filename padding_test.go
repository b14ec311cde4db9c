package passcrypt

import (
	"bytes"
	"testing"
)

func TestPadClearText(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		wantPadLen int
	}{
		{"one byte", 1, 15},
		{"eight bytes", 8, 8},
		{"fifteen bytes", 15, 1},
		{"exactly one block", 16, 0},
		{"seventeen bytes", 17, 15},
		{"two blocks", 32, 0},
		{"thirty-three bytes", 33, 15},
		{"large password", 100, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clear := bytes.Repeat([]byte{0xAB}, tt.length)

			padded, padLen := padClearText(clear)
			if padLen != tt.wantPadLen {
				t.Errorf("padding length = %d, want %d", padLen, tt.wantPadLen)
			}

			if len(padded)%PaddingModulus != 0 {
				t.Errorf("padded length %d is not a multiple of %d", len(padded), PaddingModulus)
			}

			if !bytes.Equal(padded[:tt.length], clear) {
				t.Error("padded buffer does not start with the clear text")
			}

			for i := tt.length; i < len(padded); i++ {
				if padded[i] != 0 {
					t.Fatalf("padding byte at index %d is %#x, want 0", i, padded[i])
				}
			}
		})
	}
}

func TestPadClearTextNoCopyWhenAligned(t *testing.T) {
	clear := bytes.Repeat([]byte{0x01}, 32)

	padded, padLen := padClearText(clear)
	if padLen != 0 {
		t.Fatalf("padding length = %d, want 0", padLen)
	}
	if &padded[0] != &clear[0] {
		t.Error("aligned input should be returned without copying")
	}
}

func TestStripPadding(t *testing.T) {
	tests := []struct {
		name      string
		decrypted []byte
		padLen    int
		want      []byte
		wantErr   func(error) bool
	}{
		{
			name:      "no padding",
			decrypted: []byte("0123456789abcdef"),
			padLen:    0,
			want:      []byte("0123456789abcdef"),
		},
		{
			name:      "valid padding",
			decrypted: append([]byte("password"), make([]byte, 8)...),
			padLen:    8,
			want:      []byte("password"),
		},
		{
			name:      "single padding byte",
			decrypted: append(bytes.Repeat([]byte{0x7F}, 15), 0x00),
			padLen:    1,
			want:      bytes.Repeat([]byte{0x7F}, 15),
		},
		{
			name:      "non-zero last padding byte",
			decrypted: append([]byte("password"), 0, 0, 0, 0, 0, 0, 0, 1),
			padLen:    8,
			wantErr:   IsPaddingError,
		},
		{
			name:      "non-zero first padding byte",
			decrypted: append([]byte("password"), 1, 0, 0, 0, 0, 0, 0, 0),
			padLen:    8,
			wantErr:   IsPaddingError,
		},
		{
			name:      "padding length out of range",
			decrypted: make([]byte, 16),
			padLen:    16,
			wantErr:   IsValidationError,
		},
		{
			name:      "negative padding length",
			decrypted: make([]byte, 16),
			padLen:    -1,
			wantErr:   IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stripPadding(tt.decrypted, tt.padLen)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !tt.wantErr(err) {
					t.Fatalf("error has wrong category: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("stripPadding failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("stripped clear text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPaddingRoundTrip(t *testing.T) {
	for length := 1; length <= 64; length++ {
		clear := bytes.Repeat([]byte{0x5A}, length)

		padded, padLen := padClearText(clear)
		got, err := stripPadding(padded, padLen)
		if err != nil {
			t.Fatalf("length %d: stripPadding failed: %v", length, err)
		}
		if !bytes.Equal(got, clear) {
			t.Fatalf("length %d: round trip mismatch", length)
		}
	}
}
