package utils

import (
	"testing"
)

func TestGenerateOTPCode(t *testing.T) {
	for _, length := range []int{1, 4, 6, 8} {
		for i := 0; i < 50; i++ {
			code, err := GenerateOTPCode(length)
			if err != nil {
				t.Fatalf("unexpected error for length %d: %v", length, err)
			}
			if len(code) != length {
				t.Fatalf("expected code of length %d, got %q", length, code)
			}
			for _, c := range code {
				if c < '0' || c > '9' {
					t.Fatalf("expected only digits, got %q", code)
				}
			}
		}
	}
}

func TestGenerateOTPCodeInvalidLength(t *testing.T) {
	if _, err := GenerateOTPCode(0); err == nil {
		t.Error("expected error for length 0")
	}
	if _, err := GenerateOTPCode(-3); err == nil {
		t.Error("expected error for negative length")
	}
}

func TestGenerateOTPCodeNotConstant(t *testing.T) {
	// with 200 draws of a 4 digit code, at least two distinct values should
	// show up unless the source is broken
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		code, err := GenerateOTPCode(OTP_CODE_LENGTH)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("expected more than one distinct code over 200 draws")
	}
}
