package utils

import "testing"

func TestSanitizePhoneNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5551234", "5551234"},
		{" 5551234 \n", "5551234"},
		{"999 888 7776", "9998887776"},
		{"999-888-7776", "9998887776"},
	}

	for _, test := range tests {
		if got := SanitizePhoneNumber(test.input); got != test.expected {
			t.Errorf("expected %q for input %q, but got %q", test.expected, test.input, got)
		}
	}
}

func TestCheckPhoneNumberFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"12345", false},          // too short
		{"5551234", true},         // minimum length
		{"9998887776", true},
		{"0123456789", true},      // leading zero preserved, still valid
		{"123456789012345", true}, // maximum length
		{"1234567890123456", false},
		{"+4915112345678", false}, // plus sign must be stripped by the caller
		{"555 1234", false},
		{"abc1234", false},
	}

	for _, test := range tests {
		if got := CheckPhoneNumberFormat(test.input); got != test.expected {
			t.Errorf("expected %v for input %q, but got %v", test.expected, test.input, got)
		}
	}
}

func TestBlurPhoneNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "****"},
		{"123", "****"},
		{"5551234", "****234"},
		{"9998887776", "*******776"},
	}

	for _, test := range tests {
		if got := BlurPhoneNumber(test.input); got != test.expected {
			t.Errorf("expected %q for input %q, but got %q", test.expected, test.input, got)
		}
	}
}
