package phone

import "testing"

func TestDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+91-9876543210", "919876543210"},
		{"(555) 123 4567", "5551234567"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Digits(tt.in); got != tt.want {
			t.Errorf("Digits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDuplicateKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+91-9876543210", "76543210"},
		{"09876543210", "76543210"},
		{"1234567", "1234567"}, // shorter than the key stays whole
		{"", ""},
	}

	for _, tt := range tests {
		if got := DuplicateKey(tt.in); got != tt.want {
			t.Errorf("DuplicateKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSameNumber(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"+91-9876543210", "09876543210", true},
		// Only the trailing digits are significant: a different country code
		// still matches, a different trailing digit does not.
		{"+91-9876543210", "+44-9876543210", true},
		{"+91-9876543210", "+91-9876543211", false},
		{"", "", false},
		{"", "9876543210", false},
	}

	for _, tt := range tests {
		if got := SameNumber(tt.a, tt.b); got != tt.want {
			t.Errorf("SameNumber(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeE164(t *testing.T) {
	if got := NormalizeE164("9876543210", "IN"); got != "+919876543210" {
		t.Errorf("NormalizeE164 = %q, want +919876543210", got)
	}
	// Unparseable input passes through trimmed.
	if got := NormalizeE164(" not a number ", "IN"); got != "not a number" {
		t.Errorf("NormalizeE164 fallback = %q", got)
	}
	if got := NormalizeE164("", "IN"); got != "" {
		t.Errorf("NormalizeE164(\"\") = %q, want empty", got)
	}
}
