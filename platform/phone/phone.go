// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// duplicateKeyDigits is how many trailing digits identify a number for
// duplicate detection. Two numbers differing only in leading country-code
// digits are considered the same lead.
const duplicateKeyDigits = 8

// NormalizeE164 formats a phone number to E.164 using the given default
// region. If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// Digits strips every non-digit rune from the input.
func Digits(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DuplicateKey returns the trailing digits used for duplicate detection.
// Numbers with fewer digits than the key length are returned whole.
func DuplicateKey(input string) string {
	digits := Digits(input)
	if len(digits) <= duplicateKeyDigits {
		return digits
	}
	return digits[len(digits)-duplicateKeyDigits:]
}

// SameNumber reports whether two phone numbers share the same duplicate key.
// Empty numbers never match anything.
func SameNumber(a, b string) bool {
	ka, kb := DuplicateKey(a), DuplicateKey(b)
	if ka == "" || kb == "" {
		return false
	}
	return ka == kb
}
