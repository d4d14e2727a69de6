package common

import "strings"

// WipeByteArray overwrites b with zeros. Used to drop plaintext passwords
// from memory once they have been sent. Nil slices are ignored.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// that uniqueness and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
