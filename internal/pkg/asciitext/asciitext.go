// Package asciitext restricts text fields to the printable ASCII range
// required by the Klarna request schema.
package asciitext

import "strings"

// Sanitize strips every rune outside the printable ASCII range (0x20-0x7E).
// Characters are removed, not transliterated.
func Sanitize(s string) string {
	if isPrintableASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7E {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
