package validation

import (
	"strings"
	"unicode"
)

// MaxSearchQueryLength caps instrument search input, in runes.
const MaxSearchQueryLength = 64

// StripUnprintable removes non-printable characters, allowing common whitespace
// like space, tab, newline, and carriage return.
func StripUnprintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return -1
	}, s)
}

// SanitizeSearchQuery cleans free-text instrument search input.
func SanitizeSearchQuery(s string) string {
	cleaned := strings.TrimSpace(StripUnprintable(s))
	runes := []rune(cleaned)
	if len(runes) > MaxSearchQueryLength {
		cleaned = strings.TrimSpace(string(runes[:MaxSearchQueryLength]))
	}
	return cleaned
}
