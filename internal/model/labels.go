package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler derives a display label from a field name: valid_from
// becomes "Valid From", dataTypes becomes "Data Types".
func DefaultLabeler(name string) string {
	words := splitName(name)
	for i, word := range words {
		lower := strings.ToLower(word)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// splitName breaks a field name on separators, camelCase humps, and
// letter/digit boundaries.
func splitName(name string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case i > 0 && boundary(runes[i-1], r):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

func boundary(prev, r rune) bool {
	if unicode.IsLower(prev) && unicode.IsUpper(r) {
		return true
	}
	if unicode.IsLetter(prev) && unicode.IsDigit(r) {
		return true
	}
	return unicode.IsDigit(prev) && unicode.IsLetter(r)
}
