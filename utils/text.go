package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s, strips diacritics, lower-cases and collapses whitespace.
// "Copão de Gin" -> "copao de gin"
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// ContainsAny reports whether the normalized text contains any normalized token
func ContainsAny(text string, tokens []string) bool {
	normalized := Normalize(text)
	for _, token := range tokens {
		t := Normalize(token)
		if t != "" && strings.Contains(normalized, t) {
			return true
		}
	}
	return false
}

// EqualFold compares two labels ignoring case, accents and repeated spaces
func EqualFold(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
