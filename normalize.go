package ottolai

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares raw input for resolution: Unicode NFC normalization,
// then a single whitespace collapse. This runs once at the start of the
// pipeline, never per-tier, so every tier sees identical input.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokenize splits normalized text on whitespace.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// ContainsArabic reports whether s contains at least one Arabic-script rune,
// including presentation forms and ligatures.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

// IsLexical reports whether a token carries letters at all. Pure punctuation
// and digit tokens pass through the word-mapping tier unchanged and count as
// resolved, matching how the source material treats them.
func IsLexical(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// TextDirection returns "rtl" for Arabic-script text and "ltr" otherwise.
// Used when re-emitting translated documents: Ottoman sources render
// right-to-left, their Turkish translations left-to-right.
func TextDirection(s string) string {
	if ContainsArabic(s) {
		return "rtl"
	}
	return "ltr"
}
