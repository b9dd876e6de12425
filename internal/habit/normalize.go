package habit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameChars bounds a habit name, counted in runes.
const MaxNameChars = 100

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName trims leading/trailing whitespace and collapses internal
// whitespace to single spaces. Case is preserved; the name is for display.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
