package utils

import (
	"regexp"
	"strings"
)

// MaxInputLength is the number of characters kept after sanitizing free-form input.
const MaxInputLength = 1000

var (
	tagPattern   = regexp.MustCompile(`</?[A-Za-z!][^<>]*>`)
	angleBracket = strings.NewReplacer("<", "", ">", "")
)

// SanitizeInput removes markup from user input: tags such as <b> or </script> first, then
// any stray angle brackets. Text between brackets that do not open a tag is kept. The result is trimmed and cut to MaxInputLength characters.
func SanitizeInput(input string) string {
	if input == "" {
		return ""
	}

	cleaned := tagPattern.ReplaceAllString(input, "")
	cleaned = angleBracket.Replace(cleaned)
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > MaxInputLength {
		cleaned = string(runes[:MaxInputLength])
	}
	return cleaned
}
