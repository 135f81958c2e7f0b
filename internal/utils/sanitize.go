package utils

import (
	"regexp"
	"strings"
)

// maxInputLength caps every free-text field before storage.
const maxInputLength = 5000

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// htmlEscaper escapes the five HTML-significant characters in a single
// pass, so entities it inserts are not themselves re-escaped within the
// same call.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeInput strips tag-like substrings, escapes HTML-significant
// characters, trims surrounding whitespace and truncates to 5000
// characters. Pure function; applied to every free-text field before it
// reaches storage.
func SanitizeInput(input string) string {
	if input == "" {
		return ""
	}
	s := tagPattern.ReplaceAllString(input, "")
	s = htmlEscaper.Replace(s)
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxInputLength {
		s = string(runes[:maxInputLength])
	}
	return s
}

// SanitizeFormData returns a shallow copy of data with every string
// value passed through SanitizeInput. Non-string values pass through
// unchanged.
func SanitizeFormData(data map[string]any) map[string]any {
	sanitized := make(map[string]any, len(data))
	for key, value := range data {
		if s, ok := value.(string); ok {
			sanitized[key] = SanitizeInput(s)
		} else {
			sanitized[key] = value
		}
	}
	return sanitized
}
