// Package compactor flattens message bodies into bounded single-line previews.
package compactor

import (
	"strings"
	"unicode/utf8"
)

// DefaultPreviewChars is the preview length used when none is configured.
const DefaultPreviewChars = 200

// Preview replaces every newline in body with a space and truncates the
// result to at most maxChars characters (code points, not bytes).
func Preview(body string, maxChars int) string {
	flat := strings.ReplaceAll(body, "\n", " ")
	return truncate(flat, maxChars)
}

// Length returns the length of body in characters.
func Length(body string) int {
	return utf8.RuneCountInString(body)
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == maxChars {
			return s[:i]
		}
		n++
	}
	return s
}
