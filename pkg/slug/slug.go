// Package slug derives URL-safe slugs from titles and names.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make lower-cases s, replaces runs of non-alphanumeric runes with single
// hyphens, and trims leading/trailing hyphens.
func Make(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// MakeUnique appends a numeric suffix until exists reports the candidate is
// free. exists is typically backed by a unique-index lookup.
func MakeUnique(s string, exists func(string) bool) string {
	base := Make(s)
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for i := 2; exists(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}
