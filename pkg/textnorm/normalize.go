// Package textnorm canonicalizes human-authored display strings so that two
// names referring to the same installer compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes text (NFKD), drops combining marks (Mn, Mc, Me), collapses every
// whitespace run to a single space, lowercases and trims it.
func Normalize(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.M)))
	stripped, _, err := transform.String(t, text)
	if err != nil {
		// transform only fails on invalid state; fall back to the raw text
		stripped = text
	}
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}
