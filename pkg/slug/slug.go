// Package slug turns free-text titles into URL-safe identifiers and resolves
// collisions against a caller supplied existence check.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength bounds generated slugs when callers pass a non-positive length.
const DefaultMaxLength = 60

// cutThreshold is the fraction of maxLength past which a truncated slug is
// cut back to its last hyphen.
const cutThreshold = 0.7

var quoteReplacer = strings.NewReplacer(
	"'", " ", "‘", " ", "’", " ", "‛", " ",
	"\"", " ", "“", " ", "”", " ", "„", " ",
	"«", " ", "»", " ", "`", " ", "´", " ",
)

// Generate converts title into a lowercase, hyphen separated identifier made
// of [a-z0-9_-]. Accents are removed through canonical decomposition. The
// result never exceeds maxLength and is cut on a word boundary when one lies
// close enough to the limit. An empty or symbol-only title yields "".
//
// Generate is idempotent: Generate(Generate(t, n), n) == Generate(t, n).
func Generate(title string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}

	title = quoteReplacer.Replace(title)
	title = strings.ToLower(title)
	title = stripMarks(title)

	var b strings.Builder
	b.Grow(len(title))
	separator := false
	for _, r := range title {
		if isSlugRune(r) {
			if separator && b.Len() > 0 {
				b.WriteByte('-')
			}
			separator = false
			b.WriteRune(r)
			continue
		}
		// whitespace, hyphens and any other symbol collapse into one separator
		separator = true
	}

	return truncate(b.String(), maxLength)
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
}

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}

	s = s[:maxLength]
	if i := strings.LastIndexByte(s, '-'); i >= 0 && float64(i) > float64(maxLength)*cutThreshold {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}
