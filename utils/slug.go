package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a display name into a lowercase hyphen-separated URL token.
// Diacritics are stripped, runs of non-alphanumeric characters collapse to a
// single hyphen, and leading/trailing hyphens are trimmed. The result only
// contains [a-z0-9-] and is stable for a given input.
func Slugify(name string) string {
	flat, _, err := transform.String(deaccent, name)
	if err != nil {
		flat = name
	}

	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(flat) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// SlugOrFallback never returns an empty slug: degenerate names (empty,
// whitespace, symbols only) get an opaque token so we never publish an
// empty public path segment.
func SlugOrFallback(name string) string {
	if s := Slugify(name); s != "" {
		return s
	}
	return "r-" + uuid.NewString()[:8]
}
