// Package textutil cleans bibliographic strings before they are stored.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Clean collapses runs of whitespace into single spaces and drops control
// characters. Reference managers export titles with embedded newlines and
// tabs; none of that belongs in the store.
func Clean(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	space := false
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsControl(r):
			continue
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeTitle cleans a title and re-cases it when the source is shouting
// or entirely lowercase. Mixed-case titles pass through untouched since the
// original casing is usually intentional.
func NormalizeTitle(value string) string {
	cleaned := Clean(value)
	if cleaned == "" {
		return cleaned
	}
	upper := strings.ToUpper(cleaned)
	lower := strings.ToLower(cleaned)
	if cleaned != upper && cleaned != lower {
		return cleaned
	}
	return cases.Title(language.Und).String(lower)
}
