// Package slug turns free text into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxLen = 100

var (
	// Pattern matches a well-formed slug: lowercase alphanumeric words joined by single hyphens.
	Pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Make lowercases s, strips diacritics (é -> e) and joins the remaining alphanumeric runs with
// "-". The result is at most 100 characters and is empty when s has no usable characters.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}

	s = reNonAlnum.ReplaceAllString(string(buf), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.Trim(s[:maxLen], "-")
	}

	return s
}

func Valid(s string) bool {
	return Pattern.MatchString(s)
}
