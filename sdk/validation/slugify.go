package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separators      = regexp.MustCompile(`[\s\-_]+`)
	nonAlphaNumeric = regexp.MustCompile(`[^a-z0-9\-]`)
	multipleHyphens = regexp.MustCompile(`-+`)
)

// Slugify converts a string to a URL and CSS safe slug.
//
//	"In Progress" -> "in-progress"
func Slugify(s string) string {
	s = strings.ToLower(removeAccents(s))
	s = separators.ReplaceAllString(s, "-")
	s = nonAlphaNumeric.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return multipleHyphens.ReplaceAllString(s, "-")
}

// removeAccents decomposes s and drops combining marks, so "é" becomes "e".
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
