// Package normalize prepares free clinical text for vocabulary lookup.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents decomposes, drops combining marks, then recomposes, so
// "Röntgen" and "Rontgen" normalize identically.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts arbitrary input into canonical lookup form:
// lower-cased, accents folded, punctuation treated as word breaks,
// whitespace collapsed to single spaces. Empty input yields "".
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			// Punctuation and separators become spaces so that
			// "abdomen/pelvis", "abdomen-pelvis" and "abdomen pelvis"
			// all collapse to the same form.
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the normalized word list for boundary-aware matching.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
