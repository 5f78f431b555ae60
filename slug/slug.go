// Package slug turns human-written titles into URL path segments.
//
// Latin letters with diacritics are folded to their ASCII base letter
// ("Café" -> "cafe", "Straße" -> "strasse"), and compatibility forms such as
// ligatures and fullwidth letters to their plain spelling ("ﬁle" -> "file").
// Runes from other scripts are dropped and act as word breaks, so the output
// alphabet is always [a-z0-9-].
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the alphanumeric fragments of a slug.
const Separator = '-'

// latinFold covers lowercase Latin letters that have no
// decomposition and so survive mark removal unchanged.
var latinFold = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'œ': "oe",
	'ø': "o",
	'ł': "l",
	'đ': "d",
	'ð': "d",
	'þ': "th",
	'ı': "i",
}

// Make converts title to a slug: lowercase, every run of whitespace or
// punctuation collapsed into a single Separator, no Separator at either end.
// A title without any letters or digits yields "".
func Make(title string) string {
	folded := title
	if !isASCII(title) {
		// Chain carries internal buffers, so each call builds its own.
		t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
		if s, _, err := transform.String(t, title); err == nil {
			folded = s
		}
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	emit := func(s string) {
		if pending {
			b.WriteRune(Separator)
			pending = false
		}
		b.WriteString(s)
	}
	for _, r := range folded {
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			emit(string(r))
		default:
			if s, ok := latinFold[r]; ok {
				emit(s)
				continue
			}
			pending = b.Len() > 0
		}
	}
	return b.String()
}

// Valid reports whether s is a non-empty slug in canonical form, i.e. one
// that Make would return unchanged.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	prevSep := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			prevSep = false
		case c == Separator:
			if prevSep {
				return false
			}
			prevSep = true
		default:
			return false
		}
	}
	return !prevSep
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
