package projectkey

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTable covers letters that have no decomposed form, so NFKD plus mark
// removal leaves them untouched.
var foldTable = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'þ': "th", 'Þ': "TH",
	'ð': "d", 'Ð': "D",
	'ı': "i",
}

// Normalize turns a free-text project name into ordered alphanumeric tokens.
//
// Diacritics are folded to their ASCII base letters, the text is split on
// runs of whitespace and every character outside A-Z, a-z and 0-9 is removed
// from each token. Tokens that end up empty are dropped, so punctuation-only
// words disappear entirely. Case is preserved.
//
//	Normalize("Fiesta Lama")        // ["Fiesta" "Lama"]
//	Normalize("  Café   Müller! ")  // ["Cafe" "Muller"]
//	Normalize("O'Brien & Sons")     // ["OBrien" "Sons"]
func Normalize(name string) []string {
	fields := strings.Fields(foldDiacritics(name))
	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		var b strings.Builder
		b.Grow(len(field))
		for _, r := range field {
			if isKeyRune(r) || (r >= 'a' && r <= 'z') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}

	return tokens
}

// foldDiacritics maps accented Latin letters to their ASCII base form.
// Compatibility forms such as ligatures (ﬁ) and fullwidth letters (Ｆ) are
// expanded first. Characters with no ASCII equivalent are returned unchanged.
func foldDiacritics(s string) string {
	// Chained transformers keep internal buffers, so build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	if !strings.ContainsFunc(folded, func(r rune) bool { _, ok := foldTable[r]; return ok }) {
		return folded
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if repl, ok := foldTable[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isKeyRune reports whether r may appear in a canonical key.
func isKeyRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
