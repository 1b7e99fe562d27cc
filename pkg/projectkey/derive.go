package projectkey

import "strings"

const (
	// MinLength is the shortest allowed key.
	MinLength = 2
	// MaxLength is the longest allowed key, and the width of the storage column.
	MaxLength = 10

	maxInitials    = 10
	fallbackLength = 3
)

// Derive builds a base key candidate from tokens produced by Normalize.
//
// Two or more tokens yield the uppercase initials of the first ten tokens.
// Otherwise the first three characters of the joined token text are used,
// or fewer when the text is shorter. The result never exceeds MaxLength.
//
// A derived candidate may still be shorter than MinLength ("A" derives "A");
// callers decide how to treat it. An empty token list returns ErrEmptyName.
func Derive(tokens []string) (string, error) {
	if len(tokens) >= 2 {
		var b strings.Builder
		used := 0
		for _, tok := range tokens {
			if used == maxInitials {
				break
			}
			if tok == "" {
				continue
			}
			b.WriteRune([]rune(tok)[0])
			used++
		}
		if initials := b.String(); len([]rune(initials)) >= MinLength {
			return truncate(strings.ToUpper(initials)), nil
		}
	}

	joined := []rune(strings.Join(tokens, ""))
	if len(joined) == 0 {
		return "", ErrEmptyName
	}

	n := min(len(joined), fallbackLength)
	return truncate(strings.ToUpper(string(joined[:n]))), nil
}

// DeriveFromName is Derive(Normalize(name)).
func DeriveFromName(name string) (string, error) {
	return Derive(Normalize(name))
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxLength {
		return s
	}
	return string(r[:MaxLength])
}
