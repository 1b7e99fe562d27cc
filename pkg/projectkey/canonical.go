package projectkey

import (
	"strings"
	"unicode/utf8"
)

// Canonicalize checks a key against the format rules and returns its
// canonical uppercase form.
//
// Surrounding whitespace is ignored and lowercase letters are accepted.
// Rules are checked in order and the first failure wins: length
// (ErrTooShort, ErrTooLong), then charset (ErrBadFormat).
func Canonicalize(key string) (string, error) {
	k := strings.ToUpper(strings.TrimSpace(key))

	switch n := utf8.RuneCountInString(k); {
	case n < MinLength:
		return "", ErrTooShort
	case n > MaxLength:
		return "", ErrTooLong
	}

	for _, r := range k {
		if !isKeyRune(r) {
			return "", ErrBadFormat
		}
	}

	return k, nil
}

// Equal compares two keys the way the uniqueness constraint does.
func Equal(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
