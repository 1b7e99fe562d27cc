package projectkey

import "strconv"

// WithSuffix returns the n-th collision variant of base: base itself for
// n <= 0, otherwise base followed by the decimal n. The base is cut short so
// the result never exceeds MaxLength ("ABCDEFGHIJ", 1 → "ABCDEFGHI1").
//
// ErrExhaustedKeySpace is returned when the digits alone need all of
// MaxLength, leaving no room for any part of the base.
func WithSuffix(base string, n int) (string, error) {
	if n <= 0 {
		return truncate(base), nil
	}

	digits := strconv.Itoa(n)
	room := MaxLength - len(digits)
	if room < 1 {
		return "", ErrExhaustedKeySpace
	}

	r := []rune(base)
	if len(r) > room {
		r = r[:room]
	}
	return string(r) + digits, nil
}
