// Package projectkey derives and validates project keys: short uppercase
// alphanumeric identifiers such as "FL" for "Fiesta Lama", similar to the
// prefixes issue trackers put in front of ticket numbers.
//
// The package is pure. It knows nothing about storage; uniqueness checks and
// collision resolution against existing records live in svc/projects, which
// builds on the primitives exported here.
//
// # Rules
//
// A key is 2 to 10 characters long and consists of A-Z and 0-9 only. The
// canonical form is uppercase, so lowercase input is accepted and normalized.
//
// # Derivation
//
// Names are first normalized into tokens: diacritics are folded to ASCII,
// the text is split on whitespace and every non-alphanumeric character is
// dropped. Then:
//
//   - two or more tokens produce the initials of the first ten tokens
//     ("Fiesta Lama" → "FL");
//   - a single token produces its first three characters ("Acme" → "ACM");
//   - an empty token list fails with ErrEmptyName.
//
// # Usage
//
//	base, err := projectkey.DeriveFromName("Fiesta Lama") // "FL"
//
//	key, err := projectkey.Canonicalize(" fl2 ") // "FL2"
//	if errors.Is(err, projectkey.ErrBadFormat) {
//	    // show a field error
//	}
//
//	next, err := projectkey.WithSuffix("FL", 2) // "FL2"
//
// # Error Handling
//
// Every failure is one of the package sentinels (ErrEmptyName, ErrTooShort,
// ErrTooLong, ErrBadFormat, ErrTaken, ErrExhaustedKeySpace). ReasonOf maps an
// error chain to a stable Reason code suitable for API payloads and logs.
package projectkey
