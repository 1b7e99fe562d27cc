package projectkey

import "errors"

var (
	// ErrEmptyName is returned when a name yields no usable key candidate.
	// Callers must ask for a key explicitly.
	ErrEmptyName = errors.New("projectkey: name does not yield a usable key")

	// ErrTooShort is returned for keys with fewer than MinLength characters.
	ErrTooShort = errors.New("projectkey: key is too short")

	// ErrTooLong is returned for keys with more than MaxLength characters.
	ErrTooLong = errors.New("projectkey: key is too long")

	// ErrBadFormat is returned when a key contains characters outside A-Z and 0-9.
	ErrBadFormat = errors.New("projectkey: key must contain only letters A-Z and digits")

	// ErrTaken is returned when a key already belongs to another project.
	ErrTaken = errors.New("projectkey: key is already taken")

	// ErrExhaustedKeySpace is returned when no numeric suffix fits into MaxLength.
	ErrExhaustedKeySpace = errors.New("projectkey: no free key left for this base")
)

// Reason is a stable, machine-readable code for a key failure.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonEmptyName         Reason = "empty_name"
	ReasonTooShort          Reason = "too_short"
	ReasonTooLong           Reason = "too_long"
	ReasonBadFormat         Reason = "bad_format"
	ReasonTaken             Reason = "taken"
	ReasonExhaustedKeySpace Reason = "exhausted_key_space"
)

var reasons = []struct {
	err    error
	reason Reason
}{
	{ErrEmptyName, ReasonEmptyName},
	{ErrTooShort, ReasonTooShort},
	{ErrTooLong, ReasonTooLong},
	{ErrBadFormat, ReasonBadFormat},
	{ErrTaken, ReasonTaken},
	{ErrExhaustedKeySpace, ReasonExhaustedKeySpace},
}

// ReasonOf returns the Reason for the first key sentinel found in err's chain,
// or ReasonNone if err is nil or not a key failure.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonNone
}

// IsKeyError reports whether err carries one of the key sentinels.
func IsKeyError(err error) bool {
	return ReasonOf(err) != ReasonNone
}

// Err returns the sentinel error for r, or nil for ReasonNone and unknown codes.
func (r Reason) Err() error {
	for _, e := range reasons {
		if e.reason == r {
			return e.err
		}
	}
	return nil
}
