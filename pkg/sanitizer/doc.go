// Package sanitizer cleans free-text user input before it is validated or
// stored.
//
// Each helper is a func(string) string, so they chain into a pipeline with
// Compose:
//
//	cleanName := sanitizer.Compose(
//	    sanitizer.RemoveNullBytes,
//	    sanitizer.RemoveControlSequences,
//	    sanitizer.SingleLine,
//	)
//	name := cleanName("  Fiesta\n Lama\x1b[0m ") // "Fiesta Lama"
package sanitizer
