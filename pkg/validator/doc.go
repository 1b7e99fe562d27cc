// Package validator provides small, declarative validation rules that report
// field-level, translation-friendly errors.
//
// A Rule pairs a Check func with the ValidationError to report when the check
// fails. Apply evaluates every rule and aggregates all failures into
// ValidationErrors, a slice type that implements error.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("name", in.Name),
//	    validator.MaxLenString("name", in.Name, 255),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // render verrs.Get(field) next to the form input
//	    }
//	}
//
// # Error Handling
//
// ValidationErrors unwraps to ErrValidationFailed and to the Cause of each
// field error, so domain sentinels survive aggregation:
//
//	errors.Is(err, projectkey.ErrTaken) // true if a field error was caused by it
package validator
