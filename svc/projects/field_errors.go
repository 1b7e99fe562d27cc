package projects

import (
	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
	"github.com/dmitrymomot/projectkeys/pkg/validator"
)

var keyMessages = map[projectkey.Reason]string{
	projectkey.ReasonEmptyName:         "a key cannot be derived from this name, enter one",
	projectkey.ReasonTooShort:          "must be at least 2 characters long",
	projectkey.ReasonTooLong:           "must be at most 10 characters long",
	projectkey.ReasonBadFormat:         "may only contain letters A-Z and digits",
	projectkey.ReasonTaken:             "is already used by another project",
	projectkey.ReasonExhaustedKeySpace: "no free key is left for this name, enter one",
}

// FieldErrors converts a failure of CreateProject, UpdateProject, SetKey or
// AssignKey into field errors for a form. It returns nil for errors that are
// not about the name or the key, such as store failures.
func FieldErrors(err error) validator.ValidationErrors {
	if err == nil {
		return nil
	}

	var out validator.ValidationErrors
	out = append(out, validator.ExtractValidationErrors(err)...)

	if reason := projectkey.ReasonOf(err); reason != projectkey.ReasonNone {
		out.Add(validator.ValidationError{
			Field:          "key",
			Message:        keyMessages[reason],
			TranslationKey: "validation.project_key." + string(reason),
			TranslationValues: map[string]any{
				"field": "key",
				"min":   projectkey.MinLength,
				"max":   projectkey.MaxLength,
			},
			Cause: reason.Err(),
		})
	}

	if out.IsEmpty() {
		return nil
	}
	return out
}
