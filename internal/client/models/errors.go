package models

import "strings"

// FieldError attaches a validation message to a single form field.
// The backend reports creation problems in the same shape, so both
// client-side and server-side validation surface through this type.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an ordered list of per-field validation failures.
// It implements error so it can travel through ordinary error returns;
// callers unwrap it with errors.As and render each message next to the
// corresponding input.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

// For returns the message recorded for the given field, if any.
func (fe FieldErrors) For(field string) (string, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e.Message, true
		}
	}
	return "", false
}
