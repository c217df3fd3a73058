package validator

import "errors"

var (
	// ErrValidationFailed is the sentinel every ValidationErrors matches with errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidValue is returned when a form value has an unexpected Go type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidPattern is returned when a regular expression does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
