package form

import "errors"

var (
	// ErrKeySetMismatch is returned by SetInitial when the new initial values do
	// not have exactly the form's field keys.
	ErrKeySetMismatch = errors.New("form: initial values must have the same keys as the form")

	// ErrValidatorPanicked wraps the value recovered from a panicking validator.
	ErrValidatorPanicked = errors.New("form: validator panicked")
)
