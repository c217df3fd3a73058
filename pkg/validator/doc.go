// Package validator provides declarative validation rules and adapters that
// turn them into form validators.
//
// A Rule pairs a Check function with a translation-friendly ValidationError.
// Apply evaluates rules and aggregates the failures into ValidationErrors,
// which implements error and matches ErrValidationFailed:
//
//	err := validator.Apply(
//	    validator.Required("email", email),
//	    validator.Email("email", email),
//	    validator.MaxLen("name", name, 64),
//	)
//
// Field and Form adapt rule builders to form.Validator, reading typed values
// out of form.Values.
package validator
