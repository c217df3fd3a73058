package validator

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Field builds a form.Validator that checks the value stored under key with
// the rules returned by build. A nil value is passed to build as the zero T;
// a value of any other type fails with ErrInvalidValue.
//
//	form.WithValidator("email", validator.Field("email", func(field, v string) []validator.Rule {
//	    return []validator.Rule{validator.Required(field, v), validator.Email(field, v)}
//	}))
func Field[T any](key string, build func(field string, value T) []Rule) form.Validator {
	return func(values form.Values, _ form.Meta) error {
		v, err := valueOf[T](values, key)
		if err != nil {
			return err
		}
		return Apply(build(key, v)...)
	}
}

// Form builds a form.Validator from rules that look at several fields, such as
// a password confirmation.
func Form(build func(values form.Values) []Rule) form.Validator {
	return func(values form.Values, _ form.Meta) error {
		return Apply(build(values)...)
	}
}

// Value returns the value of key as T, or ErrInvalidValue.
func Value[T any](values form.Values, key string) (T, error) {
	return valueOf[T](values, key)
}

func valueOf[T any](values form.Values, key string) (T, error) {
	var zero T
	raw := values[key]
	if raw == nil {
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field %q holds %T, want %T", ErrInvalidValue, key, raw, zero)
	}
	return v, nil
}
