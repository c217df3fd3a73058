package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Checker reports whether a value exists in some backing store.
type Checker interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, value string) (bool, error) {
	return f(ctx, value)
}

// Unique returns an async validator that fails when the value of key already
// exists in c. Empty values are not checked.
func Unique(key string, c Checker) form.AsyncValidator {
	return check(key, c, true, validator.ValidationError{
		Field:          key,
		Message:        "is already taken",
		TranslationKey: "validation.unique",
	})
}

// Known returns an async validator that fails when the value of key does not
// exist in c. Empty values are not checked.
func Known(key string, c Checker) form.AsyncValidator {
	return check(key, c, false, validator.ValidationError{
		Field:          key,
		Message:        "is not a known value",
		TranslationKey: "validation.known",
	})
}

func check(key string, c Checker, failIfExists bool, verr validator.ValidationError) form.AsyncValidator {
	verr.TranslationValues = map[string]any{"field": key}

	return func(ctx context.Context, values form.Values, _ form.Meta) error {
		value, err := validator.Value[string](values, key)
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			return nil
		}

		exists, err := c.Exists(ctx, value)
		if err != nil {
			return errors.Join(ErrLookupFailed, err)
		}
		if exists == failIfExists {
			return validator.ValidationErrors{verr}
		}
		return nil
	}
}
