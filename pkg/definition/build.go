package definition

import (
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/lookup"
)

// Build turns a definition into form options: one synchronous validator per
// field with rules, one asynchronous validator per field with a lookup, the
// field order and, when present, the form config.
//
// Pass the result to form.New together with def.Initial():
//
//	opts, err := definition.Build(def, definition.Backends{Redis: rdb})
//	f := form.New(def.Initial(), opts...)
func Build(def *Definition, backends Backends) ([]form.Option, error) {
	opts := []form.Option{form.WithFieldOrder(def.Names()...)}

	if c := def.Config; c != nil {
		opts = append(opts, form.WithConfig(form.Config{
			AutoValidate:                    c.AutoValidate,
			ValidateConcurrentlyOnSubmit:    c.ValidateConcurrentlyOnSubmit,
			PreserveValidationErrorOnUpdate: c.PreserveValidationErrorOnUpdate,
		}))
	}

	for _, f := range def.Fields {
		if len(f.Rules) > 0 {
			opts = append(opts, form.WithValidator(f.Name, fieldValidator(f)))
		}
		if f.Lookup == nil {
			continue
		}

		c, err := f.Lookup.checker(backends)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		if f.Lookup.Mode == LookupUnique {
			opts = append(opts, form.WithAsyncValidator(f.Name, lookup.Unique(f.Name, c)))
		} else {
			opts = append(opts, form.WithAsyncValidator(f.Name, lookup.Known(f.Name, c)))
		}
	}
	return opts, nil
}
