package validator

import (
	"fmt"
	"slices"
)

// OneOf fails when value is not among options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(options, value) },
		Error: newError(field, fmt.Sprintf("must be one of %v", options),
			"validation.one_of", map[string]any{"options": options}),
	}
}
