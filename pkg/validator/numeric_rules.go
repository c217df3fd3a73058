package validator

import "fmt"

// Min fails when value is less than min.
func Min[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Error: newError(field, fmt.Sprintf("must be at least %v", min),
			"validation.min", map[string]any{"min": min}),
	}
}

// Max fails when value is greater than max.
func Max[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Error: newError(field, fmt.Sprintf("must be at most %v", max),
			"validation.max", map[string]any{"max": max}),
	}
}
