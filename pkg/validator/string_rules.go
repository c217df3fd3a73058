package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Required fails for a string that is empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// MinLen fails for a string shorter than min characters.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: newError(field, fmt.Sprintf("must be at least %d characters long", min),
			"validation.min_length", map[string]any{"min": min}),
	}
}

// MaxLen fails for a string longer than max characters.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: newError(field, fmt.Sprintf("must be at most %d characters long", max),
			"validation.max_length", map[string]any{"max": max}),
	}
}

// Optional drops the rules when value is empty, so an optional field is only
// checked once filled in.
func Optional(value string, rules ...Rule) []Rule {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return rules
}
