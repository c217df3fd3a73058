package validator

import (
	"fmt"
	"regexp"
	"sync"
)

var patternCache sync.Map

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	patternCache.Store(pattern, re)
	return re, nil
}

// Matches fails when value does not match pattern. description names the
// expected format in the message. An invalid pattern always fails.
func Matches(field, value, pattern, description string) Rule {
	return Rule{
		Check: func() bool {
			re, err := compile(pattern)
			return err == nil && re.MatchString(value)
		},
		Error: newError(field, "must match "+description, "validation.pattern",
			map[string]any{"pattern": pattern, "description": description}),
	}
}

// ValidPattern reports whether pattern compiles.
func ValidPattern(pattern string) error {
	_, err := compile(pattern)
	return err
}
