package definition

import "errors"

var (
	ErrFailedToParseYAML  = errors.New("definition: failed to parse yaml")
	ErrFailedToReadFile   = errors.New("definition: failed to read definition file")
	ErrInvalidDefinition  = errors.New("definition: invalid definition")
	ErrUnknownRule        = errors.New("definition: unknown rule type")
	ErrInvalidRuleValue   = errors.New("definition: invalid rule value")
	ErrBackendUnavailable = errors.New("definition: lookup backend not configured")

	ErrInvalidPatch  = errors.New("definition: invalid json patch")
	ErrFieldRemoved  = errors.New("definition: patch removes a field")
	ErrUnknownField  = errors.New("definition: patch adds an unknown field")
	ErrInvalidScript = errors.New("definition: invalid patch script")
)
