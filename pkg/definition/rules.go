package definition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Rule types understood in definitions.
const (
	RuleRequired = "required"
	RuleMinLen   = "min_len"
	RuleMaxLen   = "max_len"
	RuleEmail    = "email"
	RuleURL      = "url"
	RuleUUID     = "uuid"
	RulePattern  = "pattern"
	RuleOneOf    = "one_of"
	RuleMin      = "min"
	RuleMax      = "max"
)

// RuleSpec is one validation rule of a field. Value holds the rule parameter:
// a length, a bound, a pattern or a list of options.
type RuleSpec struct {
	Type        string `yaml:"type" json:"type"`
	Value       any    `yaml:"value,omitempty" json:"value,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func (r RuleSpec) validate() error {
	switch r.Type {
	case RuleRequired, RuleEmail, RuleURL, RuleUUID:
		return nil
	case RuleMinLen, RuleMaxLen:
		n, ok := toFloat(r.Value)
		if !ok || n < 0 || n != float64(int(n)) {
			return fmt.Errorf("%w: %s needs a non-negative integer, got %v", ErrInvalidRuleValue, r.Type, r.Value)
		}
	case RuleMin, RuleMax:
		if _, ok := toFloat(r.Value); !ok {
			return fmt.Errorf("%w: %s needs a number, got %v", ErrInvalidRuleValue, r.Type, r.Value)
		}
	case RulePattern:
		p, ok := r.Value.(string)
		if !ok {
			return fmt.Errorf("%w: pattern needs a string", ErrInvalidRuleValue)
		}
		if err := validator.ValidPattern(p); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRuleValue, err)
		}
	case RuleOneOf:
		if _, ok := r.Value.([]any); !ok {
			return fmt.Errorf("%w: one_of needs a list", ErrInvalidRuleValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRule, r.Type)
	}
	return nil
}

// build returns the rule checking raw. Parameters were checked by validate.
func (r RuleSpec) build(field string, raw any) (validator.Rule, error) {
	switch r.Type {
	case RuleRequired:
		return validator.Required(field, text(raw)), nil
	case RuleMinLen:
		n, _ := toFloat(r.Value)
		return validator.MinLen(field, text(raw), int(n)), nil
	case RuleMaxLen:
		n, _ := toFloat(r.Value)
		return validator.MaxLen(field, text(raw), int(n)), nil
	case RuleEmail:
		return validator.Email(field, text(raw)), nil
	case RuleURL:
		return validator.URL(field, text(raw)), nil
	case RuleUUID:
		return validator.UUID(field, text(raw)), nil
	case RulePattern:
		description := r.Description
		if description == "" {
			description = "the expected format"
		}
		return validator.Matches(field, text(raw), r.Value.(string), description), nil
	case RuleOneOf:
		options := make([]string, 0)
		for _, o := range r.Value.([]any) {
			options = append(options, text(o))
		}
		return validator.OneOf(field, text(raw), options), nil
	case RuleMin, RuleMax:
		bound, _ := toFloat(r.Value)
		n, ok := toFloat(raw)
		if !ok {
			return validator.Rule{}, fmt.Errorf("%w: field %q holds %T, want a number", validator.ErrInvalidValue, field, raw)
		}
		if r.Type == RuleMin {
			return validator.Min(field, n, bound), nil
		}
		return validator.Max(field, n, bound), nil
	}
	return validator.Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, r.Type)
}

// fieldValidator builds a form.Validator from the field's rules. Text rules
// skip empty values unless the field is required, so optional fields are only
// checked once filled in.
func fieldValidator(f FieldSpec) form.Validator {
	required := slices.ContainsFunc(f.Rules, func(r RuleSpec) bool { return r.Type == RuleRequired })

	return func(values form.Values, _ form.Meta) error {
		raw := values[f.Name]
		if !required && strings.TrimSpace(text(raw)) == "" {
			return nil
		}

		rules := make([]validator.Rule, 0, len(f.Rules))
		for _, spec := range f.Rules {
			rule, err := spec.build(f.Name, raw)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		return validator.Apply(rules...)
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
