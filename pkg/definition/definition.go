package definition

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Definition describes a form in YAML:
//
//	name: signup
//	config:
//	  auto_validate: true
//	fields:
//	  - name: email
//	    initial: ""
//	    rules:
//	      - type: required
//	      - type: email
//	    lookup:
//	      mode: unique
//	      backend: redis
//	      set: users:emails
type Definition struct {
	Name   string      `yaml:"name" json:"name"`
	Config *ConfigSpec `yaml:"config,omitempty" json:"config,omitempty"`
	Fields []FieldSpec `yaml:"fields" json:"fields"`
}

// ConfigSpec mirrors form.Config.
type ConfigSpec struct {
	AutoValidate                    bool `yaml:"auto_validate" json:"auto_validate"`
	ValidateConcurrentlyOnSubmit    bool `yaml:"validate_concurrently_on_submit" json:"validate_concurrently_on_submit"`
	PreserveValidationErrorOnUpdate bool `yaml:"preserve_validation_error_on_update" json:"preserve_validation_error_on_update"`
}

// FieldSpec describes one field. Fields are validated on submit in the order
// they are listed.
type FieldSpec struct {
	Name    string      `yaml:"name" json:"name"`
	Initial any         `yaml:"initial" json:"initial"`
	Rules   []RuleSpec  `yaml:"rules,omitempty" json:"rules,omitempty"`
	Lookup  *LookupSpec `yaml:"lookup,omitempty" json:"lookup,omitempty"`
}

// Load reads and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML definition. Initial values are normalized
// to their JSON shapes, so numbers become float64 and nested mappings become
// map[string]any, matching what JSON patches produce later.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}

	for i := range def.Fields {
		v, err := normalize(def.Fields[i].Initial)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: initial value: %w", ErrInvalidDefinition, def.Fields[i].Name, err)
		}
		def.Fields[i].Initial = v
	}
	return &def, nil
}

// Initial returns the initial values of every field.
func (d *Definition) Initial() form.Values {
	values := make(form.Values, len(d.Fields))
	for _, f := range d.Fields {
		values[f.Name] = f.Initial
	}
	return values
}

// Names returns the field names in definition order.
func (d *Definition) Names() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

func (d *Definition) validate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidDefinition)
	}

	var errs []error
	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("%w: field #%d has no name", ErrInvalidDefinition, i))
			continue
		}
		if seen[f.Name] {
			errs = append(errs, fmt.Errorf("%w: duplicate field %q", ErrInvalidDefinition, f.Name))
		}
		seen[f.Name] = true

		for _, r := range f.Rules {
			if err := r.validate(); err != nil {
				errs = append(errs, fmt.Errorf("field %q: %w", f.Name, err))
			}
		}
		if f.Lookup != nil {
			if err := f.Lookup.validate(); err != nil {
				errs = append(errs, fmt.Errorf("field %q: %w", f.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// normalize round-trips v through JSON.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
