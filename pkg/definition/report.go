package definition

import (
	"github.com/bytedance/sonic"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Report is a JSON-friendly rendering of a form snapshot. Field errors,
// which form.Snapshot does not serialize, are flattened to strings and, for
// rule failures, to their individual violations.
type Report struct {
	FormID       string                 `json:"form_id"`
	Values       form.Values            `json:"values"`
	Fields       map[string]FieldReport `json:"fields"`
	IsValid      bool                   `json:"is_valid"`
	IsValidating bool                   `json:"is_validating"`
	IsModified   bool                   `json:"is_modified"`
	IsSubmitting bool                   `json:"is_submitting"`
}

// FieldReport is the state of one field.
type FieldReport struct {
	Checked    bool                        `json:"checked"`
	Validating bool                        `json:"validating"`
	Modified   bool                        `json:"modified"`
	Error      string                      `json:"error,omitempty"`
	Violations []validator.ValidationError `json:"violations,omitempty"`
}

// NewReport builds a Report from s.
func NewReport(formID string, s *form.Snapshot) Report {
	r := Report{
		FormID:       formID,
		Values:       s.Values,
		Fields:       make(map[string]FieldReport, len(s.Validations)),
		IsValid:      s.IsValid,
		IsValidating: s.IsValidating,
		IsModified:   s.IsModified,
		IsSubmitting: s.IsSubmitting,
	}
	for key, v := range s.Validations {
		fr := FieldReport{
			Checked:    v.Checked,
			Validating: v.Validating,
			Modified:   s.Modifications[key].IsModified,
		}
		if v.Error != nil {
			fr.Error = v.Error.Error()
			fr.Violations = validator.ExtractValidationErrors(v.Error)
		}
		r.Fields[key] = fr
	}
	return r
}

// JSON encodes the report.
func (r Report) JSON() ([]byte, error) {
	return sonic.Marshal(r)
}
