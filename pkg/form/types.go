package form

import (
	"context"
	"maps"
)

// Values maps field keys to field values. A Values handed out by the form is
// never mutated afterwards; treat it as read-only.
type Values map[string]any

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	return maps.Clone(v)
}

// Meta is caller-owned context passed to every validator and submit handler.
type Meta map[string]any

// ValidationState is the validation status of a single field.
// Checked and Validating are never both true. Error is meaningful only when
// Checked is true, except in preserve-error mode where it carries the last
// known error while the field is unchecked.
type ValidationState struct {
	Checked    bool  `json:"checked"`
	Error      error `json:"-"`
	Validating bool  `json:"validating"`
}

// ModificationState reports whether a field differs from its initial value.
type ModificationState struct {
	IsModified bool `json:"is_modified"`
}

// Validations maps field keys to their validation states.
type Validations map[string]ValidationState

// Modifications maps field keys to their modification states.
type Modifications map[string]ModificationState

// Validator checks the current values for one field. A nil return means the
// field is valid.
type Validator func(values Values, meta Meta) error

// AsyncValidator is a Validator that may block. It runs on its own goroutine
// and must return promptly once ctx is cancelled.
type AsyncValidator func(ctx context.Context, values Values, meta Meta) error

// Comparator reports whether a field's current value equals its initial value.
type Comparator func(current, initial any) bool

// SubmitFunc receives the full values and the subset of modified fields once
// every field validated successfully.
type SubmitFunc func(values Values, meta Meta, modified Values)

// AsyncSubmitFunc is a SubmitFunc that runs on its own goroutine. The form
// reports IsSubmitting while it is in flight. Its error is logged and
// otherwise ignored.
type AsyncSubmitFunc func(ctx context.Context, values Values, meta Meta, modified Values) error

func (v Validations) valid() bool {
	for _, s := range v {
		if !s.Checked || s.Error != nil {
			return false
		}
	}
	return true
}

func (v Validations) validating() bool {
	for _, s := range v {
		if s.Validating {
			return true
		}
	}
	return false
}

func (m Modifications) modified() bool {
	for _, s := range m {
		if s.IsModified {
			return true
		}
	}
	return false
}
