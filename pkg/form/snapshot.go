package form

// Actions exposes the form mutators on a Snapshot so adapters can destructure
// them together with the state.
type Actions struct {
	Update        func(key string, value any)
	RunValidation func(key string)
	Submit        func()
	Clear         func()
}

// Snapshot is the complete state of a form at one point in time. A new
// Snapshot is published after every change; published snapshots are never
// modified, so subscribers may compare them by pointer.
type Snapshot struct {
	Values        Values        `json:"values"`
	Validations   Validations   `json:"validations"`
	Modifications Modifications `json:"modifications"`

	// IsValid is true when every field is checked and none has an error.
	IsValid bool `json:"is_valid"`
	// IsValidating is true while any field awaits an asynchronous validator.
	IsValidating bool `json:"is_validating"`
	// IsModified is true when any field differs from its initial value.
	IsModified bool `json:"is_modified"`
	// IsSubmitting is true while an asynchronous submit handler runs.
	IsSubmitting bool `json:"is_submitting"`

	Actions `json:"-"`
}

// Invalid returns the fields that are checked and have an error, keyed by
// field.
func (s *Snapshot) Invalid() map[string]error {
	out := make(map[string]error)
	for key, v := range s.Validations {
		if v.Checked && v.Error != nil {
			out[key] = v.Error
		}
	}
	return out
}

// Modified returns the values of the modified fields.
func (s *Snapshot) Modified() Values {
	out := make(Values)
	for key, m := range s.Modifications {
		if m.IsModified {
			out[key] = s.Values[key]
		}
	}
	return out
}
