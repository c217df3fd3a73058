// Package definition builds forms from declarative YAML definitions and
// drives them with JSON patches.
//
// A definition lists the fields of a form with their initial values,
// validation rules and optional lookups against Redis or Postgres:
//
//	def, err := definition.Load("signup.yaml")
//	opts, err := definition.Build(def, definition.Backends{Redis: rdb})
//	f := form.New(def.Initial(), opts...)
//
// ApplyPatch edits the form values with an RFC 6902 patch and forwards every
// changed field to Update. NewReport renders a snapshot, errors included, as
// JSON.
package definition
