// Package form is a UI-agnostic form state engine.
//
// A Form owns the current values of a fixed set of fields together with
// per-field validation and modification state, and publishes an immutable
// Snapshot to its subscribers after every change. Adapters for a particular
// UI library subscribe to the form and render the snapshot; the package does
// no rendering and no I/O of its own.
//
// # Validation
//
// Each field may have a synchronous Validator and an AsyncValidator. The
// synchronous one runs first; the asynchronous one only runs if it passed and
// executes on its own goroutine with a context that is cancelled when the
// validation is superseded. Results of cancelled validations are discarded.
// A panicking validator produces an error wrapping ErrValidatorPanicked.
//
// Field-level validation (RunValidation, or Update with AutoValidate) always
// runs fields concurrently. Submit validates every field either one after
// another in field order, stopping at the first failure, or concurrently
// when Config.ValidateConcurrentlyOnSubmit is set.
//
// # Execution model
//
// Every state change is applied on the form's own serial executor. Calls made
// while the form is idle are applied before they return, so
//
//	f.Update("email", "a@b.c")
//	f.Snapshot().Values["email"] // "a@b.c"
//
// holds on a form without in-flight asynchronous work. Calls made from a
// listener, or racing with a validator result, are queued. Wait blocks until
// nothing is pending.
//
// # Usage
//
//	f := form.New(form.Values{"email": "", "name": ""},
//	    form.WithValidator("email", validator.Field("email", func(s string) []validator.Rule {
//	        return []validator.Rule{validator.Required(s), validator.Email(s)}
//	    })),
//	    form.WithAsyncValidator("email", lookup.Unique("email", users)),
//	    form.WithAsyncSubmit(save),
//	)
//	unsubscribe := f.Subscribe(render)
//	defer unsubscribe()
//
//	f.Update("email", "a@b.c")
//	f.Submit()
package form
