package validator

import "github.com/google/uuid"

// UUID fails unless value is a UUID in the canonical 36 character form.
func UUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != 36 {
				return false
			}
			id, err := uuid.Parse(value)
			return err == nil && id != uuid.Nil
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}
