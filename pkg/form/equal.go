package form

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether a and b are structurally equal. It is the comparator
// used for fields that have none registered.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, exportAll)
}

func (f *Form) equal(key string, current, initial any) bool {
	if c, ok := f.comparators[key]; ok {
		return c(current, initial)
	}
	return Equal(current, initial)
}

func (f *Form) isModified(key string) bool {
	return !f.equal(key, f.values[key], f.initial[key])
}
