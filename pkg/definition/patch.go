package definition

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Updater is the part of *form.Form a patch is applied to.
type Updater interface {
	Snapshot() *form.Snapshot
	Update(key string, value any)
}

// ApplyPatch applies an RFC 6902 JSON patch to the current form values and
// calls Update for every field whose value changed, in key order. It returns
// the changed keys. A patch that removes a field or adds an unknown one is
// rejected before anything is updated.
func ApplyPatch(f Updater, raw []byte) ([]string, error) {
	current := f.Snapshot().Values

	doc, err := sonic.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("marshal values: %w", err)
	}

	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidPatch, err)
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return nil, errors.Join(ErrInvalidPatch, err)
	}

	var next map[string]any
	if err := sonic.Unmarshal(patched, &next); err != nil {
		return nil, errors.Join(ErrInvalidPatch, err)
	}

	for key := range current {
		if _, ok := next[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrFieldRemoved, key)
		}
	}

	changed := make([]string, 0, len(next))
	for key, value := range next {
		old, ok := current[key]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
		if !sameJSON(old, value) {
			changed = append(changed, key)
		}
	}
	slices.Sort(changed)

	for _, key := range changed {
		f.Update(key, next[key])
	}
	return changed, nil
}

// DecodeScript splits a script into patches. A script is a JSON array whose
// elements are patches, each an array of operations.
func DecodeScript(data []byte) ([][]byte, error) {
	var steps []any
	if err := sonic.Unmarshal(data, &steps); err != nil {
		return nil, errors.Join(ErrInvalidScript, err)
	}

	out := make([][]byte, 0, len(steps))
	for i, step := range steps {
		raw, err := sonic.Marshal(step)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i, err)
		}
		if _, err := jsonpatch.DecodePatch(raw); err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// sameJSON compares values after normalizing both to their JSON shapes.
func sameJSON(a, b any) bool {
	na, err := normalize(a)
	if err != nil {
		return false
	}
	return form.Equal(na, b)
}
