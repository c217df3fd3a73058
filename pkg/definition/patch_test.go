package definition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func newPatchForm() *form.Form {
	return form.New(form.Values{
		"name":    "",
		"age":     18,
		"address": map[string]any{"city": "Berlin"},
	}, form.WithLogger(logger.Nop()), form.WithConfig(form.Config{}))
}

func TestApplyPatch(t *testing.T) {
	t.Parallel()

	f := newPatchForm()

	changed, err := definition.ApplyPatch(f, []byte(`[
		{"op": "replace", "path": "/name", "value": "bob"},
		{"op": "replace", "path": "/address/city", "value": "Paris"}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []string{"address", "name"}, changed)
	s := f.Snapshot()
	assert.Equal(t, "bob", s.Values["name"])
	assert.Equal(t, map[string]any{"city": "Paris"}, s.Values["address"])
	assert.Equal(t, 18, s.Values["age"])
	assert.True(t, s.Modifications["name"].IsModified)
	assert.False(t, s.Modifications["age"].IsModified)
}

func TestApplyPatch_SameValueIsNotAChange(t *testing.T) {
	t.Parallel()

	f := newPatchForm()
	before := f.Snapshot()

	changed, err := definition.ApplyPatch(f, []byte(`[{"op": "replace", "path": "/age", "value": 18}]`))
	require.NoError(t, err)

	assert.Empty(t, changed)
	assert.Same(t, before, f.Snapshot())
}

func TestApplyPatch_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		patch string
		want  error
	}{
		{name: "not json", patch: `{`, want: definition.ErrInvalidPatch},
		{name: "bad path", patch: `[{"op": "replace", "path": "/missing/deep", "value": 1}]`, want: definition.ErrInvalidPatch},
		{name: "failed test op", patch: `[{"op": "test", "path": "/name", "value": "alice"}]`, want: definition.ErrInvalidPatch},
		{name: "remove field", patch: `[{"op": "remove", "path": "/name"}]`, want: definition.ErrFieldRemoved},
		{name: "unknown field", patch: `[{"op": "add", "path": "/nickname", "value": "b"}]`, want: definition.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newPatchForm()
			before := f.Snapshot()

			changed, err := definition.ApplyPatch(f, []byte(tt.patch))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, changed)
			assert.Same(t, before, f.Snapshot())
		})
	}
}

func TestDecodeScript(t *testing.T) {
	t.Parallel()

	steps, err := definition.DecodeScript([]byte(`[
		[{"op": "replace", "path": "/name", "value": "bob"}],
		[{"op": "replace", "path": "/name", "value": "alice"}, {"op": "replace", "path": "/age", "value": 30}]
	]`))
	require.NoError(t, err)
	require.Len(t, steps, 2)

	f := newPatchForm()
	for _, step := range steps {
		_, err := definition.ApplyPatch(f, step)
		require.NoError(t, err)
	}
	assert.Equal(t, "alice", f.Snapshot().Values["name"])
	assert.Equal(t, float64(30), f.Snapshot().Values["age"])
}

func TestDecodeScript_Invalid(t *testing.T) {
	t.Parallel()

	_, err := definition.DecodeScript([]byte(`{"op": "replace"}`))
	assert.ErrorIs(t, err, definition.ErrInvalidScript)

	_, err = definition.DecodeScript([]byte(`[{"op": "replace"}]`))
	assert.ErrorIs(t, err, definition.ErrInvalidScript)
}
