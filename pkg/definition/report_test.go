package definition_test

import (
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/definition"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	def, err := definition.Parse([]byte(`
fields:
  - name: username
    initial: ""
    rules:
      - type: required
      - type: min_len
        value: 3
  - name: bio
    initial: ""
`))
	require.NoError(t, err)
	f := buildForm(t, def, definition.Backends{})

	f.Update("bio", "hello")
	f.RunValidation("username")

	r := definition.NewReport(f.ID(), f.Snapshot())

	assert.Equal(t, f.ID(), r.FormID)
	assert.False(t, r.IsValid)
	assert.True(t, r.IsModified)

	username := r.Fields["username"]
	assert.True(t, username.Checked)
	assert.NotEmpty(t, username.Error)
	require.Len(t, username.Violations, 2)
	assert.Equal(t, "validation.required", username.Violations[0].TranslationKey)
	assert.Equal(t, "validation.min_length", username.Violations[1].TranslationKey)

	bio := r.Fields["bio"]
	assert.True(t, bio.Modified)
	assert.Empty(t, bio.Error)
	assert.Nil(t, bio.Violations)
}

func TestNewReport_PlainError(t *testing.T) {
	t.Parallel()

	errTaken := errors.New("taken")
	f := form.New(form.Values{"name": "x"},
		form.WithLogger(logger.Nop()),
		form.WithConfig(form.Config{}),
		form.WithValidator("name", func(form.Values, form.Meta) error { return errTaken }),
	)
	f.RunValidation("name")

	r := definition.NewReport(f.ID(), f.Snapshot())

	assert.Equal(t, "taken", r.Fields["name"].Error)
	assert.Nil(t, r.Fields["name"].Violations)
}

func TestReport_JSON(t *testing.T) {
	t.Parallel()

	f := form.New(form.Values{"name": "x"}, form.WithLogger(logger.Nop()), form.WithConfig(form.Config{}))
	data, err := definition.NewReport("form-1", f.Snapshot()).JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, "form-1", decoded["form_id"])
	assert.Equal(t, map[string]any{"name": "x"}, decoded["values"])
	assert.Equal(t, true, decoded["is_valid"])
	assert.Contains(t, decoded["fields"], "name")
}
