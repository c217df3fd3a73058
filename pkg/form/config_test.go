package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestDefaultConfig(t *testing.T) {
	prev := form.DefaultConfig()
	t.Cleanup(func() { form.SetDefaultConfig(prev) })

	t.Run("new forms start from the default", func(t *testing.T) {
		form.SetDefaultConfig(form.Config{AutoValidate: true})

		f := form.New(form.Values{"a": "x"},
			form.WithLogger(logger.Nop()),
			form.WithValidator("a", required("a")),
		)
		f.Update("a", "")
		assert.True(t, f.Snapshot().Validations["a"].Checked)
	})

	t.Run("field options override the default", func(t *testing.T) {
		form.SetDefaultConfig(form.Config{AutoValidate: true})

		f := form.New(form.Values{"a": "x"},
			form.WithLogger(logger.Nop()),
			form.WithAutoValidate(false),
			form.WithValidator("a", required("a")),
		)
		f.Update("a", "")
		assert.False(t, f.Snapshot().Validations["a"].Checked)
	})

	t.Run("with config replaces the default wholesale", func(t *testing.T) {
		form.SetDefaultConfig(form.Config{AutoValidate: true, PreserveValidationErrorOnUpdate: true})

		f := form.New(form.Values{"a": "x"},
			form.WithLogger(logger.Nop()),
			form.WithConfig(form.Config{}),
			form.WithValidator("a", required("a")),
		)
		f.Update("a", "")
		assert.False(t, f.Snapshot().Validations["a"].Checked)
	})

	t.Run("loads from environment", func(t *testing.T) {
		t.Setenv("FORM_AUTO_VALIDATE", "true")
		t.Setenv("FORM_VALIDATE_CONCURRENTLY_ON_SUBMIT", "true")
		t.Setenv("FORM_PRESERVE_VALIDATION_ERROR_ON_UPDATE", "false")

		cfg, err := form.LoadDefaultConfig()
		require.NoError(t, err)
		assert.Equal(t, form.Config{AutoValidate: true, ValidateConcurrentlyOnSubmit: true}, cfg)
		assert.Equal(t, cfg, form.DefaultConfig())
	})

	t.Run("invalid environment value", func(t *testing.T) {
		form.SetDefaultConfig(form.Config{})
		t.Setenv("FORM_AUTO_VALIDATE", "sometimes")

		_, err := form.LoadDefaultConfig()
		assert.Error(t, err)
		assert.Equal(t, form.Config{}, form.DefaultConfig())
	})
}
