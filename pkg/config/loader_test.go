package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/config"
)

type cachedConfig struct {
	Name  string `env:"FORMKIT_CACHED_NAME" envDefault:"default"`
	Count int    `env:"FORMKIT_CACHED_COUNT" envDefault:"3"`
}

type requiredConfig struct {
	Value string `env:"FORMKIT_REQUIRED_VALUE,required"`
}

type prefixedConfig struct {
	Enabled bool `env:"ENABLED"`
}

type fileConfig struct {
	Name string   `env:"FORMKIT_TEST_NAME"`
	Tags []string `env:"FORMKIT_TEST_TAGS" envSeparator:","`
}

func TestLoad(t *testing.T) {
	t.Run("parses and caches per type", func(t *testing.T) {
		config.Reset()
		t.Cleanup(config.Reset)
		t.Setenv("FORMKIT_CACHED_NAME", "first")

		var cfg cachedConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "first", cfg.Name)
		assert.Equal(t, 3, cfg.Count)

		t.Setenv("FORMKIT_CACHED_NAME", "second")
		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Name)

		config.Reset()
		var fresh cachedConfig
		require.NoError(t, config.Load(&fresh))
		assert.Equal(t, "second", fresh.Name)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[cachedConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("missing required variable", func(t *testing.T) {
		config.Reset()
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestParse(t *testing.T) {
	t.Run("applies prefix", func(t *testing.T) {
		t.Setenv("FORMKIT_X_ENABLED", "true")

		cfg, err := config.Parse[prefixedConfig]("FORMKIT_X_")
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
	})

	t.Run("is not cached", func(t *testing.T) {
		t.Setenv("FORMKIT_Y_ENABLED", "true")
		cfg, err := config.Parse[prefixedConfig]("FORMKIT_Y_")
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)

		t.Setenv("FORMKIT_Y_ENABLED", "false")
		cfg, err = config.Parse[prefixedConfig]("FORMKIT_Y_")
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("FORMKIT_Z_ENABLED", "maybe")
		_, err := config.Parse[prefixedConfig]("FORMKIT_Z_")
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads variables from file", func(t *testing.T) {
		// Register cleanup for the variables the file sets.
		t.Setenv("FORMKIT_TEST_NAME", "")
		t.Setenv("FORMKIT_TEST_TAGS", "")
		require.NoError(t, unsetAll("FORMKIT_TEST_NAME", "FORMKIT_TEST_TAGS"))

		require.NoError(t, config.LoadEnv("testdata/form.env"))

		cfg, err := config.Parse[fileConfig]("")
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Name)
		assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	})

	t.Run("does not override existing variables", func(t *testing.T) {
		t.Setenv("FORMKIT_TEST_NAME", "from-env")
		require.NoError(t, config.LoadEnv("testdata/form.env"))

		cfg, err := config.Parse[fileConfig]("")
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/missing.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}
