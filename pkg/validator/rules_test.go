package validator_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule validator.Rule
		want bool
	}{
		{"required filled", validator.Required("f", "x"), true},
		{"required blank", validator.Required("f", "  "), false},
		{"min len counts runes", validator.MinLen("f", "héé", 3), true},
		{"min len too short", validator.MinLen("f", "ab", 3), false},
		{"max len", validator.MaxLen("f", "abc", 3), true},
		{"max len too long", validator.MaxLen("f", "abcd", 3), false},
		{"email", validator.Email("f", "user@example.com"), true},
		{"email with name", validator.Email("f", "User <user@example.com>"), false},
		{"email without domain dot", validator.Email("f", "user@localhost"), false},
		{"email garbage", validator.Email("f", "not-an-email"), false},
		{"url", validator.URL("f", "https://example.com/path"), true},
		{"url relative", validator.URL("f", "/path"), false},
		{"url other scheme", validator.URL("f", "ftp://example.com"), false},
		{"pattern match", validator.Matches("f", "ab-12", `^[a-z]+-\d+$`, "slug"), true},
		{"pattern mismatch", validator.Matches("f", "AB", `^[a-z]+$`, "lowercase"), false},
		{"pattern invalid", validator.Matches("f", "a", `(`, "broken"), false},
		{"one of", validator.OneOf("f", "red", []string{"red", "green"}), true},
		{"not one of", validator.OneOf("f", "blue", []string{"red", "green"}), false},
		{"min", validator.Min("f", 5, 5), true},
		{"below min", validator.Min("f", 4.9, 5), false},
		{"max", validator.Max("f", 10, 10), true},
		{"above max", validator.Max("f", 11, 10), false},
		{"uuid", validator.UUID("f", uuid.NewString()), true},
		{"nil uuid", validator.UUID("f", uuid.Nil.String()), false},
		{"uuid without hyphens", validator.UUID("f", "6ba7b8109dad11d180b400c04fd430c8"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Check())
			assert.Equal(t, "f", tt.rule.Error.Field)
			assert.NotEmpty(t, tt.rule.Error.Message)
			assert.Equal(t, "f", tt.rule.Error.TranslationValues["field"])
		})
	}
}

func TestOptional(t *testing.T) {
	t.Parallel()

	assert.Empty(t, validator.Optional("", validator.Email("f", "")))
	assert.Len(t, validator.Optional("x", validator.Email("f", "x")), 1)
}

func TestValidPattern(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ValidPattern(`^\d+$`))
	assert.ErrorIs(t, validator.ValidPattern(`[`), validator.ErrInvalidPattern)
}
