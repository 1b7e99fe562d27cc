package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/projectkeys/pkg/validator"
)

func TestRequiredString(t *testing.T) {
	t.Run("passes for non-empty string", func(t *testing.T) {
		rule := validator.RequiredString("name", "Fiesta Lama")
		assert.True(t, rule.Check())
		assert.Equal(t, "name", rule.Error.Field)
		assert.Equal(t, "field is required", rule.Error.Message)
		assert.Equal(t, "validation.required", rule.Error.TranslationKey)
		assert.Equal(t, map[string]any{"field": "name"}, rule.Error.TranslationValues)
	})

	t.Run("fails for empty string", func(t *testing.T) {
		assert.False(t, validator.RequiredString("name", "").Check())
	})

	t.Run("fails for whitespace-only string", func(t *testing.T) {
		assert.False(t, validator.RequiredString("name", " \t ").Check())
	})
}

func TestMaxLenString(t *testing.T) {
	t.Run("counts characters not bytes", func(t *testing.T) {
		assert.True(t, validator.MaxLenString("name", "ééé", 3).Check())
		assert.False(t, validator.MaxLenString("name", "éééé", 3).Check())
	})

	t.Run("reports maximum in message", func(t *testing.T) {
		rule := validator.MaxLenString("name", "x", 255)
		assert.Equal(t, "must be at most 255 characters long", rule.Error.Message)
		assert.Equal(t, "validation.max_length", rule.Error.TranslationKey)
	})
}
