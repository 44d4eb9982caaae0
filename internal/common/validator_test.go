package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("new validator is valid", func(t *testing.T) {
		v := NewValidator()
		assert.True(t, v.Valid())
	})

	t.Run("failed check records the error", func(t *testing.T) {
		v := NewValidator()
		v.Check(false, "title", "must be provided")

		assert.False(t, v.Valid())
		assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
	})

	t.Run("first error per field wins", func(t *testing.T) {
		v := NewValidator()
		v.Check(false, "title", "must be provided")
		v.Check(false, "title", "must be between 3 and 100 characters long")

		assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
	})

	t.Run("passing check records nothing", func(t *testing.T) {
		v := NewValidator()
		v.Check(true, "title", "must be provided")

		assert.True(t, v.Valid())
	})
}

func TestCheckStringLength(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.CheckStringLength("abc", 3, 5))
	assert.True(t, v.CheckStringLength("abcde", 3, 5))
	assert.False(t, v.CheckStringLength("ab", 3, 5))
	assert.False(t, v.CheckStringLength("abcdef", 3, 5))
}

func TestPermittedValue(t *testing.T) {
	assert.True(t, PermittedValue("asc", "asc", "desc"))
	assert.False(t, PermittedValue("sideways", "asc", "desc"))
	assert.True(t, PermittedValue(2, 1, 2, 3))
	assert.False(t, PermittedValue(4, 1, 2, 3))
}

func TestValidationError(t *testing.T) {
	v := NewValidator()
	v.Check(false, "email", "must be provided")

	err := v.ValidationError()
	assert.EqualError(t, err, "validation errors: map[email:must be provided]")
	assert.Equal(t, ValidationError{Errors: map[string]string{"email": "must be provided"}}, err)
}
