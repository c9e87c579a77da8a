package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("date", "use YYYY-MM-DD").Add("tag", "too long")

	assert.Equal(t, "validation failed: date: use YYYY-MM-DD; tag: too long", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))

	wrapped := fmt.Errorf("list posts: %w", err)
	var target *ValidationError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "too long", target.Fields["tag"])
	assert.True(t, errors.Is(wrapped, ErrValidation))
}

func TestNotFound(t *testing.T) {
	err := NotFound("post", "42")

	assert.Equal(t, "post 42: not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
}
