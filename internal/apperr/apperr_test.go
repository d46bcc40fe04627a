package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("load venue: %w", NotFound("venue", 7))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.EqualError(t, err, "load venue: venue 7 not found")

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, uint(7), nf.ID)
}

func TestStorageUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("create", "venue", cause)

	assert.True(t, IsStorage(err))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestValidationMessages(t *testing.T) {
	err := error(&ValidationError{Fields: []FieldError{
		{Field: "name", Message: "name is a required field"},
		{Field: "genres", Message: "genres must contain at least 1 item"},
	}})

	verr, ok := IsValidation(err)
	assert.True(t, ok)
	assert.Equal(t, []string{"name is a required field", "genres must contain at least 1 item"}, verr.Messages())

	msg, ok := verr.Field("genres")
	assert.True(t, ok)
	assert.Equal(t, "genres must contain at least 1 item", msg)

	_, ok = verr.Field("phone")
	assert.False(t, ok)
	assert.False(t, IsStorage(err))
}
