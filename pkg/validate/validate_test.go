package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("name", "hello", "project"))
	assert.Error(t, Required("name", "  ", "project"))
}

func TestOneOf(t *testing.T) {
	assert.NoError(t, OneOf("kind", "executable", []string{"executable", "static-library"}))
	err := OneOf("kind", "bogus", []string{"executable", "static-library"})
	assert.ErrorContains(t, err, "must be one of")
}

func TestErrorsCollection(t *testing.T) {
	var errs Errors
	assert.False(t, errs.HasErrors())
	errs.Add("name", "is required", "")
	errs.Add("version", "must be a dotted triplet", "1.0")
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.Error(), "validation failed:")
	assert.Contains(t, errs.Error(), "is required")
}
