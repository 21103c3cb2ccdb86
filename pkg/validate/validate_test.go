package validate

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type defect string

func (d defect) Error() string { return string(d) }

type fixed []defect

func (f fixed) IterInvalid() iter.Seq[defect] {
	return slices.Values(f)
}

func TestCollectEmpty(t *testing.T) {
	assert.NoError(t, Collect(slices.Values([]defect(nil))))
	assert.NoError(t, Validate[defect](fixed{}))
}

func TestCollectKeepsEveryDefect(t *testing.T) {
	err := Validate[defect](fixed{"a", "b", "a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, defect("b"))

	var errs Errors[defect]
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errors[defect]{"a", "b", "a"}, errs)
	assert.Equal(t, "validation failed: a; b; a", err.Error())
}

func TestErrorsUnwrap(t *testing.T) {
	errs := Errors[defect]{"x", "y"}
	assert.Len(t, errs.Unwrap(), 2)
	assert.False(t, errors.Is(errs, defect("z")))
}
