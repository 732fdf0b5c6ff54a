package namedarray_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/namedarray"
)

func TestValidateSame(t *testing.T) {
	out := namedarray.Validate([]namedarray.Field{named("a", "u32"), named("b", "u32"), named("c", "u32")})
	assert.True(t, out.Valid())
	assert.Equal(t, "u32", out.Elem)
	assert.Empty(t, out.Diagnostics)
}

func TestValidateSingle(t *testing.T) {
	out := namedarray.Validate([]namedarray.Field{named("only", "bool")})
	assert.True(t, out.Valid())
	assert.Equal(t, "bool", out.Elem)
}

func TestValidateAccumulates(t *testing.T) {
	out := namedarray.Validate([]namedarray.Field{
		named("a", "T"),
		named("b", "T"),
		named("c", "U"),
		named("d", "T"),
		named("e", "V"),
	})
	assert.False(t, out.Valid())
	assert.Equal(t, "T", out.Elem)

	require.Len(t, out.Diagnostics, 2)
	assert.Equal(t, "c", out.Diagnostics[0].Field.Name)
	assert.Equal(t, "T", out.Diagnostics[0].Want)
	assert.Equal(t, "all fields must have the same type T; got U", out.Diagnostics[0].Error())
	assert.Equal(t, "e", out.Diagnostics[1].Field.Name)
	assert.Equal(t, "all fields must have the same type T; got V", out.Diagnostics[1].Error())
}

func TestValidateExactText(t *testing.T) {
	// Both might refer to the same type, but they are written differently.
	out := namedarray.Validate([]namedarray.Field{named("a", "Option[int]"), named("b", "opt.Option[int]")})
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "b", out.Diagnostics[0].Field.Name)
	assert.Equal(t, "all fields must have the same type Option[int]; got opt.Option[int]", out.Diagnostics[0].Message)
}

func TestValidateReferenceIsFirst(t *testing.T) {
	// The majority does not matter. The first field decides.
	out := namedarray.Validate([]namedarray.Field{named("a", "i8"), named("b", "i16"), named("c", "i16")})
	assert.Equal(t, "i8", out.Elem)
	require.Len(t, out.Diagnostics, 2)
	assert.Equal(t, "b", out.Diagnostics[0].Field.Name)
	assert.Equal(t, "c", out.Diagnostics[1].Field.Name)
}
