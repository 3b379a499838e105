package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

func TestCompareIntAndFloatWiden(t *testing.T) {
	cmp, err := value.Int(2).Compare(value.Float(2.0))
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}

func TestCompareMismatchedKindsErrors(t *testing.T) {
	_, err := value.Text("a").Compare(value.Int(1))
	require.Error(t, err)
}

func TestEqualsIsNullSafe(t *testing.T) {
	assert.True(t, value.Null().Equals(value.Null()))
	assert.False(t, value.Null().Equals(value.Int(0)))
}

func TestLiteralFormatting(t *testing.T) {
	assert.Equal(t, "NULL", value.Null().Literal())
	assert.Equal(t, "true", value.Bool(true).Literal())
	assert.Equal(t, "42", value.Int(42).Literal())
	assert.Equal(t, "abc", value.Text("abc").Literal())
}

func TestGroupCompareAllQuantifier(t *testing.T) {
	arr := value.Array(types.Integer(), []value.Value{value.Int(5), value.Int(5), value.Int(5)})
	result, err := value.Int(5).GroupCompare(arr, "=", types.All)
	require.NoError(t, err)
	b, _ := result.AsBool()
	assert.True(t, b)
}

func TestGroupCompareAnyQuantifier(t *testing.T) {
	arr := value.Array(types.Integer(), []value.Value{value.Int(1), value.Int(2), value.Int(5)})
	result, err := value.Int(5).GroupCompare(arr, "=", types.Any)
	require.NoError(t, err)
	b, _ := result.AsBool()
	assert.True(t, b)
}

func TestGroupCompareLteIsGenuineLte(t *testing.T) {
	arr := value.Array(types.Integer(), []value.Value{value.Int(5)})
	result, err := value.Int(5).GroupCompare(arr, "<=", types.All)
	require.NoError(t, err)
	b, _ := result.AsBool()
	assert.True(t, b, "5 <= 5 must hold: `<=` must not alias `<`")
}

func TestCastTextToInteger(t *testing.T) {
	v, err := value.Text("42").CastTo(types.Integer())
	require.NoError(t, err)
	i, _ := v.AsInt()
	assert.Equal(t, int64(42), i)
}

func TestCastTextToIntegerInvalid(t *testing.T) {
	_, err := value.Text("not-a-number").CastTo(types.Integer())
	require.Error(t, err)
}

func TestCastIntToText(t *testing.T) {
	v, err := value.Int(7).CastTo(types.Text())
	require.NoError(t, err)
	s, _ := v.AsText()
	assert.Equal(t, "7", s)
}
