package functions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/value"
)

func TestCallStdUpperLower(t *testing.T) {
	v, err := functions.CallStd("upper", []value.Value{value.Text("abc")})
	require.NoError(t, err)
	s, _ := v.AsText()
	assert.Equal(t, "ABC", s)

	v, err = functions.CallStd("lower", []value.Value{value.Text("ABC")})
	require.NoError(t, err)
	s, _ = v.AsText()
	assert.Equal(t, "abc", s)
}

func TestCallStdLenAndTrim(t *testing.T) {
	v, err := functions.CallStd("len", []value.Value{value.Text("hello")})
	require.NoError(t, err)
	n, _ := v.AsInt()
	assert.Equal(t, int64(5), n)

	v, err = functions.CallStd("trim", []value.Value{value.Text("  hi  ")})
	require.NoError(t, err)
	s, _ := v.AsText()
	assert.Equal(t, "hi", s)
}

func TestCallStdConcat(t *testing.T) {
	v, err := functions.CallStd("concat", []value.Value{value.Text("a"), value.Int(1), value.Text("b")})
	require.NoError(t, err)
	s, _ := v.AsText()
	assert.Equal(t, "a1b", s)
}

func TestCallStdUnknown(t *testing.T) {
	_, err := functions.CallStd("nope", nil)
	require.Error(t, err)
}

func TestCallAggregationCount(t *testing.T) {
	v, err := functions.CallAggregation("count", []value.Value{value.Int(1), value.Int(1), value.Int(1)})
	require.NoError(t, err)
	n, _ := v.AsInt()
	assert.Equal(t, int64(3), n)
}

func TestCallAggregationSumAllIntegers(t *testing.T) {
	v, err := functions.CallAggregation("sum", []value.Value{value.Int(1), value.Int(2), value.Int(3)})
	require.NoError(t, err)
	n, ok := v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(6), n)
}

func TestCallAggregationSumMixedFloat(t *testing.T) {
	v, err := functions.CallAggregation("sum", []value.Value{value.Int(1), value.Float(2.5)})
	require.NoError(t, err)
	f, ok := v.AsFloat()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)
}

func TestCallAggregationAvg(t *testing.T) {
	v, err := functions.CallAggregation("avg", []value.Value{value.Int(2), value.Int(4)})
	require.NoError(t, err)
	f, _ := v.AsFloat()
	assert.Equal(t, 3.0, f)
}

func TestCallAggregationMinMax(t *testing.T) {
	values := []value.Value{value.Int(5), value.Int(1), value.Int(9)}
	min, err := functions.CallAggregation("min", values)
	require.NoError(t, err)
	n, _ := min.AsInt()
	assert.Equal(t, int64(1), n)

	max, err := functions.CallAggregation("max", values)
	require.NoError(t, err)
	n, _ = max.AsInt()
	assert.Equal(t, int64(9), n)
}

func TestCallAggregationMinMaxEmpty(t *testing.T) {
	v, err := functions.CallAggregation("min", nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}
