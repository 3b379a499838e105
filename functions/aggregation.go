package functions

import (
	"fmt"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

// RegisterAggregation installs every aggregation function's signature
// into env. SUM/MIN/MAX return the type of the argument they were called
// with; COUNT and AVG have a fixed return type.
func RegisterAggregation(env *environment.Environment) {
	integer, float := types.Integer(), types.Float()
	identity := func(args []types.DataType) types.DataType {
		if len(args) == 0 {
			return types.Any()
		}
		return args[0]
	}

	env.RegisterAggregation("count", environment.Signature{Parameters: []types.DataType{types.Any()}, Return: &integer})
	env.RegisterAggregation("sum", environment.Signature{Parameters: []types.DataType{types.Any()}, ReturnRule: identity})
	env.RegisterAggregation("avg", environment.Signature{Parameters: []types.DataType{types.Any()}, Return: &float})
	env.RegisterAggregation("min", environment.Signature{Parameters: []types.DataType{types.Any()}, ReturnRule: identity})
	env.RegisterAggregation("max", environment.Signature{Parameters: []types.DataType{types.Any()}, ReturnRule: identity})
}

// CallAggregation reduces one column's worth of values (already gathered
// across a group's rows) into the aggregate result.
func CallAggregation(name string, values []value.Value) (value.Value, error) {
	switch name {
	case "count":
		return value.Int(int64(len(values))), nil
	case "sum":
		return reduceNumeric(values, 0, func(acc, f float64) float64 { return acc + f })
	case "avg":
		if len(values) == 0 {
			return value.Float(0), nil
		}
		sum, err := reduceNumeric(values, 0, func(acc, f float64) float64 { return acc + f })
		if err != nil {
			return value.Value{}, err
		}
		total, _ := sum.AsFloat()
		if i, ok := sum.AsInt(); ok {
			total = float64(i)
		}
		return value.Float(total / float64(len(values))), nil
	case "min":
		return extremum(values, -1)
	case "max":
		return extremum(values, 1)
	default:
		return value.Value{}, fmt.Errorf("unknown aggregation function %q", name)
	}
}

func reduceNumeric(values []value.Value, start float64, f func(acc, v float64) float64) (value.Value, error) {
	allInt := true
	acc := start
	for _, v := range values {
		if i, ok := v.AsInt(); ok {
			acc = f(acc, float64(i))
			continue
		}
		if fl, ok := v.AsFloat(); ok {
			allInt = false
			acc = f(acc, fl)
			continue
		}
		return value.Value{}, fmt.Errorf("aggregation over non-numeric value")
	}
	if allInt {
		return value.Int(int64(acc)), nil
	}
	return value.Float(acc), nil
}

func extremum(values []value.Value, wantSign int) (value.Value, error) {
	if len(values) == 0 {
		return value.Null(), nil
	}
	best := values[0]
	for _, v := range values[1:] {
		cmp, err := best.Compare(v)
		if err != nil {
			return value.Value{}, err
		}
		if (wantSign < 0 && cmp > 0) || (wantSign > 0 && cmp < 0) {
			best = v
		}
	}
	return best, nil
}
