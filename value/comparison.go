package value

import (
	"fmt"

	"github.com/Olusamimaths/GQL/types"
)

// EqOp/NeOp/LtOp/LteOp/GtOp/GteOp are the typed comparison operators,
// each returning a Bool or a typed error.
func (v Value) EqOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `=` with: %w", err)
	}
	return Bool(c == 0), nil
}

func (v Value) NeOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `!=` with: %w", err)
	}
	return Bool(c != 0), nil
}

func (v Value) LtOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `<` with: %w", err)
	}
	return Bool(c < 0), nil
}

func (v Value) LteOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `<=` with: %w", err)
	}
	return Bool(c <= 0), nil
}

func (v Value) GtOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `>` with: %w", err)
	}
	return Bool(c > 0), nil
}

func (v Value) GteOp(other Value) (Value, error) {
	c, err := v.Compare(other)
	if err != nil {
		return Value{}, fmt.Errorf("unexpected type to perform `>=` with: %w", err)
	}
	return Bool(c >= 0), nil
}

// GroupCompare implements the quantified scalar-vs-array comparison:
// `op` is one of "=","!=","<","<=",">",">=", and quantifier picks whether
// all elements or any element must satisfy it. `<=` is a genuine
// less-than-or-equal here, not an alias for `<`.
func (v Value) GroupCompare(arr Value, op string, quantifier types.GroupQuantifier) (Value, error) {
	elems, ok := arr.AsArray()
	if !ok {
		return Value{}, fmt.Errorf("unexpected type to perform `%s` with", op)
	}

	cmp, err := comparatorFor(op)
	if err != nil {
		return Value{}, err
	}

	matches := 0
	for _, elem := range elems {
		ok, err := cmp(v, elem)
		if err != nil {
			return Value{}, err
		}
		if ok {
			matches++
			if quantifier == types.Any {
				break
			}
		}
	}

	if quantifier == types.All {
		return Bool(matches == len(elems)), nil
	}
	return Bool(matches > 0), nil
}

func comparatorFor(op string) (func(a, b Value) (bool, error), error) {
	switch op {
	case "=":
		return func(a, b Value) (bool, error) { r, err := a.EqOp(b); return truthy(r), err }, nil
	case "!=":
		return func(a, b Value) (bool, error) { r, err := a.NeOp(b); return truthy(r), err }, nil
	case "<":
		return func(a, b Value) (bool, error) { r, err := a.LtOp(b); return truthy(r), err }, nil
	case "<=":
		return func(a, b Value) (bool, error) { r, err := a.LteOp(b); return truthy(r), err }, nil
	case ">":
		return func(a, b Value) (bool, error) { r, err := a.GtOp(b); return truthy(r), err }, nil
	case ">=":
		return func(a, b Value) (bool, error) { r, err := a.GteOp(b); return truthy(r), err }, nil
	default:
		return nil, fmt.Errorf("unknown group comparison operator %q", op)
	}
}

func truthy(v Value) bool {
	b, _ := v.AsBool()
	return b
}
