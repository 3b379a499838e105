// Package functions implements the std and aggregation function
// libraries: signatures registered into an environment.Environment for
// type checking, and the matching evaluators the executor calls by name.
package functions

import (
	"fmt"
	"strings"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

// RegisterStd installs every std function's signature into env.
func RegisterStd(env *environment.Environment) {
	text, integer := types.Text(), types.Integer()

	env.RegisterStdFunction("upper", environment.Signature{Parameters: []types.DataType{text}, Return: &text})
	env.RegisterStdFunction("lower", environment.Signature{Parameters: []types.DataType{text}, Return: &text})
	env.RegisterStdFunction("len", environment.Signature{Parameters: []types.DataType{text}, Return: &integer})
	env.RegisterStdFunction("trim", environment.Signature{Parameters: []types.DataType{text}, Return: &text})
	env.RegisterStdFunction("concat", environment.Signature{
		Parameters: []types.DataType{types.Any()},
		Return:     &text,
	})
}

// CallStd evaluates one std function call against already-evaluated
// argument values.
func CallStd(name string, args []value.Value) (value.Value, error) {
	switch name {
	case "upper":
		s, _ := args[0].AsText()
		return value.Text(strings.ToUpper(s)), nil
	case "lower":
		s, _ := args[0].AsText()
		return value.Text(strings.ToLower(s)), nil
	case "len":
		s, _ := args[0].AsText()
		return value.Int(int64(len(s))), nil
	case "trim":
		s, _ := args[0].AsText()
		return value.Text(strings.TrimSpace(s)), nil
	case "concat":
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.Literal())
		}
		return value.Text(b.String()), nil
	default:
		return value.Value{}, fmt.Errorf("unknown std function %q", name)
	}
}
