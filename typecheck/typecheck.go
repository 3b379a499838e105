// Package typecheck implements the shared routines the parser calls while
// building expressions: binary-operand equality modulo implicit cast,
// function-call argument coercion, and projection symbol resolution.
// Every function here is pure over (env, expr, expected) and returns an
// explicit tagged result rather than mutating its arguments in place.
package typecheck

import (
	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/token"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

// Result is the closed tag a binary-operand check resolves to.
type Result int

const (
	Equals Result = iota
	LeftSideCasted
	RightSideCasted
	NotEqualAndCantImplicitCast
)

// CheckBinaryOperands compares left/right's static types and, when they
// differ only by a documented implicit cast, wraps the narrower side in
// an ast.CastExpression. It never mutates left/right; callers must use
// the returned expressions.
func CheckBinaryOperands(left, right ast.Expression) (newLeft, newRight ast.Expression, result Result) {
	leftType := left.ExprType()
	rightType := right.ExprType()

	if leftType.Kind == rightType.Kind {
		return left, right, Equals
	}

	if leftType.IsAny() || rightType.IsAny() {
		return left, right, Equals
	}

	if leftType.IsInteger() && rightType.IsFloat() {
		return castTo(left, types.Float()), right, LeftSideCasted
	}
	if rightType.IsInteger() && leftType.IsFloat() {
		return left, castTo(right, types.Float()), RightSideCasted
	}

	if leftType.IsText() && canParseAsLiteral(left, rightType) {
		return castTo(left, rightType), right, LeftSideCasted
	}
	if rightType.IsText() && canParseAsLiteral(right, leftType) {
		return left, castTo(right, leftType), RightSideCasted
	}

	if types.Equals(leftType, rightType) {
		return left, right, Equals
	}

	return left, right, NotEqualAndCantImplicitCast
}

func castTo(e ast.Expression, target types.DataType) ast.Expression {
	return &ast.CastExpression{Value: e, Target: target, Location: e.Pos()}
}

// canParseAsLiteral reports whether a Text expression is a string literal
// that actually parses under the canonical format for `target`
// (Date/Time/DateTime). Only literals are checked eagerly; a non-literal
// Text expression (column, call result) is left to fail, if it must, at
// evaluation time.
func canParseAsLiteral(e ast.Expression, target types.DataType) bool {
	str, ok := e.(*ast.StringExpression)
	if !ok {
		return false
	}
	switch {
	case target.IsDate():
		_, ok := value.ParseDate(str.Value)
		return ok
	case target.IsTime():
		_, ok := value.ParseTime(str.Value)
		return ok
	case target.IsDateTime():
		_, ok := value.ParseDateTime(str.Value)
		return ok
	default:
		return false
	}
}

// IsExpressionTypeEquals reports whether expr's type equals expected
// modulo implicit cast, without producing a cast node — used for boolean
// contexts (WHERE/HAVING/OR/AND/XOR) and numeric contexts that only need a
// yes/no answer.
func IsExpressionTypeEquals(expr ast.Expression, expected types.DataType) bool {
	return types.Equals(expr.ExprType(), expected)
}

// CheckFunctionCallArguments aligns each positional argument with the
// declared parameter type, inserting casts where permitted. The last
// parameter may be types.Any() to absorb any number of remaining
// variadic arguments.
func CheckFunctionCallArguments(
	args []ast.Expression,
	params []types.DataType,
	functionName string,
	location token.Location,
) ([]ast.Expression, *diagnostic.Diagnostic) {
	if len(params) == 0 {
		if len(args) != 0 {
			return nil, diagnostic.Newf(
				"function `%s` expects no arguments, got %d", functionName, len(args),
			).WithLocation(location)
		}
		return args, nil
	}

	isVariadic := params[len(params)-1].IsAny()
	if !isVariadic && len(args) != len(params) {
		return nil, diagnostic.Newf(
			"function `%s` expects %d argument(s), got %d", functionName, len(params), len(args),
		).WithLocation(location)
	}
	if isVariadic && len(args) < len(params)-1 {
		return nil, diagnostic.Newf(
			"function `%s` expects at least %d argument(s), got %d", functionName, len(params)-1, len(args),
		).WithLocation(location)
	}

	checked := make([]ast.Expression, len(args))
	for i, arg := range args {
		var expected types.DataType
		if i < len(params) {
			expected = params[i]
		} else {
			expected = params[len(params)-1]
		}
		if expected.IsAny() {
			checked[i] = arg
			continue
		}

		newLeft, _, result := CheckBinaryOperands(arg, &typedPlaceholder{t: expected})
		switch result {
		case Equals:
			checked[i] = arg
		case LeftSideCasted:
			checked[i] = newLeft
		default:
			return nil, diagnostic.Newf(
				"function `%s` argument %d expects type %s, got %s",
				functionName, i+1, expected, arg.ExprType(),
			).WithLocation(arg.Pos())
		}
	}
	return checked, nil
}

// typedPlaceholder is an Expression that only ever answers ExprType; used
// internally to reuse CheckBinaryOperands' casting logic for
// argument-against-parameter checks without duplicating the cast rules.
type typedPlaceholder struct{ t types.DataType }

func (p *typedPlaceholder) ExprType() types.DataType { return p.t }
func (p *typedPlaceholder) Kind() ast.ExpressionKind { return ast.NullKind }
func (p *typedPlaceholder) Pos() token.Location      { return token.Location{} }

// ResolveCallReturnType resolves a function call's return type from its
// signature and the (already checked) argument types.
func ResolveCallReturnType(sig environment.Signature, args []ast.Expression) types.DataType {
	argTypes := make([]types.DataType, len(args))
	for i, a := range args {
		argTypes[i] = a.ExprType()
	}
	return sig.ResolveReturn(argTypes)
}

// TypeCheckProjectionSymbols reports a projected name that appears in more
// than one of the selected tables' schemas; a name found in none of them
// is not reported.
func TypeCheckProjectionSymbols(
	env *environment.Environment,
	selectedTables []string,
	projectionNames []string,
	projectionLocations []token.Location,
) *diagnostic.Diagnostic {
	for i, name := range projectionNames {
		matches := 0
		for _, table := range selectedTables {
			for _, column := range env.Schema.TablesFieldsNames[table] {
				if column == name {
					matches++
				}
			}
		}
		if matches > 1 {
			loc := token.Location{}
			if i < len(projectionLocations) {
				loc = projectionLocations[i]
			}
			return diagnostic.Newf("ambiguous column name `%s`, present in more than one selected table", name).
				WithLocation(loc)
		}
	}
	return nil
}
