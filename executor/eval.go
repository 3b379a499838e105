package executor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

// evalContext bundles what evalExpr needs to resolve a Symbol (the
// current row) or a GlobalVariable/Assignment (the shared environment).
type evalContext struct {
	row repository.Row
	env *environment.Environment
}

func evalExpr(expr ast.Expression, ec *evalContext) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.NumberExpression:
		if e.IsFloat {
			return value.Float(e.FloatVal), nil
		}
		return value.Int(e.IntVal), nil
	case *ast.StringExpression:
		return value.Text(e.Value), nil
	case *ast.BoolExpression:
		return value.Bool(e.Value), nil
	case *ast.NullExpression:
		return value.Null(), nil
	case *ast.SymbolExpression:
		if ec.row != nil {
			if v, ok := ec.row[e.Name]; ok {
				return v, nil
			}
		}
		if v, ok := ec.env.GlobalValue(e.Name); ok {
			return v, nil
		}
		return value.Null(), nil
	case *ast.GlobalVariableExpression:
		if v, ok := ec.env.GlobalValue(e.Name); ok {
			return v, nil
		}
		return value.Null(), nil
	case *ast.ArrayExpression:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := evalExpr(el, ec)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = v
		}
		return value.Array(e.ElemType, elems), nil
	case *ast.UnaryExpression:
		operand, err := evalExpr(e.Operand, ec)
		if err != nil {
			return value.Value{}, err
		}
		switch e.Operator {
		case ast.UnaryNeg:
			return operand.Neg()
		case ast.UnaryNot:
			return operand.Not()
		default:
			return operand.BitNot()
		}
	case *ast.ArithmeticExpression:
		return evalArithmetic(e, ec)
	case *ast.ComparisonExpression:
		return evalComparison(e, ec)
	case *ast.LogicalExpression:
		return evalLogical(e, ec)
	case *ast.BitwiseExpression:
		return evalBitwise(e, ec)
	case *ast.LikeExpression:
		return evalLike(e, ec, false)
	case *ast.GlobExpression:
		return evalGlob(e, ec)
	case *ast.RegexExpression:
		return evalRegex(e, ec)
	case *ast.InExpression:
		return evalIn(e, ec)
	case *ast.BetweenExpression:
		return evalBetween(e, ec)
	case *ast.IsNullExpression:
		v, err := evalExpr(e.Argument, ec)
		if err != nil {
			return value.Value{}, err
		}
		result := v.IsNull()
		if e.Negated {
			result = !result
		}
		return value.Bool(result), nil
	case *ast.IndexExpression:
		return evalIndex(e, ec)
	case *ast.SliceExpression:
		return evalSlice(e, ec)
	case *ast.CaseExpression:
		return evalCase(e, ec)
	case *ast.CallExpression:
		return evalCall(e, ec)
	case *ast.AssignmentExpression:
		v, err := evalExpr(e.Value, ec)
		if err != nil {
			return value.Value{}, err
		}
		ec.env.SetGlobalValue(e.Name, v)
		return v, nil
	case *ast.CastExpression:
		v, err := evalExpr(e.Value, ec)
		if err != nil {
			return value.Value{}, err
		}
		return v.CastTo(e.Target)
	default:
		return value.Value{}, fmt.Errorf("executor: unhandled expression kind %T", expr)
	}
}

func evalArithmetic(e *ast.ArithmeticExpression, ec *evalContext) (value.Value, error) {
	left, err := evalExpr(e.Left, ec)
	if err != nil {
		return value.Value{}, err
	}
	right, err := evalExpr(e.Right, ec)
	if err != nil {
		return value.Value{}, err
	}
	switch e.Operator {
	case ast.ArithAdd:
		return left.Add(right)
	case ast.ArithSub:
		return left.Sub(right)
	case ast.ArithMul:
		return left.Mul(right)
	case ast.ArithDiv:
		return left.Div(right)
	default:
		li, _ := left.AsInt()
		ri, _ := right.AsInt()
		if ri == 0 {
			return value.Value{}, fmt.Errorf("modulus by zero")
		}
		return value.Int(li % ri), nil
	}
}

func evalComparison(e *ast.ComparisonExpression, ec *evalContext) (value.Value, error) {
	left, err := evalExpr(e.Left, ec)
	if err != nil {
		return value.Value{}, err
	}
	right, err := evalExpr(e.Right, ec)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsNull() || right.IsNull() {
		return value.Value{}, fmt.Errorf("NULL can only be compared with `IS NULL`")
	}

	opName := comparisonOpName(e.Operator)
	if e.IsGroup {
		return left.GroupCompare(right, opName, e.Quantifier)
	}
	switch e.Operator {
	case ast.CmpEqual, ast.CmpNullSafeEqual:
		return left.EqOp(right)
	case ast.CmpNotEqual:
		return left.NeOp(right)
	case ast.CmpLess:
		return left.LtOp(right)
	case ast.CmpLessEqual:
		return left.LteOp(right)
	case ast.CmpGreater:
		return left.GtOp(right)
	default:
		return left.GteOp(right)
	}
}

func comparisonOpName(op ast.ComparisonOperator) string {
	switch op {
	case ast.CmpEqual, ast.CmpNullSafeEqual:
		return "="
	case ast.CmpNotEqual:
		return "!="
	case ast.CmpLess:
		return "<"
	case ast.CmpLessEqual:
		return "<="
	case ast.CmpGreater:
		return ">"
	default:
		return ">="
	}
}

func evalLogical(e *ast.LogicalExpression, ec *evalContext) (value.Value, error) {
	left, err := evalExpr(e.Left, ec)
	if err != nil {
		return value.Value{}, err
	}
	lb, _ := left.AsBool()
	if e.Operator == ast.LogicalAnd && !lb {
		return value.Bool(false), nil
	}
	if e.Operator == ast.LogicalOr && lb {
		return value.Bool(true), nil
	}
	right, err := evalExpr(e.Right, ec)
	if err != nil {
		return value.Value{}, err
	}
	rb, _ := right.AsBool()
	switch e.Operator {
	case ast.LogicalAnd:
		return value.Bool(lb && rb), nil
	case ast.LogicalOr:
		return value.Bool(lb || rb), nil
	default:
		return value.Bool(lb != rb), nil
	}
}

func evalBitwise(e *ast.BitwiseExpression, ec *evalContext) (value.Value, error) {
	left, err := evalExpr(e.Left, ec)
	if err != nil {
		return value.Value{}, err
	}
	right, err := evalExpr(e.Right, ec)
	if err != nil {
		return value.Value{}, err
	}
	switch e.Operator {
	case ast.BitwiseOr:
		return left.BitOr(right)
	case ast.BitwiseAnd:
		return left.BitAnd(right)
	case ast.BitwiseXor:
		return left.BitXor(right)
	case ast.BitwiseShl:
		return left.Shl(right)
	default:
		return left.Shr(right)
	}
}

func evalLike(e *ast.LikeExpression, ec *evalContext, _ bool) (value.Value, error) {
	input, err := evalExpr(e.Input, ec)
	if err != nil {
		return value.Value{}, err
	}
	pattern, err := evalExpr(e.Pattern, ec)
	if err != nil {
		return value.Value{}, err
	}
	s, _ := input.AsText()
	p, _ := pattern.AsText()
	re, err := likeToRegexp(p)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(re.MatchString(s)), nil
}

// likeToRegexp translates SQL LIKE's `%`/`_` wildcards into a regexp,
// escaping everything else.
func likeToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, ch := range pattern {
		switch ch {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func evalGlob(e *ast.GlobExpression, ec *evalContext) (value.Value, error) {
	input, err := evalExpr(e.Input, ec)
	if err != nil {
		return value.Value{}, err
	}
	pattern, err := evalExpr(e.Pattern, ec)
	if err != nil {
		return value.Value{}, err
	}
	s, _ := input.AsText()
	p, _ := pattern.AsText()
	matched, err := globMatch(p, s)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bool(matched), nil
}

func globMatch(pattern, s string) (bool, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, ch := range pattern {
		switch ch {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString("$")
	re, err := regexp.Compile(b.String())
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

func evalRegex(e *ast.RegexExpression, ec *evalContext) (value.Value, error) {
	input, err := evalExpr(e.Input, ec)
	if err != nil {
		return value.Value{}, err
	}
	pattern, err := evalExpr(e.Pattern, ec)
	if err != nil {
		return value.Value{}, err
	}
	s, _ := input.AsText()
	p, _ := pattern.AsText()
	re, err := regexp.Compile(p)
	if err != nil {
		return value.Value{}, fmt.Errorf("invalid regular expression %q: %w", p, err)
	}
	matched := re.MatchString(s)
	if e.Negated {
		matched = !matched
	}
	return value.Bool(matched), nil
}

func evalIn(e *ast.InExpression, ec *evalContext) (value.Value, error) {
	arg, err := evalExpr(e.Argument, ec)
	if err != nil {
		return value.Value{}, err
	}
	found := false
	for _, candidate := range e.Values {
		v, err := evalExpr(candidate, ec)
		if err != nil {
			return value.Value{}, err
		}
		if arg.Equals(v) {
			found = true
			break
		}
	}
	if e.Negated {
		found = !found
	}
	return value.Bool(found), nil
}

func evalBetween(e *ast.BetweenExpression, ec *evalContext) (value.Value, error) {
	v, err := evalExpr(e.Value, ec)
	if err != nil {
		return value.Value{}, err
	}
	lo, err := evalExpr(e.Range1, ec)
	if err != nil {
		return value.Value{}, err
	}
	hi, err := evalExpr(e.Range2, ec)
	if err != nil {
		return value.Value{}, err
	}
	geLo, err := v.GteOp(lo)
	if err != nil {
		return value.Value{}, err
	}
	leHi, err := v.LteOp(hi)
	if err != nil {
		return value.Value{}, err
	}
	lo1, _ := geLo.AsBool()
	hi1, _ := leHi.AsBool()
	return value.Bool(lo1 && hi1), nil
}

func evalIndex(e *ast.IndexExpression, ec *evalContext) (value.Value, error) {
	coll, err := evalExpr(e.Collection, ec)
	if err != nil {
		return value.Value{}, err
	}
	idx, err := evalExpr(e.Index, ec)
	if err != nil {
		return value.Value{}, err
	}
	elems, _ := coll.AsArray()
	i, _ := idx.AsInt()
	if i < 0 || int(i) >= len(elems) {
		return value.Value{}, fmt.Errorf("index %d out of range for array of length %d", i, len(elems))
	}
	return elems[i], nil
}

func evalSlice(e *ast.SliceExpression, ec *evalContext) (value.Value, error) {
	coll, err := evalExpr(e.Collection, ec)
	if err != nil {
		return value.Value{}, err
	}
	elems, _ := coll.AsArray()

	start := 0
	if e.Start != nil {
		v, err := evalExpr(e.Start, ec)
		if err != nil {
			return value.Value{}, err
		}
		i, _ := v.AsInt()
		start = int(i)
	}
	end := len(elems)
	if e.End != nil {
		v, err := evalExpr(e.End, ec)
		if err != nil {
			return value.Value{}, err
		}
		i, _ := v.AsInt()
		end = int(i)
	}
	if start < 0 {
		start = 0
	}
	if end > len(elems) {
		end = len(elems)
	}
	if start > end {
		start = end
	}
	elemType := types.Any()
	if t := coll.DataType(); t.Elem != nil {
		elemType = *t.Elem
	}
	return value.Array(elemType, elems[start:end]), nil
}

func evalCase(e *ast.CaseExpression, ec *evalContext) (value.Value, error) {
	for i, cond := range e.Conditions {
		v, err := evalExpr(cond, ec)
		if err != nil {
			return value.Value{}, err
		}
		if b, _ := v.AsBool(); b {
			return evalExpr(e.Values[i], ec)
		}
	}
	return evalExpr(e.Default, ec)
}

func evalCall(e *ast.CallExpression, ec *evalContext) (value.Value, error) {
	args := make([]value.Value, len(e.Arguments))
	for i, a := range e.Arguments {
		v, err := evalExpr(a, ec)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return functions.CallStd(e.FunctionName, args)
}
