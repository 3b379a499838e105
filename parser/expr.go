package parser

import (
	"fmt"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/token"
	"github.com/Olusamimaths/GQL/typecheck"
	"github.com/Olusamimaths/GQL/types"
)

// parseExpression is the descent's entry point: assignment binds loosest.
func (c *context) parseExpression() (ast.Expression, *diagnostic.Diagnostic) {
	return c.parseAssignment()
}

func (c *context) parseAssignment() (ast.Expression, *diagnostic.Diagnostic) {
	if c.check(token.GlobalVariable) && c.peekNext().Kind == token.ColonEqual {
		name := c.advance()
		c.advance() // consume ':='
		value, err := c.parseAssignment()
		if err != nil {
			return nil, err
		}
		c.env.DefineGlobal(name.Literal, value.ExprType())
		return &ast.AssignmentExpression{Name: name.Literal, Value: value, Location: name.Location}, nil
	}
	return c.parseRegex()
}

func (c *context) peekNext() token.Token {
	if c.pos+1 >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos+1]
}

func (c *context) parseRegex() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseIsNull()
	if err != nil {
		return nil, err
	}
	for {
		negated := false
		if c.check(token.Not) && c.peekNext().Kind == token.Regexp {
			c.advance()
			negated = true
		}
		if !c.match(token.Regexp) {
			break
		}
		right, err := c.parseIsNull()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsText() {
			return nil, diagnostic.New("`REGEXP` left hand side must be Text").WithLocation(left.Pos())
		}
		if !right.ExprType().IsText() {
			return nil, diagnostic.New("`REGEXP` right hand side must be Text").WithLocation(right.Pos())
		}
		left = &ast.RegexExpression{Input: left, Pattern: right, Negated: negated}
	}
	return left, nil
}

func (c *context) parseIsNull() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseIn()
	if err != nil {
		return nil, err
	}
	for c.check(token.Is) {
		loc := c.advance().Location
		negated := c.match(token.Not)
		if _, err := c.consume(token.Null, "expect `NULL` after `IS`"); err != nil {
			return nil, err
		}
		left = &ast.IsNullExpression{Argument: left, Negated: negated, Location: loc}
	}
	return left, nil
}

func (c *context) parseIn() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseBetween()
	if err != nil {
		return nil, err
	}
	negated := false
	if c.check(token.Not) && c.peekNext().Kind == token.In {
		c.advance()
		negated = true
	}
	if !c.match(token.In) {
		return left, nil
	}
	loc := c.previous().Location
	if _, err := c.consume(token.LeftParen, "expect `(` after `IN`"); err != nil {
		return nil, err
	}
	var values []ast.Expression
	valuesType := types.Any()
	for !c.check(token.RightParen) {
		v, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(values) > 0 && !types.Equals(valuesType, v.ExprType()) {
			return nil, diagnostic.New("all `IN` values must share one type after widening").WithLocation(v.Pos())
		}
		if len(values) == 0 {
			valuesType = v.ExprType()
		}
		values = append(values, v)
		if !c.match(token.Comma) {
			break
		}
	}
	if _, err := c.consume(token.RightParen, "expect `)` to close `IN` list"); err != nil {
		return nil, err
	}
	return &ast.InExpression{Argument: left, Values: values, ValuesType: valuesType, Negated: negated, Location: loc}, nil
}

func (c *context) parseBetween() (ast.Expression, *diagnostic.Diagnostic) {
	value, err := c.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !c.match(token.Between) {
		return value, nil
	}
	loc := c.previous().Location
	r1, err := c.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if _, err := c.consume(token.DotDot, "expect `..` between `BETWEEN` range bounds"); err != nil {
		return nil, err
	}
	r2, err := c.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !types.Equals(value.ExprType(), r1.ExprType()) || !types.Equals(value.ExprType(), r2.ExprType()) {
		return nil, diagnostic.New("`BETWEEN` bounds must share the value's type").WithLocation(loc)
	}
	return &ast.BetweenExpression{Value: value, Range1: r1, Range2: r2, Location: loc}, nil
}

func (c *context) parseLogicalOr() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for c.match(token.Or) {
		right, err := c.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left, err = c.buildLogical(left, ast.LogicalOr, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) parseLogicalAnd() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseBitwiseOr()
	if err != nil {
		return nil, err
	}
	for c.match(token.And) {
		right, err := c.parseBitwiseOr()
		if err != nil {
			return nil, err
		}
		left, err = c.buildLogical(left, ast.LogicalAnd, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) buildLogical(left ast.Expression, op ast.LogicalOperator, right ast.Expression) (ast.Expression, *diagnostic.Diagnostic) {
	if !boolCompatible(left.ExprType()) || !boolCompatible(right.ExprType()) {
		return nil, diagnostic.New("logical operators require Boolean operands").WithLocation(token.Span(left.Pos(), right.Pos()))
	}
	return &ast.LogicalExpression{Left: left, Operator: op, Right: right}, nil
}

func boolCompatible(t types.DataType) bool {
	return types.Equals(t, types.Boolean())
}

func (c *context) parseBitwiseOr() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseLogicalXor()
	if err != nil {
		return nil, err
	}
	for c.match(token.BitwiseOr) {
		right, err := c.parseLogicalXor()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsInteger() {
			return nil, diagnostic.New("bitwise `|` left hand side must be Integer").WithLocation(left.Pos())
		}
		if !right.ExprType().IsInteger() {
			return nil, diagnostic.New("bitwise `|` right hand side must be Integer").WithLocation(right.Pos())
		}
		left = &ast.BitwiseExpression{Left: left, Operator: ast.BitwiseOr, Right: right}
	}
	return left, nil
}

func (c *context) parseLogicalXor() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseBitwiseAnd()
	if err != nil {
		return nil, err
	}
	for c.match(token.Xor) {
		right, err := c.parseBitwiseAnd()
		if err != nil {
			return nil, err
		}
		left, err = c.buildLogical(left, ast.LogicalXor, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) parseBitwiseAnd() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseEquality()
	if err != nil {
		return nil, err
	}
	for c.match(token.BitwiseAnd) {
		right, err := c.parseEquality()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsInteger() {
			return nil, diagnostic.New("bitwise `&` left hand side must be Integer").WithLocation(left.Pos())
		}
		if !right.ExprType().IsInteger() {
			return nil, diagnostic.New("bitwise `&` right hand side must be Integer").WithLocation(right.Pos())
		}
		left = &ast.BitwiseExpression{Left: left, Operator: ast.BitwiseAnd, Right: right}
	}
	return left, nil
}

func (c *context) parseEquality() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseComparison()
	if err != nil {
		return nil, err
	}
	for c.check(token.EqualEqual) || c.check(token.Equal) || c.check(token.BangEqual) {
		opTok := c.advance()
		right, err := c.parseComparison()
		if err != nil {
			return nil, err
		}
		left, err = c.buildComparison(left, opTok, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) parseComparison() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseBitwiseShift()
	if err != nil {
		return nil, err
	}
	for c.check(token.Less) || c.check(token.LessEqual) || c.check(token.Greater) ||
		c.check(token.GreaterEqual) || c.check(token.NullSafeEqual) {
		opTok := c.advance()
		quantifier := ast.GroupQuantifier(types.All)
		if c.match(token.All) {
			quantifier = types.All
		} else if c.match(token.Any) {
			quantifier = types.Any
		}
		right, err := c.parseBitwiseShift()
		if err != nil {
			return nil, err
		}
		left, err = c.buildComparison(left, opTok, right)
		if err != nil {
			return nil, err
		}
		if cmp, ok := left.(*ast.ComparisonExpression); ok && right.ExprType().IsArray() {
			cmp.IsGroup = true
			cmp.Quantifier = quantifier
		}
	}
	return left, nil
}

func (c *context) buildComparison(left ast.Expression, opTok token.Token, right ast.Expression) (ast.Expression, *diagnostic.Diagnostic) {
	op, opName := comparisonOperator(opTok.Kind)

	if right.ExprType().IsArray() {
		if !types.CanGroupCompare(left.ExprType(), right.ExprType()) {
			return nil, diagnostic.Newf("cannot perform group `%s` between %s and %s", opName, left.ExprType(), right.ExprType()).
				WithLocation(token.Span(left.Pos(), right.Pos()))
		}
		return &ast.ComparisonExpression{Left: left, Operator: op, Right: right}, nil
	}

	newLeft, newRight, result := typecheck.CheckBinaryOperands(left, right)
	if result == typecheck.NotEqualAndCantImplicitCast {
		if newLeft.ExprType().IsNull() || newRight.ExprType().IsNull() {
			return nil, diagnostic.New("NULL can only be compared with `IS NULL`").
				WithLocation(token.Span(left.Pos(), right.Pos())).
				AddHelp("Try to use `IS NULL expr`")
		}
		return nil, diagnostic.Newf("cannot compare %s with %s", left.ExprType(), right.ExprType()).
			WithLocation(token.Span(left.Pos(), right.Pos()))
	}
	return &ast.ComparisonExpression{Left: newLeft, Operator: op, Right: newRight}, nil
}

func comparisonOperator(k token.Kind) (ast.ComparisonOperator, string) {
	switch k {
	case token.EqualEqual, token.Equal:
		return ast.CmpEqual, "="
	case token.BangEqual:
		return ast.CmpNotEqual, "!="
	case token.Less:
		return ast.CmpLess, "<"
	case token.LessEqual:
		return ast.CmpLessEqual, "<="
	case token.Greater:
		return ast.CmpGreater, ">"
	case token.GreaterEqual:
		return ast.CmpGreaterEqual, ">="
	case token.NullSafeEqual:
		return ast.CmpNullSafeEqual, "<=>"
	default:
		return ast.CmpEqual, "="
	}
}

func (c *context) parseBitwiseShift() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseAdditive()
	if err != nil {
		return nil, err
	}
	for c.check(token.BitwiseShiftLeft) || c.check(token.BitwiseShiftRight) {
		opTok := c.advance()
		right, err := c.parseAdditive()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsInteger() || !right.ExprType().IsInteger() {
			return nil, diagnostic.New("bitwise shift requires Integer operands").WithLocation(token.Span(left.Pos(), right.Pos()))
		}
		op := ast.BitwiseShl
		if opTok.Kind == token.BitwiseShiftRight {
			op = ast.BitwiseShr
		}
		left = &ast.BitwiseExpression{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

func (c *context) parseAdditive() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for c.check(token.Plus) || c.check(token.Minus) {
		opTok := c.advance()
		right, err := c.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		opName := "add"
		arithOp := ast.ArithAdd
		if opTok.Kind == token.Minus {
			opName, arithOp = "sub", ast.ArithSub
		}
		left, err = c.buildArithmetic(left, arithOp, opName, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) parseMultiplicative() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseLike()
	if err != nil {
		return nil, err
	}
	for c.check(token.Star) || c.check(token.Slash) || c.check(token.Percent) {
		opTok := c.advance()
		right, err := c.parseLike()
		if err != nil {
			return nil, err
		}
		var opName string
		var arithOp ast.ArithmeticOperator
		switch opTok.Kind {
		case token.Star:
			opName, arithOp = "mul", ast.ArithMul
		case token.Slash:
			opName, arithOp = "div", ast.ArithDiv
		default:
			opName, arithOp = "mod", ast.ArithModulus
		}
		left, err = c.buildArithmetic(left, arithOp, opName, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (c *context) buildArithmetic(left ast.Expression, op ast.ArithmeticOperator, opName string, right ast.Expression) (ast.Expression, *diagnostic.Diagnostic) {
	if !types.CanArithmetic(left.ExprType(), right.ExprType(), opName) {
		return nil, diagnostic.Newf("cannot perform `%s` between %s and %s", opName, left.ExprType(), right.ExprType()).
			WithLocation(token.Span(left.Pos(), right.Pos()))
	}
	result := types.ArithmeticResult(left.ExprType(), right.ExprType(), opName)
	return &ast.ArithmeticExpression{Left: left, Operator: op, Right: right, ResultType: result}, nil
}

func (c *context) parseLike() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseGlob()
	if err != nil {
		return nil, err
	}
	for c.match(token.Like) {
		right, err := c.parseGlob()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsText() || !right.ExprType().IsText() {
			return nil, diagnostic.New("`LIKE` requires Text operands").WithLocation(token.Span(left.Pos(), right.Pos()))
		}
		left = &ast.LikeExpression{Input: left, Pattern: right}
	}
	return left, nil
}

func (c *context) parseGlob() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseIndexOrSlice()
	if err != nil {
		return nil, err
	}
	for c.match(token.Glob) {
		right, err := c.parseIndexOrSlice()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().IsText() || !right.ExprType().IsText() {
			return nil, diagnostic.New("`GLOB` requires Text operands").WithLocation(token.Span(left.Pos(), right.Pos()))
		}
		left = &ast.GlobExpression{Input: left, Pattern: right}
	}
	return left, nil
}

func (c *context) parseIndexOrSlice() (ast.Expression, *diagnostic.Diagnostic) {
	left, err := c.parseUnary()
	if err != nil {
		return nil, err
	}
	for c.match(token.LeftBracket) {
		loc := c.previous().Location
		if !left.ExprType().IsArray() {
			return nil, diagnostic.New("indexing requires an Array operand").WithLocation(left.Pos())
		}
		elemType := types.Any()
		if left.ExprType().Elem != nil {
			elemType = *left.ExprType().Elem
		}

		if c.match(token.Colon) {
			var end ast.Expression
			if !c.check(token.RightBracket) {
				end, err = c.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			if _, err := c.consume(token.RightBracket, "expect `]` to close slice"); err != nil {
				return nil, err
			}
			left = &ast.SliceExpression{Collection: left, Start: nil, End: end, Location: loc}
			continue
		}

		index, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if c.match(token.Colon) {
			var end ast.Expression
			if !c.check(token.RightBracket) {
				end, err = c.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			if _, err := c.consume(token.RightBracket, "expect `]` to close slice"); err != nil {
				return nil, err
			}
			left = &ast.SliceExpression{Collection: left, Start: index, End: end, Location: loc}
			continue
		}
		if !index.ExprType().IsInteger() {
			return nil, diagnostic.New("index expression must be Integer").WithLocation(index.Pos())
		}
		if _, err := c.consume(token.RightBracket, "expect `]` to close index"); err != nil {
			return nil, err
		}
		left = &ast.IndexExpression{Collection: left, Index: index, ElemType: elemType, Location: loc}
	}
	return left, nil
}

func (c *context) parseUnary() (ast.Expression, *diagnostic.Diagnostic) {
	switch {
	case c.match(token.Bang, token.Not):
		loc := c.previous().Location
		operand, err := c.parseUnary()
		if err != nil {
			return nil, err
		}
		if !types.CanNot(operand.ExprType()) {
			return nil, diagnostic.New("unary `!`/`NOT` requires a Boolean operand").WithLocation(loc)
		}
		return &ast.UnaryExpression{Operator: ast.UnaryNot, Operand: operand, ResultType: types.Boolean(), Location: loc}, nil
	case c.match(token.Minus):
		loc := c.previous().Location
		operand, err := c.parseUnary()
		if err != nil {
			return nil, err
		}
		if !types.CanNeg(operand.ExprType()) {
			return nil, diagnostic.New("unary `-` requires a numeric operand").WithLocation(loc)
		}
		return &ast.UnaryExpression{Operator: ast.UnaryNeg, Operand: operand, ResultType: types.NegResult(operand.ExprType()), Location: loc}, nil
	case c.match(token.BitwiseNot):
		loc := c.previous().Location
		operand, err := c.parseUnary()
		if err != nil {
			return nil, err
		}
		if !types.CanBitNot(operand.ExprType()) {
			return nil, diagnostic.New("unary `~` requires an Integer operand").WithLocation(loc)
		}
		return &ast.UnaryExpression{Operator: ast.UnaryBitNot, Operand: operand, ResultType: types.Integer(), Location: loc}, nil
	default:
		return c.parseCall()
	}
}

func (c *context) parseCall() (ast.Expression, *diagnostic.Diagnostic) {
	return c.parsePrimary()
}

func (c *context) parsePrimary() (ast.Expression, *diagnostic.Diagnostic) {
	switch {
	case c.match(token.Integer):
		tok := c.previous()
		var n int64
		fmt.Sscanf(tok.Literal, "%d", &n)
		return &ast.NumberExpression{IsFloat: false, IntVal: n, Location: tok.Location}, nil
	case c.match(token.Float):
		tok := c.previous()
		var f float64
		fmt.Sscanf(tok.Literal, "%g", &f)
		return &ast.NumberExpression{IsFloat: true, FloatVal: f, Location: tok.Location}, nil
	case c.match(token.String):
		tok := c.previous()
		return &ast.StringExpression{Value: tok.Literal, Location: tok.Location}, nil
	case c.match(token.True):
		return &ast.BoolExpression{Value: true, Location: c.previous().Location}, nil
	case c.match(token.False):
		return &ast.BoolExpression{Value: false, Location: c.previous().Location}, nil
	case c.match(token.Null):
		return &ast.NullExpression{Location: c.previous().Location}, nil
	case c.match(token.GlobalVariable):
		tok := c.previous()
		t, ok := c.env.ResolveGlobal(tok.Literal)
		if !ok {
			return nil, diagnostic.Newf("unresolved global variable `@%s`", tok.Literal).WithLocation(tok.Location)
		}
		return &ast.GlobalVariableExpression{Name: tok.Literal, Type: t, Location: tok.Location}, nil
	case c.match(token.Array):
		return c.parseArrayLiteral(true)
	case c.check(token.LeftBracket):
		return c.parseArrayLiteral(false)
	case c.match(token.LeftParen):
		inner, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := c.consume(token.RightParen, "expect `)` to close grouped expression"); err != nil {
			return nil, err
		}
		return inner, nil
	case c.match(token.Case):
		return c.parseCase()
	case c.check(token.Symbol):
		return c.parseSymbolOrCall()
	default:
		return nil, diagnostic.Newf("expected an expression, found `%s`", c.current().Kind).WithLocation(c.current().Location)
	}
}

func (c *context) parseArrayLiteral(hadArrayKeyword bool) (ast.Expression, *diagnostic.Diagnostic) {
	start := c.current().Location
	if hadArrayKeyword {
		if _, err := c.consume(token.LeftBracket, "expect `[` after `ARRAY`"); err != nil {
			return nil, err
		}
	} else {
		c.advance() // consume '['
	}
	var elements []ast.Expression
	elemType := types.Any()
	for !c.check(token.RightBracket) {
		e, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(elements) > 0 && !types.Equals(elemType, e.ExprType()) {
			return nil, diagnostic.New("array elements must share one type after widening").WithLocation(e.Pos())
		}
		if len(elements) == 0 {
			elemType = e.ExprType()
		}
		elements = append(elements, e)
		if !c.match(token.Comma) {
			break
		}
	}
	end, err := c.consume(token.RightBracket, "expect `]` to close array literal")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayExpression{ElemType: elemType, Elements: elements, Location: token.Span(start, end.Location)}, nil
}

func (c *context) parseCase() (ast.Expression, *diagnostic.Diagnostic) {
	loc := c.previous().Location
	var conditions, values []ast.Expression
	valuesType := types.Any()

	for c.match(token.When) {
		cond, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if !boolCompatible(cond.ExprType()) {
			return nil, diagnostic.New("`CASE WHEN` condition must be Boolean").WithLocation(cond.Pos())
		}
		if _, err := c.consume(token.Then, "expect `THEN` after `WHEN` condition"); err != nil {
			return nil, err
		}
		val, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(values) > 0 && !types.Equals(valuesType, val.ExprType()) {
			return nil, diagnostic.New("all `CASE` value arms must share one type").WithLocation(val.Pos())
		}
		if len(values) == 0 {
			valuesType = val.ExprType()
		}
		conditions = append(conditions, cond)
		values = append(values, val)
	}
	if len(conditions) == 0 {
		return nil, diagnostic.New("`CASE` requires at least one `WHEN` arm").WithLocation(loc)
	}

	if _, err := c.consume(token.Else, "`CASE` requires an `ELSE` arm"); err != nil {
		return nil, err
	}
	defaultVal, err := c.parseExpression()
	if err != nil {
		return nil, err
	}
	if !types.Equals(valuesType, defaultVal.ExprType()) {
		return nil, diagnostic.New("`ELSE` arm must share the `CASE` value type").WithLocation(defaultVal.Pos())
	}
	if _, err := c.consume(token.End, "expect `END` to close `CASE`"); err != nil {
		return nil, err
	}
	return &ast.CaseExpression{Conditions: conditions, Values: values, Default: defaultVal, ValuesType: valuesType, Location: loc}, nil
}

func (c *context) parseSymbolOrCall() (ast.Expression, *diagnostic.Diagnostic) {
	tok := c.advance()
	name := tok.Literal

	if c.check(token.LeftParen) {
		return c.parseCallArguments(lower(name), tok.Location)
	}

	return c.resolveSymbol(name, tok.Location)
}

func (c *context) parseCallArguments(name string, loc token.Location) (ast.Expression, *diagnostic.Diagnostic) {
	c.advance() // consume '('
	var args []ast.Expression
	wasInsideAggArg := c.insideAggregationArg
	isAggregate := c.env.IsAggregationFunction(name)
	if isAggregate {
		if c.insideAggregationArg {
			return nil, diagnostic.New("aggregate functions cannot be nested").WithLocation(loc)
		}
		c.insideAggregationArg = true
	}
	for !c.check(token.RightParen) {
		if c.match(token.Star) {
			args = append(args, &ast.SymbolExpression{Name: "*", Type: types.Any(), Location: c.previous().Location})
		} else {
			arg, err := c.parseExpression()
			if err != nil {
				c.insideAggregationArg = wasInsideAggArg
				return nil, err
			}
			args = append(args, arg)
		}
		if !c.match(token.Comma) {
			break
		}
	}
	c.insideAggregationArg = wasInsideAggArg
	end, err := c.consume(token.RightParen, "expect `)` to close function call")
	if err != nil {
		return nil, err
	}
	fullLoc := token.Span(loc, end.Location)

	if isAggregate {
		sig, _ := c.env.AggregationSignature(name)
		checkedArgs, derr := typecheck.CheckFunctionCallArguments(args, sig.Parameters, name, fullLoc)
		if derr != nil {
			return nil, derr
		}
		returnType := typecheck.ResolveCallReturnType(sig, checkedArgs)
		genName := c.synthesizeAggregationName(name)
		c.env.Define(genName, returnType)
		c.aggregations = append(c.aggregations, ast.AggregationEntry{
			Name:  genName,
			Value: &ast.AggregateFunctionValue{FunctionName: name, Arguments: checkedArgs},
		})
		return &ast.SymbolExpression{Name: genName, Type: returnType, Location: fullLoc}, nil
	}

	sig, ok := c.env.StdSignature(name)
	if !ok {
		msg := fmt.Sprintf("unknown function `%s`", name)
		return nil, diagnostic.New(msg).WithLocation(fullLoc)
	}
	checkedArgs, derr := typecheck.CheckFunctionCallArguments(args, sig.Parameters, name, fullLoc)
	if derr != nil {
		return nil, derr
	}
	returnType := typecheck.ResolveCallReturnType(sig, checkedArgs)
	return &ast.CallExpression{FunctionName: name, Arguments: checkedArgs, ReturnType: returnType, Location: fullLoc}, nil
}

// resolveSymbol implements identifier resolution in a SELECT tail: rewrite
// through an alias if one exists, error if unresolvable, and record a
// hidden selection if the name isn't already explicitly projected.
func (c *context) resolveSymbol(name string, loc token.Location) (ast.Expression, *diagnostic.Diagnostic) {
	resolvedName := name
	if alias, ok := c.aliasTable[name]; ok {
		resolvedName = alias
	}

	t, ok := c.env.Resolve(resolvedName)
	if !ok {
		suggestion := suggestColumn(c, resolvedName)
		d := diagnostic.Newf("unresolved column or variable `%s`", name).WithLocation(loc)
		if suggestion != "" {
			d.AddHelp(fmt.Sprintf("did you mean `%s`?", suggestion))
		}
		return nil, d
	}

	if c.isInsideSelect && !contains(c.projectionNames, resolvedName) {
		table := c.attributeHiddenSelection(resolvedName)
		c.hiddenSelections[table] = appendUnique(c.hiddenSelections[table], resolvedName)
	}

	return &ast.SymbolExpression{Name: resolvedName, Type: t, Location: loc}, nil
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func appendUnique(xs []string, x string) []string {
	if contains(xs, x) {
		return xs
	}
	return append(xs, x)
}
