// Package ast implements the expression and statement trees: a typed
// expression sum, a fixed-arm Statement sum per clause kind, and the
// Query sum type bundling a SELECT's ordered clause map.
package ast

import (
	"github.com/Olusamimaths/GQL/token"
	"github.com/Olusamimaths/GQL/types"
)

// ExpressionKind tags each Expression variant for dispatch in the executor
// and type checker without needing type switches on concrete pointer
// types everywhere.
type ExpressionKind int

const (
	NumberKind ExpressionKind = iota
	StringKind
	BoolKind
	NullKind
	SymbolKind
	GlobalVariableKind
	ArrayKind
	UnaryKind
	ArithmeticKind
	ComparisonKind
	LogicalKind
	BitwiseKind
	LikeKind
	GlobKind
	RegexKind
	InKind
	BetweenKind
	IsNullKind
	IndexKind
	SliceKind
	CaseKind
	CallKind
	AssignmentKind
)

// Expression is the interface every expression node implements.
type Expression interface {
	// ExprType answers the expression's static type. It is pure and
	// deterministic: a given node always reports the same type.
	ExprType() types.DataType
	Kind() ExpressionKind
	Pos() token.Location
}

// ---- literals ----

type NumberExpression struct {
	IsFloat  bool
	IntVal   int64
	FloatVal float64
	Location token.Location
}

func (e *NumberExpression) Kind() ExpressionKind { return NumberKind }
func (e *NumberExpression) Pos() token.Location  { return e.Location }
func (e *NumberExpression) ExprType() types.DataType {
	if e.IsFloat {
		return types.Float()
	}
	return types.Integer()
}

type StringExpression struct {
	Value    string
	Location token.Location
}

func (e *StringExpression) Kind() ExpressionKind     { return StringKind }
func (e *StringExpression) Pos() token.Location      { return e.Location }
func (e *StringExpression) ExprType() types.DataType { return types.Text() }

type BoolExpression struct {
	Value    bool
	Location token.Location
}

func (e *BoolExpression) Kind() ExpressionKind     { return BoolKind }
func (e *BoolExpression) Pos() token.Location      { return e.Location }
func (e *BoolExpression) ExprType() types.DataType { return types.Boolean() }

type NullExpression struct {
	Location token.Location
}

func (e *NullExpression) Kind() ExpressionKind     { return NullKind }
func (e *NullExpression) Pos() token.Location      { return e.Location }
func (e *NullExpression) ExprType() types.DataType { return types.Null() }

// ---- names ----

type SymbolExpression struct {
	Name     string
	Type     types.DataType
	Location token.Location
}

func (e *SymbolExpression) Kind() ExpressionKind     { return SymbolKind }
func (e *SymbolExpression) Pos() token.Location      { return e.Location }
func (e *SymbolExpression) ExprType() types.DataType { return e.Type }

type GlobalVariableExpression struct {
	Name     string
	Type     types.DataType
	Location token.Location
}

func (e *GlobalVariableExpression) Kind() ExpressionKind     { return GlobalVariableKind }
func (e *GlobalVariableExpression) Pos() token.Location      { return e.Location }
func (e *GlobalVariableExpression) ExprType() types.DataType { return e.Type }

// ---- compound ----

type ArrayExpression struct {
	ElemType types.DataType
	Elements []Expression
	Location token.Location
}

func (e *ArrayExpression) Kind() ExpressionKind     { return ArrayKind }
func (e *ArrayExpression) Pos() token.Location      { return e.Location }
func (e *ArrayExpression) ExprType() types.DataType { return types.Array(e.ElemType) }

type UnaryOperator int

const (
	UnaryNeg UnaryOperator = iota
	UnaryNot
	UnaryBitNot
)

type UnaryExpression struct {
	Operator   UnaryOperator
	Operand    Expression
	ResultType types.DataType
	Location   token.Location
}

func (e *UnaryExpression) Kind() ExpressionKind     { return UnaryKind }
func (e *UnaryExpression) Pos() token.Location      { return e.Location }
func (e *UnaryExpression) ExprType() types.DataType { return e.ResultType }

type ArithmeticOperator int

const (
	ArithAdd ArithmeticOperator = iota
	ArithSub
	ArithMul
	ArithDiv
	ArithModulus
)

type ArithmeticExpression struct {
	Left       Expression
	Operator   ArithmeticOperator
	Right      Expression
	ResultType types.DataType
}

func (e *ArithmeticExpression) Kind() ExpressionKind     { return ArithmeticKind }
func (e *ArithmeticExpression) Pos() token.Location      { return token.Span(e.Left.Pos(), e.Right.Pos()) }
func (e *ArithmeticExpression) ExprType() types.DataType { return e.ResultType }

type ComparisonOperator int

const (
	CmpEqual ComparisonOperator = iota
	CmpNotEqual
	CmpLess
	CmpLessEqual
	CmpGreater
	CmpGreaterEqual
	CmpNullSafeEqual
)

type GroupQuantifier = types.GroupQuantifier

type ComparisonExpression struct {
	Left       Expression
	Operator   ComparisonOperator
	Right      Expression
	IsGroup    bool
	Quantifier GroupQuantifier
}

func (e *ComparisonExpression) Kind() ExpressionKind     { return ComparisonKind }
func (e *ComparisonExpression) Pos() token.Location      { return token.Span(e.Left.Pos(), e.Right.Pos()) }
func (e *ComparisonExpression) ExprType() types.DataType { return types.Boolean() }

type LogicalOperator int

const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
	LogicalXor
)

type LogicalExpression struct {
	Left     Expression
	Operator LogicalOperator
	Right    Expression
}

func (e *LogicalExpression) Kind() ExpressionKind     { return LogicalKind }
func (e *LogicalExpression) Pos() token.Location      { return token.Span(e.Left.Pos(), e.Right.Pos()) }
func (e *LogicalExpression) ExprType() types.DataType { return types.Boolean() }

type BitwiseOperator int

const (
	BitwiseOr BitwiseOperator = iota
	BitwiseAnd
	BitwiseXor
	BitwiseShl
	BitwiseShr
)

type BitwiseExpression struct {
	Left     Expression
	Operator BitwiseOperator
	Right    Expression
}

func (e *BitwiseExpression) Kind() ExpressionKind     { return BitwiseKind }
func (e *BitwiseExpression) Pos() token.Location      { return token.Span(e.Left.Pos(), e.Right.Pos()) }
func (e *BitwiseExpression) ExprType() types.DataType { return types.Integer() }

type LikeExpression struct {
	Input   Expression
	Pattern Expression
}

func (e *LikeExpression) Kind() ExpressionKind     { return LikeKind }
func (e *LikeExpression) Pos() token.Location      { return token.Span(e.Input.Pos(), e.Pattern.Pos()) }
func (e *LikeExpression) ExprType() types.DataType { return types.Boolean() }

type GlobExpression struct {
	Input   Expression
	Pattern Expression
}

func (e *GlobExpression) Kind() ExpressionKind     { return GlobKind }
func (e *GlobExpression) Pos() token.Location      { return token.Span(e.Input.Pos(), e.Pattern.Pos()) }
func (e *GlobExpression) ExprType() types.DataType { return types.Boolean() }

type RegexExpression struct {
	Input   Expression
	Pattern Expression
	Negated bool
}

func (e *RegexExpression) Kind() ExpressionKind     { return RegexKind }
func (e *RegexExpression) Pos() token.Location      { return token.Span(e.Input.Pos(), e.Pattern.Pos()) }
func (e *RegexExpression) ExprType() types.DataType { return types.Boolean() }

type InExpression struct {
	Argument   Expression
	Values     []Expression
	ValuesType types.DataType
	Negated    bool
	Location   token.Location
}

func (e *InExpression) Kind() ExpressionKind     { return InKind }
func (e *InExpression) Pos() token.Location      { return e.Location }
func (e *InExpression) ExprType() types.DataType { return types.Boolean() }

type BetweenExpression struct {
	Value    Expression
	Range1   Expression
	Range2   Expression
	Location token.Location
}

func (e *BetweenExpression) Kind() ExpressionKind     { return BetweenKind }
func (e *BetweenExpression) Pos() token.Location      { return e.Location }
func (e *BetweenExpression) ExprType() types.DataType { return types.Boolean() }

type IsNullExpression struct {
	Argument Expression
	Negated  bool
	Location token.Location
}

func (e *IsNullExpression) Kind() ExpressionKind     { return IsNullKind }
func (e *IsNullExpression) Pos() token.Location      { return e.Location }
func (e *IsNullExpression) ExprType() types.DataType { return types.Boolean() }

type IndexExpression struct {
	Collection Expression
	Index      Expression
	ElemType   types.DataType
	Location   token.Location
}

func (e *IndexExpression) Kind() ExpressionKind     { return IndexKind }
func (e *IndexExpression) Pos() token.Location      { return e.Location }
func (e *IndexExpression) ExprType() types.DataType { return e.ElemType }

type SliceExpression struct {
	Collection Expression
	Start      Expression // nil if omitted
	End        Expression // nil if omitted
	Location   token.Location
}

func (e *SliceExpression) Kind() ExpressionKind     { return SliceKind }
func (e *SliceExpression) Pos() token.Location      { return e.Location }
func (e *SliceExpression) ExprType() types.DataType { return e.Collection.ExprType() }

type CaseExpression struct {
	Conditions []Expression
	Values     []Expression
	Default    Expression // nil if absent, though parser requires it present
	ValuesType types.DataType
	Location   token.Location
}

func (e *CaseExpression) Kind() ExpressionKind     { return CaseKind }
func (e *CaseExpression) Pos() token.Location      { return e.Location }
func (e *CaseExpression) ExprType() types.DataType { return e.ValuesType }

type CallExpression struct {
	FunctionName string
	Arguments    []Expression
	ReturnType   types.DataType
	Location     token.Location
}

func (e *CallExpression) Kind() ExpressionKind     { return CallKind }
func (e *CallExpression) Pos() token.Location      { return e.Location }
func (e *CallExpression) ExprType() types.DataType { return e.ReturnType }

type AssignmentExpression struct {
	Name     string
	Value    Expression
	Location token.Location
}

func (e *AssignmentExpression) Kind() ExpressionKind     { return AssignmentKind }
func (e *AssignmentExpression) Pos() token.Location      { return e.Location }
func (e *AssignmentExpression) ExprType() types.DataType { return e.Value.ExprType() }

// Literal extracts the field-name-worthy literal of an expression, used by
// the parser to name unaliased selected columns (Symbol -> its name,
// everything else -> "").
func Literal(e Expression) (string, bool) {
	switch v := e.(type) {
	case *SymbolExpression:
		return v.Name, true
	default:
		return "", false
	}
}
