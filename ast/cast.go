package ast

import (
	"github.com/Olusamimaths/GQL/token"
	"github.com/Olusamimaths/GQL/types"
)

// CastExpression records an implicit or explicit cast: Integer->Float
// widening, or Text->Date/Time/DateTime parsing, inserted by type
// checking wherever two operand types differ only by a permitted cast.
type CastExpression struct {
	Value    Expression
	Target   types.DataType
	Location token.Location
}

// CastKindTag lives outside the main ExpressionKind iota block since this
// node type is declared in a separate file.
const CastKindTag ExpressionKind = 100

func (e *CastExpression) Kind() ExpressionKind     { return CastKindTag }
func (e *CastExpression) Pos() token.Location      { return e.Location }
func (e *CastExpression) ExprType() types.DataType { return e.Target }
