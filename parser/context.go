// Package parser implements a hand-written recursive-descent, precedence
// climbing parser fused with type checking: every expression-parsing
// function returns an already-typed ast.Expression, so a type mismatch is
// reported at the point a binary/call/cast node would be built, using the
// same token stream position the syntax error would have used.
package parser

import (
	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/token"
)

// context carries per-query parsing state: the token cursor, the
// environment being populated, and the bookkeeping a SELECT statement
// needs to synthesize aggregation columns and classify hidden selections.
type context struct {
	tokens []token.Token
	pos    int
	env    *environment.Environment

	isInsideSelect       bool
	insideAggregationArg bool

	selectedTables []string
	aliasTable     map[string]string

	// aggregations accumulates, in encounter order, the aggregate calls
	// (or aggregate-containing expressions) lifted out of the SELECT list.
	aggregations []ast.AggregationEntry
	hasGroupBy   bool

	hiddenSelections map[string][]string

	projectionNames     []string
	projectionLocations []token.Location
}

func newContext(tokens []token.Token, env *environment.Environment) *context {
	return &context{
		tokens:           tokens,
		env:              env,
		aliasTable:       map[string]string{},
		hiddenSelections: map[string][]string{},
	}
}

func (c *context) current() token.Token {
	if c.pos >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[c.pos]
}

func (c *context) previous() token.Token {
	return c.tokens[c.pos-1]
}

func (c *context) isAtEnd() bool {
	return c.current().Kind == token.EOF
}

func (c *context) advance() token.Token {
	if !c.isAtEnd() {
		c.pos++
	}
	return c.previous()
}

func (c *context) check(kind token.Kind) bool {
	if c.isAtEnd() {
		return kind == token.EOF
	}
	return c.current().Kind == kind
}

func (c *context) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if c.check(k) {
			c.advance()
			return true
		}
	}
	return false
}

func (c *context) consume(kind token.Kind, message string) (token.Token, *diagnostic.Diagnostic) {
	if c.check(kind) {
		return c.advance(), nil
	}
	return token.Token{}, diagnostic.New(message).WithLocation(c.current().Location)
}
