package parser

import (
	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/lexer"
	"github.com/Olusamimaths/GQL/token"
)

// ParseGQL tokenizes and parses one GitQL query into its typed AST,
// reusing env across calls so SET-declared globals persist between
// statements in the same session.
func ParseGQL(source string, env *environment.Environment) (ast.Query, *diagnostic.Diagnostic) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	c := newContext(tokens, env)
	query, err := c.parseQuery()
	if err != nil {
		return nil, err
	}

	c.match(token.Semicolon)
	if !c.isAtEnd() {
		return nil, diagnostic.Newf("unexpected content after statement: `%s`", c.current().Literal).
			WithLocation(c.current().Location)
	}

	return query, nil
}

func (c *context) parseQuery() (ast.Query, *diagnostic.Diagnostic) {
	switch {
	case c.match(token.Do):
		expr, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(c.aggregations) > 0 {
			return nil, diagnostic.New("aggregation functions require a `FROM` clause; use `SELECT` instead of `DO`").
				WithLocation(expr.Pos())
		}
		return &ast.DoQuery{Expression: expr}, nil

	case c.match(token.Set):
		nameTok, err := c.consume(token.GlobalVariable, "expect a global variable (`@name`) after `SET`")
		if err != nil {
			return nil, err
		}
		if !c.match(token.Equal, token.ColonEqual) {
			return nil, diagnostic.New("expect `=` or `:=` after global variable name").WithLocation(c.current().Location)
		}
		value, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if len(c.aggregations) > 0 {
			return nil, diagnostic.New("cannot assign an aggregation function result to a global variable").
				WithLocation(value.Pos())
		}
		c.env.DefineGlobal(nameTok.Literal, value.ExprType())
		return &ast.GlobalVariableDeclarationQuery{Name: nameTok.Literal, Value: value}, nil

	case c.match(token.Select):
		query, err := c.parseSelect()
		if err != nil {
			return nil, err
		}
		return &ast.SelectQuery{Query: query}, nil

	case c.match(token.Describe):
		tableTok, err := c.consume(token.Symbol, "expect a table name after `DESCRIBE`")
		if err != nil {
			return nil, err
		}
		if _, ok := c.env.Schema.TablesFieldsNames[tableTok.Literal]; !ok {
			d := diagnostic.Newf("unresolved table `%s`", tableTok.Literal).WithLocation(tableTok.Location)
			if s := suggestTableName(c.env.TableNames(), tableTok.Literal); s != "" {
				d.AddHelp("did you mean `" + s + "`?")
			}
			return nil, d
		}
		return &ast.DescribeQuery{TableName: tableTok.Literal}, nil

	case c.match(token.Show):
		if _, err := c.consume(token.Tables, "expect `TABLES` after `SHOW`"); err != nil {
			return nil, err
		}
		return &ast.ShowTablesQuery{}, nil

	default:
		return nil, diagnostic.Newf("expected `DO`, `SET`, `SELECT`, `DESCRIBE` or `SHOW`, found `%s`", c.current().Kind).
			WithLocation(c.current().Location)
	}
}
