package parser

import (
	"github.com/jinzhu/inflection"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/token"
)

// parseSelect parses a full SELECT statement into a GQLQuery. The SELECT
// list is lexically ahead of FROM, but its expressions need the FROM
// table's columns in scope to resolve symbols, so parseSelect first scans
// ahead (without consuming) to find and register the FROM table(s), then
// parses every clause in source order.
func (c *context) parseSelect() (*ast.GQLQuery, *diagnostic.Diagnostic) {
	query := ast.NewGQLQuery()
	c.isInsideSelect = true
	defer func() { c.isInsideSelect = false }()

	if err := c.preregisterFromTables(); err != nil {
		return nil, err
	}

	distinctKind, distinctOn, err := c.parseDistinct()
	if err != nil {
		return nil, err
	}

	selectStmt := &ast.SelectStatement{
		Distinct:         distinctKind,
		DistinctOnFields: distinctOn,
	}

	if c.match(token.Star) {
		if len(c.selectedTables) == 0 {
			return nil, diagnostic.New("`SELECT *` requires a `FROM` clause").WithLocation(c.previous().Location)
		}
		selectStmt.IsSelectAll = true
		for _, table := range c.selectedTables {
			for _, field := range c.env.Schema.TablesFieldsNames[table] {
				selectStmt.FieldsNames = append(selectStmt.FieldsNames, field)
				t, _ := c.env.Resolve(field)
				selectStmt.SelectedExpr = append(selectStmt.SelectedExpr, &ast.SymbolExpression{Name: field, Type: t})
				selectStmt.SelectedExprTitles = append(selectStmt.SelectedExprTitles, field)
				c.projectionNames = append(c.projectionNames, field)
			}
		}
	} else {
		for {
			expr, err := c.parseExpression()
			if err != nil {
				return nil, err
			}
			title, _ := ast.Literal(expr)
			if c.match(token.As) {
				name, err := c.consume(token.Symbol, "expect an alias name after `AS`")
				if err != nil {
					return nil, err
				}
				title = name.Literal
				if symbolName, ok := ast.Literal(expr); ok {
					c.aliasTable[title] = symbolName
				}
			}
			if title == "" {
				title = "column"
			}
			selectStmt.SelectedExpr = append(selectStmt.SelectedExpr, expr)
			selectStmt.SelectedExprTitles = append(selectStmt.SelectedExprTitles, title)
			c.projectionNames = append(c.projectionNames, title)
			c.projectionLocations = append(c.projectionLocations, expr.Pos())
			if !c.match(token.Comma) {
				break
			}
		}
	}

	if len(c.selectedTables) == 0 && len(c.aggregations) > 0 {
		return nil, diagnostic.New("aggregation functions should be used only with tables").
			WithLocation(c.current().Location).
			AddHelp("use `DO` for a tableless aggregate-free expression instead")
	}

	selectStmt.TablesToSelectFrom = c.selectedTables
	query.Set(ast.ClauseSelect, selectStmt)

	if c.match(token.From) {
		if _, err := c.consume(token.Symbol, "expect a table name after `FROM`"); err != nil {
			return nil, err
		}
		for {
			joinKind, ok, err := c.matchJoinKeyword()
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
			tableTok, err := c.consume(token.Symbol, "expect a table name after `JOIN`")
			if err != nil {
				return nil, err
			}
			if c.check(token.On) {
				return nil, diagnostic.New("`ON` join predicates are not supported; only `CROSS JOIN` executes").
					WithLocation(c.current().Location)
			}
			if joinKind != ast.JoinCross {
				return nil, diagnostic.New("only `CROSS JOIN` is executable; `LEFT`/`RIGHT`/`INNER JOIN` are parsed but not run").
					WithLocation(tableTok.Location)
			}
			selectStmt.Joins = append(selectStmt.Joins, ast.Join{Kind: joinKind, Table: tableTok.Literal})
		}
	}

	if c.match(token.Where) {
		cond, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if !boolCompatible(cond.ExprType()) {
			return nil, diagnostic.New("`WHERE` condition must be Boolean").WithLocation(cond.Pos())
		}
		if aggregatesReferenced(c, cond) {
			return nil, diagnostic.New("aggregation functions are not allowed in `WHERE`").WithLocation(cond.Pos())
		}
		query.Set(ast.ClauseWhere, &ast.WhereStatement{Condition: cond})
	}

	if c.match(token.Group) {
		if _, err := c.consume(token.By, "expect `BY` after `GROUP`"); err != nil {
			return nil, err
		}
		var values []ast.Expression
		for {
			v, err := c.parseExpression()
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			if !c.match(token.Comma) {
				break
			}
		}
		c.hasGroupBy = true
		query.HasGroupByStatement = true
		query.Set(ast.ClauseGroup, &ast.GroupByStatement{Values: values})
	}

	if len(c.aggregations) > 0 {
		query.HasAggregationFunction = true
		query.Set(ast.ClauseAggregation, &ast.AggregationsStatement{Aggregations: c.aggregations})
	}

	if c.match(token.Having) {
		if !c.hasGroupBy {
			return nil, diagnostic.New("`HAVING` requires a `GROUP BY` clause").WithLocation(c.previous().Location)
		}
		cond, err := c.parseExpression()
		if err != nil {
			return nil, err
		}
		if !boolCompatible(cond.ExprType()) {
			return nil, diagnostic.New("`HAVING` condition must be Boolean").WithLocation(cond.Pos())
		}
		query.Set(ast.ClauseHaving, &ast.HavingStatement{Condition: cond})
	}

	if c.match(token.Order) {
		if _, err := c.consume(token.By, "expect `BY` after `ORDER`"); err != nil {
			return nil, err
		}
		var args []ast.OrderByArgument
		for {
			v, err := c.parseExpression()
			if err != nil {
				return nil, err
			}
			dir := ast.Ascending
			if c.match(token.Desc) {
				dir = ast.Descending
			} else {
				c.match(token.Asc)
			}
			args = append(args, ast.OrderByArgument{Value: v, Direction: dir})
			if !c.match(token.Comma) {
				break
			}
		}
		query.Set(ast.ClauseOrder, &ast.OrderByStatement{Arguments: args})
	}

	if c.match(token.Limit) {
		countTok, err := c.consume(token.Integer, "expect an integer after `LIMIT`")
		if err != nil {
			return nil, err
		}
		count := parseUint(countTok.Literal)
		query.Set(ast.ClauseLimit, &ast.LimitStatement{Count: count})
		if c.match(token.Comma) {
			offsetTok, err := c.consume(token.Integer, "expect an integer offset after `LIMIT n,`")
			if err != nil {
				return nil, err
			}
			if query.Has(ast.ClauseOffset) {
				return nil, diagnostic.New("`OFFSET` already used").WithLocation(offsetTok.Location)
			}
			query.Set(ast.ClauseOffset, &ast.OffsetStatement{Count: parseUint(offsetTok.Literal)})
		}
	}

	if c.match(token.Offset) {
		if query.Has(ast.ClauseOffset) {
			return nil, diagnostic.New("`OFFSET` already used").WithLocation(c.previous().Location)
		}
		offsetTok, err := c.consume(token.Integer, "expect an integer after `OFFSET`")
		if err != nil {
			return nil, err
		}
		query.Set(ast.ClauseOffset, &ast.OffsetStatement{Count: parseUint(offsetTok.Literal)})
	}

	for table, hidden := range c.hiddenSelections {
		var kept []string
		for _, name := range hidden {
			if !contains(c.projectionNames, name) {
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			query.HiddenSelections[table] = kept
		}
	}
	query.AliasTable = c.aliasTable

	return query, nil
}

func parseUint(s string) uint64 {
	var n uint64
	for _, ch := range s {
		n = n*10 + uint64(ch-'0')
	}
	return n
}

// aggregatesReferenced reports whether any synthesized aggregation symbol
// lifted out of the SELECT list is reachable from expr, walking the full
// expression tree rather than just its root: `WHERE` requires a Boolean
// condition, so any real aggregate use in `WHERE` (e.g. `COUNT(*) > 5`) is
// always wrapped in at least a comparison, never the bare symbol itself.
func aggregatesReferenced(c *context, expr ast.Expression) bool {
	if len(c.aggregations) == 0 || expr == nil {
		return false
	}
	if sym, ok := expr.(*ast.SymbolExpression); ok {
		for _, agg := range c.aggregations {
			if agg.Name == sym.Name {
				return true
			}
		}
		return false
	}
	for _, child := range childExpressions(expr) {
		if aggregatesReferenced(c, child) {
			return true
		}
	}
	return false
}

// childExpressions returns the direct operand expressions of expr, for
// any node shape that can nest another expression.
func childExpressions(expr ast.Expression) []ast.Expression {
	switch e := expr.(type) {
	case *ast.ArrayExpression:
		return e.Elements
	case *ast.UnaryExpression:
		return []ast.Expression{e.Operand}
	case *ast.ArithmeticExpression:
		return []ast.Expression{e.Left, e.Right}
	case *ast.ComparisonExpression:
		return []ast.Expression{e.Left, e.Right}
	case *ast.LogicalExpression:
		return []ast.Expression{e.Left, e.Right}
	case *ast.BitwiseExpression:
		return []ast.Expression{e.Left, e.Right}
	case *ast.LikeExpression:
		return []ast.Expression{e.Input, e.Pattern}
	case *ast.GlobExpression:
		return []ast.Expression{e.Input, e.Pattern}
	case *ast.RegexExpression:
		return []ast.Expression{e.Input, e.Pattern}
	case *ast.InExpression:
		children := append([]ast.Expression{e.Argument}, e.Values...)
		return children
	case *ast.BetweenExpression:
		return []ast.Expression{e.Value, e.Range1, e.Range2}
	case *ast.IsNullExpression:
		return []ast.Expression{e.Argument}
	case *ast.IndexExpression:
		return []ast.Expression{e.Collection, e.Index}
	case *ast.SliceExpression:
		children := []ast.Expression{e.Collection}
		if e.Start != nil {
			children = append(children, e.Start)
		}
		if e.End != nil {
			children = append(children, e.End)
		}
		return children
	case *ast.CaseExpression:
		children := append(append([]ast.Expression{}, e.Conditions...), e.Values...)
		if e.Default != nil {
			children = append(children, e.Default)
		}
		return children
	case *ast.CallExpression:
		return e.Arguments
	case *ast.AssignmentExpression:
		return []ast.Expression{e.Value}
	case *ast.CastExpression:
		return []ast.Expression{e.Value}
	default:
		return nil
	}
}

func (c *context) parseDistinct() (ast.DistinctKind, []string, *diagnostic.Diagnostic) {
	if !c.match(token.Distinct) {
		return ast.DistinctNone, nil, nil
	}
	if !c.match(token.On) {
		return ast.DistinctAll, nil, nil
	}
	if _, err := c.consume(token.LeftParen, "expect `(` after `DISTINCT ON`"); err != nil {
		return 0, nil, err
	}
	var fields []string
	for !c.check(token.RightParen) {
		tok, err := c.consume(token.Symbol, "expect a column name in `DISTINCT ON(...)`")
		if err != nil {
			return 0, nil, err
		}
		fields = append(fields, tok.Literal)
		if !c.match(token.Comma) {
			break
		}
	}
	if len(fields) == 0 {
		return 0, nil, diagnostic.New("`DISTINCT ON()` requires at least one column").WithLocation(c.current().Location)
	}
	if _, err := c.consume(token.RightParen, "expect `)` to close `DISTINCT ON(...)`"); err != nil {
		return 0, nil, err
	}
	return ast.DistinctOn, fields, nil
}

func (c *context) matchJoinKeyword() (ast.JoinKind, bool, *diagnostic.Diagnostic) {
	switch {
	case c.match(token.Cross):
		if _, err := c.consume(token.Join, "expect `JOIN` after `CROSS`"); err != nil {
			return 0, false, err
		}
		return ast.JoinCross, true, nil
	case c.match(token.Left):
		if _, err := c.consume(token.Join, "expect `JOIN` after `LEFT`"); err != nil {
			return 0, false, err
		}
		return ast.JoinLeft, true, nil
	case c.match(token.Right):
		if _, err := c.consume(token.Join, "expect `JOIN` after `RIGHT`"); err != nil {
			return 0, false, err
		}
		return ast.JoinRight, true, nil
	case c.match(token.Inner):
		if _, err := c.consume(token.Join, "expect `JOIN` after `INNER`"); err != nil {
			return 0, false, err
		}
		return ast.JoinInner, true, nil
	case c.match(token.Join):
		return ast.JoinCross, true, nil
	default:
		return 0, false, nil
	}
}

// preregisterFromTables scans ahead, without permanently moving the
// cursor past the SELECT list, to find the FROM clause's table (and any
// joined tables) so their columns are in scope while the SELECT list
// itself is parsed.
func (c *context) preregisterFromTables() *diagnostic.Diagnostic {
	depth := 0
	for i := c.pos; i < len(c.tokens); i++ {
		tok := c.tokens[i]
		switch tok.Kind {
		case token.LeftParen, token.LeftBracket:
			depth++
		case token.RightParen, token.RightBracket:
			depth--
		case token.Semicolon, token.EOF:
			return nil
		case token.From:
			if depth != 0 {
				continue
			}
			if i+1 >= len(c.tokens) || c.tokens[i+1].Kind != token.Symbol {
				return diagnostic.New("expect a table name after `FROM`").WithLocation(tok.Location)
			}
			tableName := c.tokens[i+1].Literal
			if err := c.registerTable(tableName, tok.Location); err != nil {
				return err
			}
			i += 2
			for i < len(c.tokens) {
				joinTok := c.tokens[i]
				isJoinStart := joinTok.Kind == token.Join || joinTok.Kind == token.Cross ||
					joinTok.Kind == token.Left || joinTok.Kind == token.Right || joinTok.Kind == token.Inner
				if !isJoinStart {
					break
				}
				for i < len(c.tokens) && c.tokens[i].Kind != token.Join {
					i++
				}
				if i >= len(c.tokens) {
					break
				}
				i++ // consume JOIN
				if i >= len(c.tokens) || c.tokens[i].Kind != token.Symbol {
					return diagnostic.New("expect a table name after `JOIN`").WithLocation(joinTok.Location)
				}
				if err := c.registerTable(c.tokens[i].Literal, joinTok.Location); err != nil {
					return err
				}
				i++
			}
			return nil
		}
	}
	return nil
}

func (c *context) registerTable(name string, loc token.Location) *diagnostic.Diagnostic {
	if _, ok := c.env.Schema.TablesFieldsNames[name]; !ok {
		d := diagnostic.Newf("unresolved table `%s`", name).WithLocation(loc)
		if suggestion := suggestTableName(c.env.TableNames(), name); suggestion != "" {
			d.AddHelp("did you mean `" + suggestion + "`?")
		}
		return d
	}
	if contains(c.selectedTables, name) {
		return diagnostic.Newf("table `%s` is selected more than once; give it a distinct alias", name).WithLocation(loc)
	}
	c.selectedTables = append(c.selectedTables, name)
	c.env.RegisterTableFields(name)
	return nil
}

// suggestTableName first tries the singular/plural counterpart of name
// (e.g. `commit` -> `commits`) before falling back to closest-edit-
// distance matching, since the most common unresolved-table typo is
// getting the table's pluralization wrong.
func suggestTableName(known []string, name string) string {
	for _, candidate := range []string{inflection.Plural(name), inflection.Singular(name)} {
		if candidate != name && contains(known, candidate) {
			return candidate
		}
	}
	return diagnostic.SuggestClosest(name, known, 3)
}
