// Package executor runs a parsed ast.Query against one or more
// repository.Repository row sources: SELECT fans a scan out across every
// repository, then walks the fixed clause pipeline (where, group,
// aggregation, having, order, offset, limit) against the pooled rows.
package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/value"
)

// state names the pipeline stage the executor just finished, logged at
// debug level as the query advances.
type state int

const (
	stateStart state = iota
	stateAfterSelect
	stateAfterWhere
	stateAfterGroup
	stateAfterAggregation
	stateAfterHaving
	stateAfterOrder
	stateAfterOffset
	stateAfterLimit
	stateFinal
)

func (s state) String() string {
	names := [...]string{
		"start", "after_select", "after_where", "after_group", "after_aggregation",
		"after_having", "after_order", "after_offset", "after_limit", "final",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// EvaluationValues is the SELECT result: a list of groups (each a list
// of rows sharing a group key, collapsed to one representative row once
// GROUP BY or an aggregate is present) plus the hidden selections the
// parser classified per table.
type EvaluationValues struct {
	Titles           []string
	Groups           [][]repository.Row
	HiddenSelections map[string][]string
}

// Result is the tagged union of everything ParseGQL's five Query
// variants can evaluate to.
type Result struct {
	Select     *EvaluationValues
	DoValue    value.Value
	Tables     []string
	Describe   []environment.Column
	GlobalName string
}

type Executor struct {
	env    *environment.Environment
	repos  []repository.Repository
	logger *zap.Logger
}

func New(env *environment.Environment, repos []repository.Repository, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{env: env, repos: repos, logger: logger}
}

func (ex *Executor) transition(s state) {
	ex.logger.Debug("executor state transition", zap.String("state", s.String()))
}

// Execute runs one parsed query to completion.
func (ex *Executor) Execute(ctx context.Context, query ast.Query) (*Result, error) {
	ex.transition(stateStart)
	switch q := query.(type) {
	case *ast.DoQuery:
		v, err := evalExpr(q.Expression, &evalContext{env: ex.env})
		if err != nil {
			return nil, err
		}
		ex.transition(stateFinal)
		return &Result{DoValue: v}, nil

	case *ast.GlobalVariableDeclarationQuery:
		v, err := evalExpr(q.Value, &evalContext{env: ex.env})
		if err != nil {
			return nil, err
		}
		ex.env.SetGlobalValue(q.Name, v)
		ex.transition(stateFinal)
		return &Result{GlobalName: q.Name, DoValue: v}, nil

	case *ast.DescribeQuery:
		var cols []environment.Column
		for _, name := range ex.env.Schema.TablesFieldsNames[q.TableName] {
			cols = append(cols, environment.Column{Name: name, Type: ex.env.Schema.TablesFieldsTypes[name]})
		}
		ex.transition(stateFinal)
		return &Result{Describe: cols}, nil

	case *ast.ShowTablesQuery:
		ex.transition(stateFinal)
		return &Result{Tables: ex.env.TableNames()}, nil

	case *ast.SelectQuery:
		ev, err := ex.executeSelect(ctx, q.Query)
		if err != nil {
			return nil, err
		}
		return &Result{Select: ev}, nil

	default:
		return nil, fmt.Errorf("executor: unsupported query type %T", query)
	}
}

func (ex *Executor) executeSelect(ctx context.Context, q *ast.GQLQuery) (*EvaluationValues, error) {
	selectStmtIface, _ := q.Get(ast.ClauseSelect)
	selectStmt, ok := selectStmtIface.(*ast.SelectStatement)
	if !ok {
		return nil, fmt.Errorf("executor: SELECT clause missing its statement")
	}

	rows, err := ex.scanRows(ctx, selectStmt)
	if err != nil {
		return nil, err
	}
	ex.transition(stateAfterSelect)

	if whereIface, ok := q.Get(ast.ClauseWhere); ok {
		where := whereIface.(*ast.WhereStatement)
		rows, err = filterRows(rows, where.Condition, ex.env)
		if err != nil {
			return nil, err
		}
	}
	ex.transition(stateAfterWhere)

	var groupByValues []ast.Expression
	if groupIface, ok := q.Get(ast.ClauseGroup); ok {
		groupByValues = groupIface.(*ast.GroupByStatement).Values
	}

	var aggregations []ast.AggregationEntry
	if aggIface, ok := q.Get(ast.ClauseAggregation); ok {
		aggregations = aggIface.(*ast.AggregationsStatement).Aggregations
	}

	groups := groupRows(rows, groupByValues, ex.env)
	if len(groupByValues) == 0 && len(aggregations) > 0 {
		groups = [][]repository.Row{rows}
	}
	ex.transition(stateAfterGroup)

	representatives, err := reduceGroups(groups, aggregations, ex.env)
	if err != nil {
		return nil, err
	}
	ex.transition(stateAfterAggregation)

	if havingIface, ok := q.Get(ast.ClauseHaving); ok {
		having := havingIface.(*ast.HavingStatement)
		representatives, err = filterRows(representatives, having.Condition, ex.env)
		if err != nil {
			return nil, err
		}
	}
	ex.transition(stateAfterHaving)

	if orderIface, ok := q.Get(ast.ClauseOrder); ok {
		order := orderIface.(*ast.OrderByStatement)
		if err := sortRows(representatives, order.Arguments, ex.env); err != nil {
			return nil, err
		}
	}
	ex.transition(stateAfterOrder)

	if offsetIface, ok := q.Get(ast.ClauseOffset); ok {
		n := int(offsetIface.(*ast.OffsetStatement).Count)
		if n > len(representatives) {
			n = len(representatives)
		}
		representatives = representatives[n:]
	}
	ex.transition(stateAfterOffset)

	if limitIface, ok := q.Get(ast.ClauseLimit); ok {
		n := int(limitIface.(*ast.LimitStatement).Count)
		if n < len(representatives) {
			representatives = representatives[:n]
		}
	}
	ex.transition(stateAfterLimit)

	projected, err := project(representatives, selectStmt, ex.env)
	if err != nil {
		return nil, err
	}
	projected = applyDistinct(projected, selectStmt)

	out := &EvaluationValues{
		Titles:           selectStmt.SelectedExprTitles,
		HiddenSelections: q.HiddenSelections,
	}
	for _, row := range projected {
		out.Groups = append(out.Groups, []repository.Row{row})
	}

	ex.transition(stateFinal)
	return out, nil
}

// applyDistinct deduplicates projected rows: DistinctAll compares every
// projected column, DistinctOn compares only the named columns.
func applyDistinct(rows []repository.Row, stmt *ast.SelectStatement) []repository.Row {
	if stmt.Distinct == ast.DistinctNone {
		return rows
	}
	fields := stmt.DistinctOnFields
	if stmt.Distinct == ast.DistinctAll {
		fields = stmt.SelectedExprTitles
	}

	seen := map[string]bool{}
	out := make([]repository.Row, 0, len(rows))
	for _, row := range rows {
		var key strings.Builder
		for _, f := range fields {
			key.WriteString(row[f].Literal())
			key.WriteByte('\x1f')
		}
		k := key.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out
}

// scanRows fans a scan for the base table (and any cross-joined tables)
// out across every configured repository, pooling every repository's
// rows into one slice; a cross join is the plain cartesian product of
// the two tables' rows within a repository.
func (ex *Executor) scanRows(ctx context.Context, stmt *ast.SelectStatement) ([]repository.Row, error) {
	if len(stmt.TablesToSelectFrom) == 0 {
		return []repository.Row{{}}, nil
	}
	base := stmt.TablesToSelectFrom[0]

	var pooled []repository.Row
	for _, repo := range ex.repos {
		rows, err := scanOne(ctx, repo, base)
		if err != nil {
			return nil, err
		}
		for _, join := range stmt.Joins {
			joined, err := scanOne(ctx, repo, join.Table)
			if err != nil {
				return nil, err
			}
			rows = crossJoin(rows, joined)
		}
		pooled = append(pooled, rows...)
	}

	return pooled, nil
}

func scanOne(ctx context.Context, repo repository.Repository, table string) ([]repository.Row, error) {
	rowsCh, errCh := repo.Scan(ctx, table)
	var rows []repository.Row
	for row := range rowsCh {
		rows = append(rows, row)
	}
	if err := <-errCh; err != nil {
		return nil, fmt.Errorf("scanning %q from repository %q: %w", table, repo.Name(), err)
	}
	return rows, nil
}

func crossJoin(left, right []repository.Row) []repository.Row {
	out := make([]repository.Row, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			merged := repository.Row{}
			for k, v := range l {
				merged[k] = v
			}
			for k, v := range r {
				merged[k] = v
			}
			out = append(out, merged)
		}
	}
	return out
}

func filterRows(rows []repository.Row, cond ast.Expression, env *environment.Environment) ([]repository.Row, error) {
	var out []repository.Row
	for _, row := range rows {
		v, err := evalExpr(cond, &evalContext{row: row, env: env})
		if err != nil {
			return nil, err
		}
		if ok, _ := v.AsBool(); ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func groupRows(rows []repository.Row, groupBy []ast.Expression, env *environment.Environment) [][]repository.Row {
	if len(groupBy) == 0 {
		groups := make([][]repository.Row, len(rows))
		for i, row := range rows {
			groups[i] = []repository.Row{row}
		}
		return groups
	}

	order := []string{}
	byKey := map[string][]repository.Row{}
	for _, row := range rows {
		var keyParts []string
		for _, expr := range groupBy {
			v, err := evalExpr(expr, &evalContext{row: row, env: env})
			if err != nil {
				continue
			}
			keyParts = append(keyParts, v.Literal())
		}
		key := strings.Join(keyParts, "\x1f")
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], row)
	}

	groups := make([][]repository.Row, len(order))
	for i, key := range order {
		groups[i] = byKey[key]
	}
	return groups
}

// reduceGroups collapses each group to one representative row: the
// group's first row (so non-aggregated columns behave like SQL's
// implementation-defined "pick one" rule), extended with every
// synthesized aggregation column computed over the whole group.
func reduceGroups(groups [][]repository.Row, aggregations []ast.AggregationEntry, env *environment.Environment) ([]repository.Row, error) {
	if len(aggregations) == 0 {
		out := make([]repository.Row, 0, len(groups))
		for _, g := range groups {
			if len(g) > 0 {
				out = append(out, g[0])
			}
		}
		return out, nil
	}

	out := make([]repository.Row, 0, len(groups))
	for _, g := range groups {
		representative := repository.Row{}
		if len(g) > 0 {
			for k, v := range g[0] {
				representative[k] = v
			}
		}
		for _, agg := range aggregations {
			v, err := evalAggregation(agg, g, env)
			if err != nil {
				return nil, err
			}
			representative[agg.Name] = v
		}
		out = append(out, representative)
	}
	return out, nil
}

func evalAggregation(entry ast.AggregationEntry, rows []repository.Row, env *environment.Environment) (value.Value, error) {
	switch v := entry.Value.(type) {
	case *ast.AggregateFunctionValue:
		var argValues []value.Value
		for _, row := range rows {
			if len(v.Arguments) == 0 {
				continue
			}
			if sym, ok := v.Arguments[0].(*ast.SymbolExpression); ok && sym.Name == "*" {
				argValues = append(argValues, value.Int(1))
				continue
			}
			val, err := evalExpr(v.Arguments[0], &evalContext{row: row, env: env})
			if err != nil {
				return value.Value{}, err
			}
			argValues = append(argValues, val)
		}
		return functions.CallAggregation(v.FunctionName, argValues)
	case *ast.AggregateExpressionValue:
		if len(rows) == 0 {
			return value.Null(), nil
		}
		return evalExpr(v.Expr, &evalContext{row: rows[0], env: env})
	default:
		return value.Value{}, fmt.Errorf("executor: unknown aggregate value kind %T", entry.Value)
	}
}

func sortRows(rows []repository.Row, args []ast.OrderByArgument, env *environment.Environment) error {
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		for _, arg := range args {
			vi, err := evalExpr(arg.Value, &evalContext{row: rows[i], env: env})
			if err != nil {
				sortErr = err
				return false
			}
			vj, err := evalExpr(arg.Value, &evalContext{row: rows[j], env: env})
			if err != nil {
				sortErr = err
				return false
			}
			cmp, err := vi.Compare(vj)
			if err != nil {
				sortErr = err
				return false
			}
			if cmp == 0 {
				continue
			}
			if arg.Direction == ast.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return sortErr
}

func project(rows []repository.Row, stmt *ast.SelectStatement, env *environment.Environment) ([]repository.Row, error) {
	out := make([]repository.Row, 0, len(rows))
	for _, row := range rows {
		projected := repository.Row{}
		for i, expr := range stmt.SelectedExpr {
			v, err := evalExpr(expr, &evalContext{row: row, env: env})
			if err != nil {
				return nil, err
			}
			projected[stmt.SelectedExprTitles[i]] = v
		}
		out = append(out, projected)
	}
	return out, nil
}
