package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/parser"
	"github.com/Olusamimaths/GQL/repository"
)

func newEnv() *environment.Environment {
	env := environment.New(repository.StandardSchema())
	functions.RegisterStd(env)
	functions.RegisterAggregation(env)
	return env
}

func TestParseDoArithmetic(t *testing.T) {
	env := newEnv()
	q, err := parser.ParseGQL("DO 1 + 2", env)
	require.Nil(t, err)
	doQuery, ok := q.(*ast.DoQuery)
	require.True(t, ok)
	assert.NotNil(t, doQuery.Expression)
}

func TestParseSetThenDoSharesGlobal(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SET @x := 10", env)
	require.Nil(t, err)

	_, ok := env.ResolveGlobal("x")
	assert.True(t, ok)

	q, err := parser.ParseGQL("DO @x * 2", env)
	require.Nil(t, err)
	_, ok = q.(*ast.DoQuery)
	assert.True(t, ok)
}

func TestParseSelectFromCommits(t *testing.T) {
	env := newEnv()
	q, err := parser.ParseGQL("SELECT name, COUNT(*) FROM commits GROUP BY name ORDER BY COUNT(*) DESC LIMIT 3", env)
	require.Nil(t, err)
	selectQuery, ok := q.(*ast.SelectQuery)
	require.True(t, ok)
	assert.True(t, selectQuery.Query.HasGroupByStatement)
	assert.True(t, selectQuery.Query.HasAggregationFunction)
}

func TestParseSelectUnresolvedTableSuggestsPlural(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commit", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unresolved table")
	assert.Contains(t, err.Error(), "did you mean `commits`?")
}

func TestParseSelectStarRequiresFrom(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT *", env)
	require.NotNil(t, err)
}

func TestParseHavingWithoutGroupByFails(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits HAVING name = \"a\"", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "GROUP BY")
}

func TestParseRegexRequiresTextOperands(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits WHERE 1 REGEXP \"a\"", env)
	require.NotNil(t, err)
}

func TestParseNullComparisonSuggestsIsNull(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("DO NULL = 1", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "IS NULL")
}

func TestParseLimitCommaOffsetSugar(t *testing.T) {
	env := newEnv()
	q, err := parser.ParseGQL("SELECT name FROM commits LIMIT 5, 10", env)
	require.Nil(t, err)
	selectQuery := q.(*ast.SelectQuery)
	offsetIface, ok := selectQuery.Query.Get(ast.ClauseOffset)
	require.True(t, ok)
	assert.Equal(t, uint64(10), offsetIface.(*ast.OffsetStatement).Count)
}

func TestParseLimitCommaOffsetConflictsWithExplicitOffset(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits LIMIT 5, 10 OFFSET 2", env)
	require.NotNil(t, err)
}

func TestParseNonCrossJoinRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits LEFT JOIN diffs", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "CROSS JOIN")
}

func TestParseCrossJoinAccepted(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits CROSS JOIN diffs", env)
	require.Nil(t, err)
}

func TestParseDescribeUnknownTable(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("DESCRIBE branch", env)
	require.NotNil(t, err)
}

func TestParseWhereWithBareAggregateRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits WHERE COUNT(*) = 1", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "aggregation functions are not allowed in `WHERE`")
}

func TestParseWhereWithAggregateInsideComparisonRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits WHERE COUNT(*) > 5", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "aggregation functions are not allowed in `WHERE`")
}

func TestParseWhereWithAggregateInsideArithmeticRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits WHERE (COUNT(*) + 1) > 5", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "aggregation functions are not allowed in `WHERE`")
}

func TestParseDoWithAggregateRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("DO COUNT(*)", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "aggregation functions require a `FROM` clause")
}

func TestParseSetWithAggregateRejected(t *testing.T) {
	env := newEnv()
	_, err := parser.ParseGQL("SET @x := COUNT(*)", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "cannot assign an aggregation function result to a global variable")
}

func TestParseShowTables(t *testing.T) {
	env := newEnv()
	q, err := parser.ParseGQL("SHOW TABLES", env)
	require.Nil(t, err)
	_, ok := q.(*ast.ShowTablesQuery)
	assert.True(t, ok)
}
