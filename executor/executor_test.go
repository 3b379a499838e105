package executor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/executor"
	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/parser"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/repository/memory"
)

func newTestEnv() *environment.Environment {
	env := environment.New(repository.StandardSchema())
	functions.RegisterStd(env)
	functions.RegisterAggregation(env)
	return env
}

func fixtureRepo() *memory.Repository {
	return memory.New("fixture").Seed("commits",
		memory.CommitRow("c1", "first", "first commit", "alice", "alice@example.com", 1000),
		memory.CommitRow("c2", "second", "second commit", "bob", "bob@example.com", 2000),
		memory.CommitRow("c3", "third", "third commit", "alice", "alice@example.com", 3000),
	)
}

func runQuery(t *testing.T, source string, repos []repository.Repository) *executor.Result {
	t.Helper()
	env := newTestEnv()
	query, err := parser.ParseGQL(source, env)
	require.Nil(t, err)
	result, execErr := executor.New(env, repos, nil).Execute(context.Background(), query)
	require.NoError(t, execErr)
	return result
}

func TestExecuteDoArithmetic(t *testing.T) {
	result := runQuery(t, "DO 1 + 2", nil)
	require.NotNil(t, result.DoValue)
	i, ok := result.DoValue.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(3), i)
}

func TestExecuteSetThenDo(t *testing.T) {
	env := newTestEnv()
	q1, err := parser.ParseGQL("SET @x := 10", env)
	require.Nil(t, err)
	_, execErr := executor.New(env, nil, nil).Execute(context.Background(), q1)
	require.NoError(t, execErr)

	q2, err := parser.ParseGQL("DO @x * 2", env)
	require.Nil(t, err)
	result, execErr := executor.New(env, nil, nil).Execute(context.Background(), q2)
	require.NoError(t, execErr)
	i, ok := result.DoValue.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(20), i)
}

func TestExecuteSelectGroupByCountOrderLimit(t *testing.T) {
	repo := fixtureRepo()
	result := runQuery(t, "SELECT name, COUNT(*) AS total FROM commits GROUP BY name ORDER BY total DESC LIMIT 3",
		[]repository.Repository{repo})

	require.NotNil(t, result.Select)
	assert.ElementsMatch(t, []string{"name", "total"}, result.Select.Titles)
	assert.LessOrEqual(t, len(result.Select.Groups), 3)

	total := 0
	for _, group := range result.Select.Groups {
		require.Len(t, group, 1)
		row := group[0]
		n, ok := row["total"].AsInt()
		require.True(t, ok)
		total += int(n)
	}
	assert.Equal(t, 3, total)
}

func TestExecuteSelectWhereFiltersRows(t *testing.T) {
	repo := fixtureRepo()
	result := runQuery(t, `SELECT name FROM commits WHERE name = "bob"`, []repository.Repository{repo})
	require.NotNil(t, result.Select)
	require.Len(t, result.Select.Groups, 1)
	name, _ := result.Select.Groups[0][0]["name"].AsText()
	assert.Equal(t, "bob", name)
}

func TestExecuteSelectLimitOffset(t *testing.T) {
	repo := fixtureRepo()
	result := runQuery(t, "SELECT name FROM commits ORDER BY name LIMIT 1 OFFSET 1", []repository.Repository{repo})
	require.NotNil(t, result.Select)
	require.Len(t, result.Select.Groups, 1)
}

func TestExecuteShowTables(t *testing.T) {
	result := runQuery(t, "SHOW TABLES", nil)
	assert.ElementsMatch(t, []string{"refs", "branches", "tags", "commits", "diffs"}, result.Tables)
}

func TestExecuteDescribe(t *testing.T) {
	result := runQuery(t, "DESCRIBE commits", nil)
	require.NotEmpty(t, result.Describe)
	var names []string
	for _, col := range result.Describe {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "hash")
	assert.Contains(t, names, "parents")
}

func TestExecuteRejectsAggregateInWhereBehindComparison(t *testing.T) {
	env := newTestEnv()
	_, err := parser.ParseGQL("SELECT name FROM commits WHERE COUNT(*) > 1", env)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "aggregation functions are not allowed in `WHERE`")
}

func TestExecuteRejectsDoAggregateInsteadOfSilentNull(t *testing.T) {
	env := newTestEnv()
	_, err := parser.ParseGQL("DO COUNT(*)", env)
	require.NotNil(t, err)
}

func TestExecuteCrossJoinMultipliesRows(t *testing.T) {
	repo := memory.New("fixture").
		Seed("commits", memory.CommitRow("c1", "t1", "m1", "alice", "a@example.com", 1000)).
		Seed("diffs",
			memory.DiffRow("c1", "a.go", 10, 2),
			memory.DiffRow("c1", "b.go", 3, 1),
		)
	result := runQuery(t, "SELECT name FROM commits CROSS JOIN diffs", []repository.Repository{repo})
	require.NotNil(t, result.Select)
	assert.Len(t, result.Select.Groups, 2)
}
