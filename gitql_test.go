package gql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/Olusamimaths/GQL"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/repository/memory"
)

func TestEngineRunDo(t *testing.T) {
	engine := gql.New(nil, nil)
	result, err := engine.Run(context.Background(), "DO 2 * 21")
	require.NoError(t, err)
	n, ok := result.DoValue.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
}

func TestEngineRunSelectAcrossRepositories(t *testing.T) {
	repoA := memory.New("repoA").Seed("commits", memory.CommitRow("a1", "t", "m", "alice", "a@x.com", 1000))
	repoB := memory.New("repoB").Seed("commits", memory.CommitRow("b1", "t", "m", "bob", "b@x.com", 2000))

	engine := gql.New([]repository.Repository{repoA, repoB}, nil)
	result, err := engine.Run(context.Background(), "SELECT name FROM commits ORDER BY name")
	require.NoError(t, err)
	require.NotNil(t, result.Select)
	assert.Len(t, result.Select.Groups, 2)
}

func TestEngineGlobalsPersistAcrossRuns(t *testing.T) {
	engine := gql.New(nil, nil)
	_, err := engine.Run(context.Background(), "SET @count := 5")
	require.NoError(t, err)

	result, err := engine.Run(context.Background(), "DO @count + 1")
	require.NoError(t, err)
	n, _ := result.DoValue.AsInt()
	assert.Equal(t, int64(6), n)
}

func TestEngineParseWithoutExecuting(t *testing.T) {
	engine := gql.New(nil, nil)
	query, diag := engine.Parse("SHOW TABLES")
	require.Nil(t, diag)
	assert.NotNil(t, query)
}
