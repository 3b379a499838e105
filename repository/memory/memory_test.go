package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/repository/memory"
)

func TestScanDeliversSeededRows(t *testing.T) {
	repo := memory.New("fixture").Seed("commits", memory.CommitRow("c1", "t", "m", "alice", "a@x.com", 1000))

	rows, errs := repo.Scan(context.Background(), "commits")
	var got int
	for row := range rows {
		got++
		hash, _ := row["hash"].AsText()
		assert.Equal(t, "c1", hash)
	}
	require.NoError(t, <-errs)
	assert.Equal(t, 1, got)
}

func TestScanUnknownTableErrors(t *testing.T) {
	repo := memory.New("fixture")
	rows, errs := repo.Scan(context.Background(), "nonexistent")
	for range rows {
	}
	require.Error(t, <-errs)
}

func TestScanRespectsContextCancellation(t *testing.T) {
	repo := memory.New("fixture").Seed("commits",
		memory.CommitRow("c1", "t", "m", "a", "a@x.com", 1),
		memory.CommitRow("c2", "t", "m", "b", "b@x.com", 2),
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, errs := repo.Scan(ctx, "commits")
	for range rows {
	}
	require.Error(t, <-errs)
}

func TestColumnsReflectsStandardSchema(t *testing.T) {
	repo := memory.New("fixture")
	cols := repo.Columns("diffs")
	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "additions")
	assert.Contains(t, names, "deletions")
}
