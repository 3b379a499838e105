// Package memory implements an in-memory Repository fixture: rows for
// the refs/branches/tags/commits/diffs tables are seeded by the caller,
// and executor and engine tests use it so they don't need an on-disk git
// repository.
package memory

import (
	"context"
	"fmt"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

type Repository struct {
	name   string
	tables map[string][]repository.Row
}

// New builds an empty fixture named name; use Seed to add rows.
func New(name string) *Repository {
	return &Repository{name: name, tables: map[string][]repository.Row{}}
}

func (r *Repository) Name() string { return r.name }

func (r *Repository) Seed(table string, rows ...repository.Row) *Repository {
	r.tables[table] = append(r.tables[table], rows...)
	return r
}

func (r *Repository) TableNames() []string {
	schema := repository.StandardSchema()
	names := make([]string, 0, len(schema.TablesFieldsNames))
	for name := range schema.TablesFieldsNames {
		names = append(names, name)
	}
	return names
}

func (r *Repository) Columns(table string) []environment.Column {
	schema := repository.StandardSchema()
	var cols []environment.Column
	for _, name := range schema.TablesFieldsNames[table] {
		cols = append(cols, environment.Column{Name: name, Type: schema.TablesFieldsTypes[name]})
	}
	return cols
}

func (r *Repository) Scan(ctx context.Context, table string) (<-chan repository.Row, <-chan error) {
	rows := make(chan repository.Row)
	errs := make(chan error, 1)

	go func() {
		defer close(rows)
		defer close(errs)

		known, ok := r.tables[table]
		if !ok {
			errs <- fmt.Errorf("memory repository %q has no table %q", r.name, table)
			return
		}
		for _, row := range known {
			if err := ctx.Err(); err != nil {
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case rows <- row:
			}
		}
	}()

	return rows, errs
}

// CommitRow builds a `commits` table row from plain Go values, a
// convenience for tests.
func CommitRow(hash, title, message, authorName, authorEmail string, unixSeconds int64, parents ...string) repository.Row {
	parentValues := make([]value.Value, len(parents))
	for i, p := range parents {
		parentValues[i] = value.Text(p)
	}
	return repository.Row{
		"hash":     value.Text(hash),
		"title":    value.Text(title),
		"message":  value.Text(message),
		"name":     value.Text(authorName),
		"email":    value.Text(authorEmail),
		"datetime": value.DateTime(unixSeconds),
		"parents":  value.Array(types.Text(), parentValues),
	}
}

func BranchRow(name, commitHash string, isHead, isRemote bool) repository.Row {
	return repository.Row{
		"name":        value.Text(name),
		"commit_hash": value.Text(commitHash),
		"is_head":     value.Bool(isHead),
		"is_remote":   value.Bool(isRemote),
	}
}

func TagRow(name, commitHash string) repository.Row {
	return repository.Row{"name": value.Text(name), "commit_hash": value.Text(commitHash)}
}

func RefRow(name, hash string) repository.Row {
	return repository.Row{"name": value.Text(name), "hash": value.Text(hash)}
}

func DiffRow(commitHash, file string, additions, deletions int64) repository.Row {
	return repository.Row{
		"commit_hash": value.Text(commitHash),
		"file":        value.Text(file),
		"additions":   value.Int(additions),
		"deletions":   value.Int(deletions),
	}
}
