// Package gitadapter implements the repository.Repository row-source
// interface against a real on-disk git repository via go-git. It is a
// reference adapter, not exercised by the core parser/executor tests:
// those run against repository/memory fixtures instead.
package gitadapter

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/repository"
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the git repository rooted at path.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return &Repository{path: path, repo: repo}, nil
}

func (r *Repository) Name() string { return r.path }

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

		var err error
		switch table {
		case "refs":
			err = r.scanRefs(ctx, rows)
		case "branches":
			err = r.scanBranches(ctx, rows)
		case "tags":
			err = r.scanTags(ctx, rows)
		case "commits":
			err = r.scanCommits(ctx, rows)
		case "diffs":
			err = r.scanDiffs(ctx, rows)
		default:
			err = fmt.Errorf("git repository has no table %q", table)
		}
		if err != nil {
			errs <- err
		}
	}()

	return rows, errs
}

func (r *Repository) scanRefs(ctx context.Context, rows chan<- repository.Row) error {
	iter, err := r.repo.References()
	if err != nil {
		return err
	}
	return iter.ForEach(func(ref *plumbing.Reference) error {
		row := repository.Row{
			"name": value.Text(ref.Name().String()),
			"hash": value.Text(ref.Hash().String()),
		}
		return sendRow(ctx, rows, row)
	})
}

func (r *Repository) scanBranches(ctx context.Context, rows chan<- repository.Row) error {
	head, _ := r.repo.Head()
	iter, err := r.repo.Branches()
	if err != nil {
		return err
	}
	return iter.ForEach(func(ref *plumbing.Reference) error {
		isHead := head != nil && ref.Name() == head.Name()
		row := repository.Row{
			"name":        value.Text(ref.Name().Short()),
			"commit_hash": value.Text(ref.Hash().String()),
			"is_head":     value.Bool(isHead),
			"is_remote":   value.Bool(false),
		}
		return sendRow(ctx, rows, row)
	})
}

func (r *Repository) scanTags(ctx context.Context, rows chan<- repository.Row) error {
	iter, err := r.repo.Tags()
	if err != nil {
		return err
	}
	return iter.ForEach(func(ref *plumbing.Reference) error {
		row := repository.Row{
			"name":        value.Text(ref.Name().Short()),
			"commit_hash": value.Text(ref.Hash().String()),
		}
		return sendRow(ctx, rows, row)
	})
}

func (r *Repository) scanCommits(ctx context.Context, rows chan<- repository.Row) error {
	iter, err := r.repo.CommitObjects()
	if err != nil {
		return err
	}
	return iter.ForEach(func(c *object.Commit) error {
		parents := make([]value.Value, 0, c.NumParents())
		for _, h := range c.ParentHashes {
			parents = append(parents, value.Text(h.String()))
		}
		row := repository.Row{
			"hash":     value.Text(c.Hash.String()),
			"title":    value.Text(firstLine(c.Message)),
			"message":  value.Text(c.Message),
			"name":     value.Text(c.Author.Name),
			"email":    value.Text(c.Author.Email),
			"datetime": value.DateTime(c.Author.When.Unix()),
			"parents":  value.Array(types.Text(), parents),
		}
		return sendRow(ctx, rows, row)
	})
}

func (r *Repository) scanDiffs(ctx context.Context, rows chan<- repository.Row) error {
	iter, err := r.repo.CommitObjects()
	if err != nil {
		return err
	}
	return iter.ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 {
			return nil
		}
		parent, err := c.Parents().Next()
		if err != nil {
			return nil
		}
		patch, err := parent.Patch(c)
		if err != nil {
			return nil
		}
		for _, stat := range patch.Stats() {
			row := repository.Row{
				"commit_hash": value.Text(c.Hash.String()),
				"file":        value.Text(stat.Name),
				"additions":   value.Int(int64(stat.Addition)),
				"deletions":   value.Int(int64(stat.Deletion)),
			}
			if err := sendRow(ctx, rows, row); err != nil {
				return err
			}
		}
		return nil
	})
}

func sendRow(ctx context.Context, rows chan<- repository.Row, row repository.Row) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case rows <- row:
		return nil
	}
}

func firstLine(s string) string {
	for i, ch := range s {
		if ch == '\n' {
			return s[:i]
		}
	}
	return s
}
