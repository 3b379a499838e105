package repository

import (
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/types"
)

// StandardSchema describes the five virtual tables every GitQL repository
// adapter exposes. Column sets are fixed across adapters (memory,
// gitadapter) so a query written against one runs unmodified against
// the other.
func StandardSchema() *environment.Schema {
	schema := environment.NewSchema()

	schema.DefineTable("refs", []environment.Column{
		{Name: "name", Type: types.Text()},
		{Name: "hash", Type: types.Text()},
	})

	schema.DefineTable("branches", []environment.Column{
		{Name: "name", Type: types.Text()},
		{Name: "commit_hash", Type: types.Text()},
		{Name: "is_head", Type: types.Boolean()},
		{Name: "is_remote", Type: types.Boolean()},
	})

	schema.DefineTable("tags", []environment.Column{
		{Name: "name", Type: types.Text()},
		{Name: "commit_hash", Type: types.Text()},
	})

	schema.DefineTable("commits", []environment.Column{
		{Name: "hash", Type: types.Text()},
		{Name: "title", Type: types.Text()},
		{Name: "message", Type: types.Text()},
		{Name: "name", Type: types.Text()},
		{Name: "email", Type: types.Text()},
		{Name: "datetime", Type: types.DateTime()},
		{Name: "parents", Type: types.Array(types.Text())},
	})

	schema.DefineTable("diffs", []environment.Column{
		{Name: "commit_hash", Type: types.Text()},
		{Name: "file", Type: types.Text()},
		{Name: "additions", Type: types.Integer()},
		{Name: "deletions", Type: types.Integer()},
	})

	return schema
}
