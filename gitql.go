// Package gql is GitQL's embedding surface: construct an Engine over one
// or more repositories, then Run query strings against it.
package gql

import (
	"context"

	"go.uber.org/zap"

	"github.com/Olusamimaths/GQL/ast"
	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/executor"
	"github.com/Olusamimaths/GQL/functions"
	"github.com/Olusamimaths/GQL/parser"
	"github.com/Olusamimaths/GQL/repository"
)

// Engine owns one session-lifetime Environment (so SET-declared globals
// persist across sequential Run calls) and the repositories SELECT scans
// fan out across.
type Engine struct {
	env    *environment.Environment
	repos  []repository.Repository
	logger *zap.Logger
}

// New builds an Engine over the standard refs/branches/tags/commits/diffs
// schema, backed by repos. Pass a nil logger to get a no-op one.
func New(repos []repository.Repository, logger *zap.Logger) *Engine {
	env := environment.New(repository.StandardSchema())
	functions.RegisterStd(env)
	functions.RegisterAggregation(env)
	return &Engine{env: env, repos: repos, logger: logger}
}

// Parse parses a single query against the engine's Environment without
// executing it.
func (e *Engine) Parse(source string) (ast.Query, *diagnostic.Diagnostic) {
	return parser.ParseGQL(source, e.env)
}

// Run parses and executes a single query.
func (e *Engine) Run(ctx context.Context, source string) (*executor.Result, error) {
	query, err := e.Parse(source)
	if err != nil {
		return nil, err
	}
	return executor.New(e.env, e.repos, e.logger).Execute(ctx, query)
}
