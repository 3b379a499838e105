// Package environment implements the session-lifetime Environment: a
// read-only table/column Schema, growing local scopes, global variables,
// and the std/aggregation function signature tables the parser consults
// while type checking.
package environment

import (
	"github.com/Olusamimaths/GQL/types"
	"github.com/Olusamimaths/GQL/value"
)

// Schema is the read-only table catalog consulted during parsing.
type Schema struct {
	TablesFieldsNames map[string][]string
	TablesFieldsTypes map[string]types.DataType
}

func NewSchema() *Schema {
	return &Schema{
		TablesFieldsNames: map[string][]string{},
		TablesFieldsTypes: map[string]types.DataType{},
	}
}

// DefineTable registers a table and its columns; column types are keyed
// by bare column name, not table-qualified.
func (s *Schema) DefineTable(table string, columns []Column) {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, c.Name)
		s.TablesFieldsTypes[c.Name] = c.Type
	}
	s.TablesFieldsNames[table] = names
}

type Column struct {
	Name string
	Type types.DataType
}

// ReturnRule computes a function's return type from its checked argument
// types, used when a signature's return type depends on its arguments
// (e.g. a generic `MIN`/`MAX` returning the element type it was called
// with).
type ReturnRule func(args []types.DataType) types.DataType

// Signature is a std or aggregation function's declared shape. Exactly one
// of Return / ReturnRule is set. The last Parameter may be types.Any() to
// mean variadic-any.
type Signature struct {
	Parameters []types.DataType
	Return     *types.DataType
	ReturnRule ReturnRule
}

func (s Signature) ResolveReturn(args []types.DataType) types.DataType {
	if s.ReturnRule != nil {
		return s.ReturnRule(args)
	}
	if s.Return != nil {
		return *s.Return
	}
	return types.Any()
}

// Environment owns everything the parser needs to resolve names and check
// types. One Environment typically outlives many sequential parse calls
// within a session so that SET/DO can share global variable state across
// statements.
type Environment struct {
	Schema                 *Schema
	Scopes                 map[string]types.DataType
	Globals                map[string]types.DataType
	GlobalValues           map[string]value.Value
	StdSignatures          map[string]Signature
	AggregationSignatures  map[string]Signature
}

func New(schema *Schema) *Environment {
	return &Environment{
		Schema:                schema,
		Scopes:                map[string]types.DataType{},
		Globals:               map[string]types.DataType{},
		GlobalValues:          map[string]value.Value{},
		StdSignatures:         map[string]Signature{},
		AggregationSignatures: map[string]Signature{},
	}
}

// Define registers name with t in the local scope. Every Symbol
// referenced from a clause must resolve here once FROM has registered its
// tables' columns.
func (e *Environment) Define(name string, t types.DataType) {
	e.Scopes[name] = t
}

func (e *Environment) Resolve(name string) (types.DataType, bool) {
	t, ok := e.Scopes[name]
	return t, ok
}

func (e *Environment) DefineGlobal(name string, t types.DataType) {
	e.Globals[name] = t
}

func (e *Environment) ResolveGlobal(name string) (types.DataType, bool) {
	t, ok := e.Globals[name]
	return t, ok
}

func (e *Environment) SetGlobalValue(name string, v value.Value) {
	e.GlobalValues[name] = v
}

func (e *Environment) GlobalValue(name string) (value.Value, bool) {
	v, ok := e.GlobalValues[name]
	return v, ok
}

func (e *Environment) RegisterStdFunction(name string, sig Signature) {
	e.StdSignatures[name] = sig
}

func (e *Environment) RegisterAggregation(name string, sig Signature) {
	e.AggregationSignatures[name] = sig
}

func (e *Environment) IsStdFunction(name string) bool {
	_, ok := e.StdSignatures[name]
	return ok
}

func (e *Environment) IsAggregationFunction(name string) bool {
	_, ok := e.AggregationSignatures[name]
	return ok
}

func (e *Environment) StdSignature(name string) (Signature, bool) {
	s, ok := e.StdSignatures[name]
	return s, ok
}

func (e *Environment) AggregationSignature(name string) (Signature, bool) {
	s, ok := e.AggregationSignatures[name]
	return s, ok
}

// RegisterTableFields copies a table's column types into scope, called
// once the FROM clause resolves a table.
func (e *Environment) RegisterTableFields(table string) {
	for _, column := range e.Schema.TablesFieldsNames[table] {
		if t, ok := e.Schema.TablesFieldsTypes[column]; ok {
			e.Define(column, t)
		}
	}
}

// TableNames lists all known tables, for SHOW TABLES and suggestion
// diagnostics.
func (e *Environment) TableNames() []string {
	names := make([]string, 0, len(e.Schema.TablesFieldsNames))
	for name := range e.Schema.TablesFieldsNames {
		names = append(names, name)
	}
	return names
}
