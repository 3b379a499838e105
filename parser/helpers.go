package parser

import (
	"fmt"

	"github.com/Olusamimaths/GQL/diagnostic"
)

// synthesizeAggregationName returns a unique, deterministic name for the
// nth aggregate lifted out of a SELECT list (e.g. "count_0", "count_1").
func (c *context) synthesizeAggregationName(functionName string) string {
	idx := len(c.aggregations)
	return fmt.Sprintf("%s_%d", lower(functionName), idx)
}

func lower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

// attributeHiddenSelection picks which selected table a column belongs to:
// the first table whose schema contains it, falling back to the first
// selected table when no schema claims it (global variables, synthesized
// columns).
func (c *context) attributeHiddenSelection(column string) string {
	for _, table := range c.selectedTables {
		for _, field := range c.env.Schema.TablesFieldsNames[table] {
			if field == column {
				return table
			}
		}
	}
	if len(c.selectedTables) > 0 {
		return c.selectedTables[0]
	}
	return ""
}

// suggestColumn offers a "did you mean" guess among the columns of the
// currently selected tables; global variable names are not candidates.
func suggestColumn(c *context, name string) string {
	var candidates []string
	for _, table := range c.selectedTables {
		candidates = append(candidates, c.env.Schema.TablesFieldsNames[table]...)
	}
	return diagnostic.SuggestClosest(name, candidates, 3)
}
