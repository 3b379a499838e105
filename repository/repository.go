// Package repository defines the row-source boundary the executor scans
// against: anything that names tables, describes their columns, and
// yields rows for one table can back a query, whether that is a live git
// repository or an in-memory fixture used in tests.
package repository

import (
	"context"

	"github.com/Olusamimaths/GQL/environment"
	"github.com/Olusamimaths/GQL/value"
)

// Row is one scanned record, column name to value.
type Row map[string]value.Value

// Repository is the external row-source interface. Implementations are
// expected to be cheap to construct per query and are never mutated by
// the executor.
type Repository interface {
	// Name identifies the repository for per-repository SELECT fan-out
	// (e.g. a path or remote URL); purely informational.
	Name() string

	// TableNames lists every table this repository can scan.
	TableNames() []string

	// Columns describes one table's schema.
	Columns(table string) []environment.Column

	// Scan yields every row of `table` in this repository, in
	// unspecified order; the returned channel is closed when the scan
	// finishes or ctx is canceled.
	Scan(ctx context.Context, table string) (<-chan Row, <-chan error)
}
