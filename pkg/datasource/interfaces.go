// Package datasource defines the driver-agnostic execution surface the
// query pipeline runs against.
package datasource

import "context"

// ReadResult holds the shaped output of a SELECT: column order as
// returned by the engine and rows as ordered column-name -> value maps.
type ReadResult struct {
	Columns  []string
	Rows     []map[string]any
	RowCount int
}

// StatementRunner executes single sanitized statements transactionally.
// Each call acquires one pooled connection for the lifetime of its
// transaction and releases it on completion. Implementations must be safe
// for concurrent use.
type StatementRunner interface {
	// RunRead executes a SELECT inside a transaction that is always
	// rolled back, preserving read-only semantics.
	RunRead(ctx context.Context, sqlText string) (*ReadResult, error)

	// RunWrite executes a mutating statement inside a transaction that is
	// committed on success and returns the number of rows affected. Any
	// error rolls the transaction back.
	RunWrite(ctx context.Context, sqlText string) (int64, error)

	// Ping verifies datastore connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying pool.
	Close() error
}

// SchemaDiscoverer introspects the datastore catalog. The pipeline
// renders the result as text context for the generator.
type SchemaDiscoverer interface {
	// DiscoverTables returns all user tables, excluding system schemas.
	DiscoverTables(ctx context.Context) ([]TableMetadata, error)

	// DiscoverColumns returns columns for a specific table in ordinal order.
	DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]ColumnMetadata, error)

	// DiscoverForeignKeys returns all foreign key relationships.
	DiscoverForeignKeys(ctx context.Context) ([]ForeignKeyMetadata, error)
}

// TableMetadata identifies a user table.
type TableMetadata struct {
	SchemaName string
	TableName  string
}

// ColumnMetadata describes one column of a table.
type ColumnMetadata struct {
	ColumnName      string
	DataType        string
	IsNullable      bool
	IsPrimaryKey    bool
	OrdinalPosition int
}

// ForeignKeyMetadata describes one foreign key relationship.
type ForeignKeyMetadata struct {
	ConstraintName string
	SourceSchema   string
	SourceTable    string
	SourceColumn   string
	TargetSchema   string
	TargetTable    string
	TargetColumn   string
}
