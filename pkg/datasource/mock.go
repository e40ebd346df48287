package datasource

import "context"

// MockRunner implements StatementRunner with configurable function fields
// for testing.
type MockRunner struct {
	RunReadFunc  func(ctx context.Context, sqlText string) (*ReadResult, error)
	RunWriteFunc func(ctx context.Context, sqlText string) (int64, error)
	PingFunc     func(ctx context.Context) error

	ReadCalls  []string
	WriteCalls []string
}

func (m *MockRunner) RunRead(ctx context.Context, sqlText string) (*ReadResult, error) {
	m.ReadCalls = append(m.ReadCalls, sqlText)
	if m.RunReadFunc != nil {
		return m.RunReadFunc(ctx, sqlText)
	}
	return &ReadResult{Columns: []string{}, Rows: []map[string]any{}}, nil
}

func (m *MockRunner) RunWrite(ctx context.Context, sqlText string) (int64, error) {
	m.WriteCalls = append(m.WriteCalls, sqlText)
	if m.RunWriteFunc != nil {
		return m.RunWriteFunc(ctx, sqlText)
	}
	return 0, nil
}

func (m *MockRunner) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockRunner) Close() error { return nil }

// MockDiscoverer implements SchemaDiscoverer with configurable function
// fields for testing.
type MockDiscoverer struct {
	DiscoverTablesFunc      func(ctx context.Context) ([]TableMetadata, error)
	DiscoverColumnsFunc     func(ctx context.Context, schemaName, tableName string) ([]ColumnMetadata, error)
	DiscoverForeignKeysFunc func(ctx context.Context) ([]ForeignKeyMetadata, error)
}

func (m *MockDiscoverer) DiscoverTables(ctx context.Context) ([]TableMetadata, error) {
	if m.DiscoverTablesFunc != nil {
		return m.DiscoverTablesFunc(ctx)
	}
	return nil, nil
}

func (m *MockDiscoverer) DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]ColumnMetadata, error) {
	if m.DiscoverColumnsFunc != nil {
		return m.DiscoverColumnsFunc(ctx, schemaName, tableName)
	}
	return nil, nil
}

func (m *MockDiscoverer) DiscoverForeignKeys(ctx context.Context) ([]ForeignKeyMetadata, error) {
	if m.DiscoverForeignKeysFunc != nil {
		return m.DiscoverForeignKeysFunc(ctx)
	}
	return nil, nil
}
