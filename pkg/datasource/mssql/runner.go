// Package mssql implements the datasource contracts for SQL Server
// via database/sql and the go-mssqldb driver.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/datasource"
)

// Config contains SQL Server-specific connection options.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string

	Encrypt                bool
	TrustServerCertificate bool
	ConnectionTimeout      int
	MaxConnections         int
}

// ConnectionString builds a sqlserver:// URL for the driver.
func (c *Config) ConnectionString() string {
	query := url.Values{}
	query.Add("database", c.Database)

	if c.Encrypt {
		query.Add("encrypt", "true")
	} else {
		query.Add("encrypt", "false")
	}

	if c.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}

	if c.ConnectionTimeout > 0 {
		query.Add("connection timeout", fmt.Sprintf("%d", c.ConnectionTimeout))
	}

	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		query.Encode(),
	)
}

// Runner executes statements against a SQL Server datastore.
type Runner struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRunner opens a SQL Server connection pool and verifies connectivity.
// If logger is nil, a no-op logger is used.
func NewRunner(ctx context.Context, cfg *Config, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlserver", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlserver: %w", err)
	}

	return &Runner{db: db, logger: logger}, nil
}

// RunRead executes a SELECT inside a transaction that is always rolled
// back, preserving read-only semantics.
func (r *Runner) RunRead(ctx context.Context, sqlText string) (*datasource.ReadResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read column names: %w", err)
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		resultRows = append(resultRows, shapeRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &datasource.ReadResult{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
	}, nil
}

// shapeRow maps scanned values onto their column names. The driver
// returns text columns as byte slices, which would serialize as base64
// in JSON, so those are converted to strings.
func shapeRow(columns []string, values []any) map[string]any {
	rowMap := make(map[string]any, len(columns))
	for i, col := range columns {
		if b, ok := values[i].([]byte); ok {
			rowMap[col] = string(b)
		} else {
			rowMap[col] = values[i]
		}
	}
	return rowMap
}

// RunWrite executes a mutating statement inside a transaction and
// commits it on success.
func (r *Runner) RunWrite(ctx context.Context, sqlText string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin write transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, sqlText)
	if err != nil {
		return 0, fmt.Errorf("execute statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return affected, nil
}

// Ping verifies database connectivity.
func (r *Runner) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close releases the connection pool.
func (r *Runner) Close() error {
	return r.db.Close()
}

var _ datasource.StatementRunner = (*Runner)(nil)
