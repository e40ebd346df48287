// Package postgres implements the datasource contracts on top of pgx.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/datasource"
)

// Runner executes statements against a PostgreSQL datastore using a
// pooled connection per call.
type Runner struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRunner connects to PostgreSQL and returns a Runner backed by a
// connection pool. If logger is nil, a no-op logger is used.
func NewRunner(ctx context.Context, connString string, maxConns int32, logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &Runner{pool: pool, logger: logger}, nil
}

// RunRead executes a SELECT inside a read-only transaction. The
// transaction is always rolled back so the statement cannot leave
// side effects behind.
func (r *Runner) RunRead(ctx context.Context, sqlText string) (*datasource.ReadResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = string(fd.Name)
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}

		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			rowMap[col] = values[i]
		}
		resultRows = append(resultRows, rowMap)
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

// RunWrite executes a mutating statement inside a transaction and
// commits it on success.
func (r *Runner) RunWrite(ctx context.Context, sqlText string) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin write transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, sqlText)
	if err != nil {
		return 0, fmt.Errorf("execute statement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return tag.RowsAffected(), nil
}

// Ping verifies database connectivity.
func (r *Runner) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the connection pool.
func (r *Runner) Close() error {
	r.pool.Close()
	return nil
}

var _ datasource.StatementRunner = (*Runner)(nil)
