package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/datasource"
	"github.com/askdb-inc/askdb-engine/pkg/logging"
	"github.com/askdb-inc/askdb-engine/pkg/sqlguard"
)

// ExecutionResult is the shaped outcome of running one statement.
type ExecutionResult struct {
	Success      bool               `json:"success"`
	QueryType    sqlguard.QueryType `json:"query_type,omitempty"`
	Columns      []string           `json:"columns,omitempty"`
	Rows         []map[string]any   `json:"data,omitempty"`
	RowCount     int                `json:"row_count"`
	RowsAffected int64              `json:"rows_affected"`
	Message      string             `json:"message,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// Executor runs validated statements against the datastore. It
// re-validates every statement immediately before execution, so a
// caller holding a stale or tampered statement cannot slip past the
// earlier check.
type Executor struct {
	runner    datasource.StatementRunner
	validator *sqlguard.Validator
	logger    *zap.Logger
}

// NewExecutor creates an executor.
func NewExecutor(runner datasource.StatementRunner, validator *sqlguard.Validator, logger *zap.Logger) *Executor {
	return &Executor{
		runner:    runner,
		validator: validator,
		logger:    logger,
	}
}

// Execute validates and runs a single statement. Write statements are
// committed and reported by rows affected; SELECT statements return
// shaped rows. Engine failures come back as unsuccessful results with
// sanitized error text, never as raw driver errors.
func (e *Executor) Execute(ctx context.Context, sqlText string) *ExecutionResult {
	verdict := e.validator.Validate(sqlText)
	if !verdict.Safe {
		e.logger.Warn("rejected statement at execution",
			zap.String("sql", logging.SanitizeQuery(sqlText)),
			zap.String("reason", verdict.Reason))
		return &ExecutionResult{
			Success: false,
			Error:   fmt.Sprintf("Query failed safety validation: %s", verdict.Reason),
		}
	}

	queryType := sqlguard.Classify(verdict.Sanitized)

	e.logger.Info("executing SQL",
		zap.String("sql", logging.SanitizeQuery(verdict.Sanitized)),
		zap.String("query_type", string(queryType)))

	if queryType.IsWrite() {
		affected, err := e.runner.RunWrite(ctx, verdict.Sanitized)
		if err != nil {
			e.logger.Error("write execution failed", zap.String("error", logging.SanitizeError(err)))
			return &ExecutionResult{
				Success:   false,
				QueryType: queryType,
				Error:     fmt.Sprintf("Database error: %s", logging.SanitizeError(err)),
			}
		}

		e.logger.Info("write executed",
			zap.String("query_type", string(queryType)),
			zap.Int64("rows_affected", affected))
		return &ExecutionResult{
			Success:      true,
			QueryType:    queryType,
			Columns:      []string{},
			Rows:         []map[string]any{},
			RowsAffected: affected,
			Message:      fmt.Sprintf("%s successful: %d row(s) affected", queryType, affected),
		}
	}

	result, err := e.runner.RunRead(ctx, verdict.Sanitized)
	if err != nil {
		e.logger.Error("read execution failed", zap.String("error", logging.SanitizeError(err)))
		return &ExecutionResult{
			Success:   false,
			QueryType: queryType,
			Error:     fmt.Sprintf("Database error: %s", logging.SanitizeError(err)),
		}
	}

	e.logger.Info("query executed", zap.Int("row_count", result.RowCount))
	return &ExecutionResult{
		Success:   true,
		QueryType: queryType,
		Columns:   result.Columns,
		Rows:      result.Rows,
		RowCount:  result.RowCount,
	}
}
