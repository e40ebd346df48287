package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/config"
	"github.com/askdb-inc/askdb-engine/pkg/logging"
	"github.com/askdb-inc/askdb-engine/pkg/sqlguard"
)

// ProcessResult is the full outcome of one natural language request.
// For an unconfirmed write it carries the generated SQL as a preview
// instead of execution results.
type ProcessResult struct {
	Success          bool               `json:"success"`
	Question         string             `json:"question"`
	SQL              string             `json:"sql,omitempty"`
	Rows             []map[string]any   `json:"data,omitempty"`
	RowCount         int                `json:"row_count"`
	Columns          []string           `json:"columns,omitempty"`
	RowsAffected     int64              `json:"rows_affected"`
	QueryType        sqlguard.QueryType `json:"query_type,omitempty"`
	Message          string             `json:"message,omitempty"`
	IsWriteOperation bool               `json:"is_write_operation"`
	Error            string             `json:"error,omitempty"`
}

// NL2SQLService orchestrates the question-to-result pipeline: screen
// the question, generate SQL, gate writes behind confirmation, then
// execute.
type NL2SQLService struct {
	generator *GeneratorService
	executor  *Executor
	guard     config.GuardConfig
	logger    *zap.Logger
}

// NewNL2SQLService creates the pipeline orchestrator.
func NewNL2SQLService(generator *GeneratorService, executor *Executor, guard config.GuardConfig, logger *zap.Logger) *NL2SQLService {
	return &NL2SQLService{
		generator: generator,
		executor:  executor,
		guard:     guard,
		logger:    logger,
	}
}

// Process handles one natural language request end to end. confirm
// acknowledges a previously previewed write; without it any write
// returns a preview and touches nothing.
func (s *NL2SQLService) Process(ctx context.Context, question string, confirm bool) *ProcessResult {
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	question = strings.TrimSpace(question)
	if question == "" {
		return &ProcessResult{
			Success:  false,
			Question: question,
			Error:    "question must not be empty",
		}
	}

	if s.guard.MaxQuestionLength > 0 && len(question) > s.guard.MaxQuestionLength {
		return &ProcessResult{
			Success:  false,
			Question: question,
			Error:    fmt.Sprintf("question exceeds maximum length of %d characters", s.guard.MaxQuestionLength),
		}
	}

	if s.guard.RejectInjection {
		if check := sqlguard.CheckQuestion(question); check != nil {
			logger.Warn("injection pattern in question",
				zap.String("question", logging.SanitizeQuery(question)),
				zap.String("fingerprint", check.Fingerprint))
			return &ProcessResult{
				Success:  false,
				Question: question,
				Error:    "question contains a SQL injection pattern",
			}
		}
	}

	logger.Info("processing question",
		zap.String("question", logging.SanitizeQuery(question)),
		zap.Bool("confirm", confirm))

	generated, err := s.generator.Generate(ctx, question)
	if err != nil {
		logger.Error("generation failed", zap.String("error", logging.SanitizeError(err)))
		return &ProcessResult{
			Success:  false,
			Question: question,
			Error:    fmt.Sprintf("Failed to generate SQL: %s", logging.SanitizeError(err)),
		}
	}
	if !generated.Success {
		return &ProcessResult{
			Success:  false,
			Question: question,
			SQL:      generated.SQL,
			Error:    generated.Error,
		}
	}

	queryType := sqlguard.Classify(generated.SQL)
	decision := sqlguard.Decide(queryType, confirm)

	if decision.RequiresConfirmation {
		logger.Info("write operation requires confirmation",
			zap.String("sql", logging.SanitizeQuery(generated.SQL)),
			zap.String("query_type", string(queryType)))
		return &ProcessResult{
			Success:          true,
			Question:         question,
			SQL:              generated.SQL,
			QueryType:        queryType,
			IsWriteOperation: true,
			Message:          fmt.Sprintf("This is a %s operation. Please review and confirm execution.", queryType),
		}
	}

	execution := s.executor.Execute(ctx, generated.SQL)

	return &ProcessResult{
		Success:          execution.Success,
		Question:         question,
		SQL:              generated.SQL,
		Rows:             execution.Rows,
		RowCount:         execution.RowCount,
		Columns:          execution.Columns,
		RowsAffected:     execution.RowsAffected,
		QueryType:        execution.QueryType,
		Message:          execution.Message,
		IsWriteOperation: queryType.IsWrite(),
		Error:            execution.Error,
	}
}

// GenerateOnly produces SQL for a question without executing it.
func (s *NL2SQLService) GenerateOnly(ctx context.Context, question string) (*GenerateResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return &GenerateResult{Success: false, Error: "question must not be empty"}, nil
	}
	return s.generator.Generate(ctx, question)
}

// ValidateOnly checks a SQL statement against the safety rules without
// executing it.
func (s *NL2SQLService) ValidateOnly(sqlText string) sqlguard.Verdict {
	return s.executor.validator.Validate(sqlText)
}

// Schema returns the text rendering of the datastore schema.
func (s *NL2SQLService) Schema(ctx context.Context) (string, error) {
	return s.generator.schema.Describe(ctx)
}
