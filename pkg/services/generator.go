package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/llm"
	"github.com/askdb-inc/askdb-engine/pkg/logging"
	"github.com/askdb-inc/askdb-engine/pkg/retry"
	"github.com/askdb-inc/askdb-engine/pkg/sqlguard"
)

const generatorSystemPrompt = `You are a SQL expert. Convert the natural language question into a SQL query.

Database Schema:
%s

IMPORTANT RULES:
1. Generate SELECT, INSERT, UPDATE, or DELETE queries as appropriate for the question
2. Return ONLY the SQL query, no explanations or markdown
3. Do not include semicolons
4. Use proper SQL syntax for %s
5. Use table and column names exactly as shown in the schema
6. Do NOT generate DROP, ALTER, CREATE, TRUNCATE, or other DDL statements
7. For write operations (INSERT/UPDATE/DELETE), be precise and use WHERE clauses when appropriate
8. If the question cannot be answered with the given schema, return: "ERROR: Cannot generate query from this question"`

// errorSentinel marks a model response declining to generate a query.
const errorSentinel = "ERROR:"

// GenerateResult is the outcome of a single generation attempt.
type GenerateResult struct {
	Success bool   `json:"success"`
	SQL     string `json:"sql,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GeneratorService turns natural language questions into validated SQL
// using a completion model. Generated SQL is untrusted and always passes
// through the validator before being returned.
type GeneratorService struct {
	client    llm.Client
	validator *sqlguard.Validator
	schema    *SchemaService
	dialect   string
	logger    *zap.Logger
}

// NewGeneratorService creates a generator. dialect names the SQL flavor
// in the prompt, e.g. "PostgreSQL" or "SQL Server".
func NewGeneratorService(client llm.Client, validator *sqlguard.Validator, schema *SchemaService, dialect string, logger *zap.Logger) *GeneratorService {
	return &GeneratorService{
		client:    client,
		validator: validator,
		schema:    schema,
		dialect:   dialect,
		logger:    logger,
	}
}

// Generate produces a validated, sanitized SQL query for the question.
// Failure to generate or failure to validate both yield an unsuccessful
// result rather than an error; errors are reserved for infrastructure
// failures such as schema discovery.
func (g *GeneratorService) Generate(ctx context.Context, question string) (*GenerateResult, error) {
	schemaText, err := g.schema.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("describe schema: %w", err)
	}

	systemPrompt := fmt.Sprintf(generatorSystemPrompt, schemaText, g.dialect)

	g.logger.Info("generating SQL",
		zap.String("question", logging.SanitizeQuery(question)),
		zap.String("model", g.client.Model()))

	raw, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (string, error) {
		text, err := g.client.Complete(ctx, systemPrompt, question)
		if err != nil {
			return "", llm.ClassifyError(err)
		}
		return text, nil
	})
	if err != nil {
		g.logger.Error("completion failed", zap.Error(err))
		return &GenerateResult{
			Success: false,
			Error:   fmt.Sprintf("Failed to generate SQL: %s", logging.SanitizeError(err)),
		}, nil
	}

	sqlText := llm.ExtractSQL(raw)

	if strings.HasPrefix(sqlText, errorSentinel) {
		g.logger.Warn("model declined to generate SQL", zap.String("response", sqlText))
		return &GenerateResult{Success: false, Error: sqlText}, nil
	}

	verdict := g.validator.Validate(sqlText)
	if !verdict.Safe {
		g.logger.Warn("generated SQL failed validation",
			zap.String("sql", logging.SanitizeQuery(sqlText)),
			zap.String("reason", verdict.Reason))
		return &GenerateResult{
			Success: false,
			SQL:     sqlText,
			Error:   fmt.Sprintf("Generated query failed safety validation: %s", verdict.Reason),
		}, nil
	}

	g.logger.Info("generated SQL", zap.String("sql", logging.SanitizeQuery(verdict.Sanitized)))
	return &GenerateResult{Success: true, SQL: verdict.Sanitized}, nil
}
