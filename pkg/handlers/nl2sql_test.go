package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/config"
	"github.com/askdb-inc/askdb-engine/pkg/datasource"
	"github.com/askdb-inc/askdb-engine/pkg/llm"
	"github.com/askdb-inc/askdb-engine/pkg/services"
	"github.com/askdb-inc/askdb-engine/pkg/sqlguard"
)

func newTestHandler(response string, runner *datasource.MockRunner) *NL2SQLHandler {
	client := llm.NewMockClient()
	client.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
		return response, nil
	}

	discoverer := &datasource.MockDiscoverer{
		DiscoverTablesFunc: func(ctx context.Context) ([]datasource.TableMetadata, error) {
			return []datasource.TableMetadata{{SchemaName: "public", TableName: "users"}}, nil
		},
		DiscoverColumnsFunc: func(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMetadata, error) {
			return []datasource.ColumnMetadata{
				{ColumnName: "id", DataType: "integer", IsPrimaryKey: true, OrdinalPosition: 1},
			}, nil
		},
	}

	validator := sqlguard.NewValidator(sqlguard.DefaultRuleSet())
	schema := services.NewSchemaService(discoverer, zap.NewNop())
	generator := services.NewGeneratorService(client, validator, schema, "PostgreSQL", zap.NewNop())
	executor := services.NewExecutor(runner, validator, zap.NewNop())
	guard := config.GuardConfig{MaxQuestionLength: 500, RejectInjection: true}
	svc := services.NewNL2SQLService(generator, executor, guard, zap.NewNop())

	return NewNL2SQLHandler(svc, zap.NewNop())
}

func TestProcessEndpointSelect(t *testing.T) {
	runner := &datasource.MockRunner{
		RunReadFunc: func(ctx context.Context, sqlText string) (*datasource.ReadResult, error) {
			return &datasource.ReadResult{
				Columns:  []string{"id"},
				Rows:     []map[string]any{{"id": 1}},
				RowCount: 1,
			}, nil
		},
	}
	handler := newTestHandler("SELECT id FROM users", runner)

	req := httptest.NewRequest(http.MethodPost, "/api/nl2sql",
		strings.NewReader(`{"question": "list user ids"}`))
	rec := httptest.NewRecorder()

	handler.Process(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response services.ProcessResult
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Success {
		t.Errorf("expected success, got error %q", response.Error)
	}
	if response.RowCount != 1 {
		t.Errorf("expected 1 row, got %d", response.RowCount)
	}
	if response.IsWriteOperation {
		t.Error("SELECT must not be flagged as a write operation")
	}
}

func TestProcessEndpointWritePreview(t *testing.T) {
	runner := &datasource.MockRunner{}
	handler := newTestHandler("DELETE FROM users WHERE id = 7", runner)

	req := httptest.NewRequest(http.MethodPost, "/api/nl2sql",
		strings.NewReader(`{"question": "delete user 7"}`))
	rec := httptest.NewRecorder()

	handler.Process(rec, req)

	var response services.ProcessResult
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.IsWriteOperation {
		t.Error("expected write operation flag")
	}
	if response.SQL != "DELETE FROM users WHERE id = 7" {
		t.Errorf("expected SQL preview, got %q", response.SQL)
	}
	if len(runner.WriteCalls) != 0 {
		t.Error("preview must not execute the statement")
	}
}

func TestProcessEndpointInvalidBody(t *testing.T) {
	handler := newTestHandler("SELECT 1", &datasource.MockRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/nl2sql", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Process(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGenerateEndpoint(t *testing.T) {
	handler := newTestHandler("SELECT id FROM users", &datasource.MockRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/nl2sql/generate",
		strings.NewReader(`{"question": "list user ids"}`))
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	var response services.GenerateResult
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !response.Success {
		t.Errorf("expected success, got error %q", response.Error)
	}
	if response.SQL != "SELECT id FROM users" {
		t.Errorf("unexpected SQL: %q", response.SQL)
	}
}

func TestValidateEndpoint(t *testing.T) {
	handler := newTestHandler("SELECT 1", &datasource.MockRunner{})

	tests := []struct {
		name     string
		body     string
		wantSafe bool
	}{
		{
			name:     "safe select",
			body:     `{"sql": "SELECT * FROM users;"}`,
			wantSafe: true,
		},
		{
			name:     "blocked statement",
			body:     `{"sql": "DROP TABLE users"}`,
			wantSafe: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/nl2sql/validate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Validate(rec, req)

			var response ValidateResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if response.IsSafe != tt.wantSafe {
				t.Errorf("expected is_safe=%v, got %v (error: %q)", tt.wantSafe, response.IsSafe, response.Error)
			}
			if tt.wantSafe && response.SanitizedSQL == "" {
				t.Error("expected sanitized SQL for safe statement")
			}
			if !tt.wantSafe && response.Error == "" {
				t.Error("expected error for unsafe statement")
			}
		})
	}
}

func TestSchemaEndpoint(t *testing.T) {
	handler := newTestHandler("SELECT 1", &datasource.MockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/nl2sql/schema", nil)
	rec := httptest.NewRecorder()

	handler.Schema(rec, req)

	var response SchemaResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.Contains(response.Schema, "Table: users") {
		t.Errorf("schema text missing table listing: %q", response.Schema)
	}
}
