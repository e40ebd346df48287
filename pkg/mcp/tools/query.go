// Package tools provides MCP tool implementations for askdb-engine.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/services"
)

// QueryToolDeps defines dependencies for the query tools.
type QueryToolDeps struct {
	NL2SQL *services.NL2SQLService
	Logger *zap.Logger
}

// RegisterQueryTools registers the natural language query tools with the
// MCP server.
func RegisterQueryTools(mcpServer *server.MCPServer, deps *QueryToolDeps) {
	registerAskDatabaseTool(mcpServer, deps)
	registerGenerateSQLTool(mcpServer, deps)
	registerValidateSQLTool(mcpServer, deps)
	registerGetSchemaTool(mcpServer, deps)
}

// registerAskDatabaseTool registers the ask_database tool.
func registerAskDatabaseTool(mcpServer *server.MCPServer, deps *QueryToolDeps) {
	tool := mcp.NewTool(
		"ask_database",
		mcp.WithDescription(`Answer a natural language question by generating and executing a SQL query.
SELECT results are returned as rows. Write operations (INSERT/UPDATE/DELETE) return a
preview on the first call; repeat the call with confirm=true to execute them.
DDL and other dangerous statements are always blocked.`),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural language question about the data")),
		mcp.WithBoolean("confirm",
			mcp.Description("Set to true to confirm execution of a previously previewed write operation")),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		question, _ := args["question"].(string)
		if question == "" {
			return NewErrorResult("invalid_parameters", "parameter 'question' cannot be empty"), nil
		}

		confirm, _ := args["confirm"].(bool)

		result := deps.NL2SQL.Process(ctx, question, confirm)

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}

	mcpServer.AddTool(tool, handler)
}

// registerGenerateSQLTool registers the generate_sql tool.
func registerGenerateSQLTool(mcpServer *server.MCPServer, deps *QueryToolDeps) {
	tool := mcp.NewTool(
		"generate_sql",
		mcp.WithDescription("Generate a SQL query from a natural language question without executing it."),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Natural language question about the data")),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		question, _ := args["question"].(string)
		if question == "" {
			return NewErrorResult("invalid_parameters", "parameter 'question' cannot be empty"), nil
		}

		result, err := deps.NL2SQL.GenerateOnly(ctx, question)
		if err != nil {
			return nil, fmt.Errorf("generate SQL: %w", err)
		}

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}

	mcpServer.AddTool(tool, handler)
}

// validateSQLResponse is the response format for validate_sql.
type validateSQLResponse struct {
	IsSafe       bool   `json:"is_safe"`
	SanitizedSQL string `json:"sanitized_sql,omitempty"`
	Error        string `json:"error,omitempty"`
}

// registerValidateSQLTool registers the validate_sql tool.
func registerValidateSQLTool(mcpServer *server.MCPServer, deps *QueryToolDeps) {
	tool := mcp.NewTool(
		"validate_sql",
		mcp.WithDescription("Check whether a SQL statement passes the safety rules without executing it."),
		mcp.WithString("sql",
			mcp.Required(),
			mcp.Description("SQL statement to validate")),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]any)

		sqlText, _ := args["sql"].(string)
		if sqlText == "" {
			return NewErrorResult("invalid_parameters", "parameter 'sql' cannot be empty"), nil
		}

		verdict := deps.NL2SQL.ValidateOnly(sqlText)

		resp := validateSQLResponse{IsSafe: verdict.Safe}
		if verdict.Safe {
			resp.SanitizedSQL = verdict.Sanitized
		} else {
			resp.Error = verdict.Reason
		}

		jsonResult, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}

	mcpServer.AddTool(tool, handler)
}

// registerGetSchemaTool registers the get_schema tool.
func registerGetSchemaTool(mcpServer *server.MCPServer, deps *QueryToolDeps) {
	tool := mcp.NewTool(
		"get_schema",
		mcp.WithDescription("Return the datastore schema as text: tables, columns, primary keys and foreign keys."),
	)

	handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := deps.NL2SQL.Schema(ctx)
		if err != nil {
			return nil, fmt.Errorf("discover schema: %w", err)
		}
		return mcp.NewToolResultText(text), nil
	}

	mcpServer.AddTool(tool, handler)
}
