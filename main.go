package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/config"
	"github.com/askdb-inc/askdb-engine/pkg/datasource"
	"github.com/askdb-inc/askdb-engine/pkg/datasource/mssql"
	"github.com/askdb-inc/askdb-engine/pkg/datasource/postgres"
	"github.com/askdb-inc/askdb-engine/pkg/handlers"
	"github.com/askdb-inc/askdb-engine/pkg/llm"
	"github.com/askdb-inc/askdb-engine/pkg/logging"
	"github.com/askdb-inc/askdb-engine/pkg/mcp"
	"github.com/askdb-inc/askdb-engine/pkg/mcp/tools"
	"github.com/askdb-inc/askdb-engine/pkg/middleware"
	"github.com/askdb-inc/askdb-engine/pkg/services"
	"github.com/askdb-inc/askdb-engine/pkg/sqlguard"
)

// Version is set at build time via ldflags
var Version = "dev"

// runner pairs statement execution with schema discovery; both adapters
// implement both.
type runner interface {
	datasource.StatementRunner
	datasource.SchemaDiscoverer
}

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("datastore_driver", cfg.Datastore.Driver),
		zap.String("datastore", logging.SanitizeConnectionString(cfg.Datastore.ConnectionString())),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		run     runner
		dialect string
	)
	switch cfg.Datastore.Driver {
	case "postgres":
		run, err = postgres.NewRunner(ctx, cfg.Datastore.ConnectionString(), cfg.Datastore.MaxConnections, logger)
		dialect = "PostgreSQL"
	case "mssql":
		run, err = mssql.NewRunner(ctx, &mssql.Config{
			Host:                   cfg.Datastore.Host,
			Port:                   cfg.Datastore.Port,
			Username:               cfg.Datastore.User,
			Password:               cfg.Datastore.Password,
			Database:               cfg.Datastore.Database,
			Encrypt:                cfg.Datastore.Encrypt,
			TrustServerCertificate: cfg.Datastore.TrustServerCertificate,
			MaxConnections:         int(cfg.Datastore.MaxConnections),
		}, logger)
		dialect = "SQL Server"
	}
	if err != nil {
		logger.Fatal("Failed to connect to datastore", zap.String("error", logging.SanitizeError(err)))
	}
	defer func() { _ = run.Close() }()

	if err := run.Ping(ctx); err != nil {
		logger.Fatal("Datastore is not reachable", zap.String("error", logging.SanitizeError(err)))
	}

	client, err := llm.NewClient(cfg.AI.Provider, &llm.Config{
		Endpoint:    cfg.AI.Endpoint,
		Model:       cfg.AI.Model,
		APIKey:      cfg.AI.APIKey,
		Temperature: cfg.AI.Temperature,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create model client", zap.Error(err))
	}

	validator := sqlguard.NewValidator(sqlguard.DefaultRuleSet())

	schemaService := services.NewSchemaService(run, logger)
	generator := services.NewGeneratorService(client, validator, schemaService, dialect, logger)
	executor := services.NewExecutor(run, validator, logger)
	nl2sql := services.NewNL2SQLService(generator, executor, cfg.Guard, logger)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, run, logger)
	healthHandler.RegisterRoutes(mux)

	nl2sqlHandler := handlers.NewNL2SQLHandler(nl2sql, logger)
	nl2sqlHandler.RegisterRoutes(mux)

	mcpServer := mcp.NewServer("askdb-engine", cfg.Version, logger)
	tools.RegisterQueryTools(mcpServer.MCP(), &tools.QueryToolDeps{NL2SQL: nl2sql, Logger: logger})
	mux.Handle("/mcp", mcpServer.NewStreamableHTTPServer())

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("starting askdb-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
