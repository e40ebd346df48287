// Package services contains the business logic of the query pipeline.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/askdb-inc/askdb-engine/pkg/datasource"
)

// SchemaService introspects the datastore and renders its schema as
// text suitable for inclusion in a generation prompt.
type SchemaService struct {
	discoverer datasource.SchemaDiscoverer
	logger     *zap.Logger
}

// NewSchemaService creates a schema service.
func NewSchemaService(discoverer datasource.SchemaDiscoverer, logger *zap.Logger) *SchemaService {
	return &SchemaService{
		discoverer: discoverer,
		logger:     logger,
	}
}

// Describe returns a text rendering of all user tables with their
// columns, primary keys and foreign keys.
func (s *SchemaService) Describe(ctx context.Context) (string, error) {
	tables, err := s.discoverer.DiscoverTables(ctx)
	if err != nil {
		return "", fmt.Errorf("discover tables: %w", err)
	}

	fks, err := s.discoverer.DiscoverForeignKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("discover foreign keys: %w", err)
	}

	fksByTable := make(map[string][]datasource.ForeignKeyMetadata)
	for _, fk := range fks {
		key := fk.SourceSchema + "." + fk.SourceTable
		fksByTable[key] = append(fksByTable[key], fk)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Database has %d tables:\n", len(tables))

	for _, table := range tables {
		columns, err := s.discoverer.DiscoverColumns(ctx, table.SchemaName, table.TableName)
		if err != nil {
			return "", fmt.Errorf("discover columns for %s.%s: %w", table.SchemaName, table.TableName, err)
		}

		fmt.Fprintf(&b, "\nTable: %s\n", table.TableName)
		b.WriteString("Columns:\n")

		var pkColumns []string
		for _, col := range columns {
			nullable := "NOT NULL"
			if col.IsNullable {
				nullable = "NULL"
			}
			fmt.Fprintf(&b, "  - %s: %s %s\n", col.ColumnName, strings.ToUpper(col.DataType), nullable)
			if col.IsPrimaryKey {
				pkColumns = append(pkColumns, col.ColumnName)
			}
		}

		if len(pkColumns) > 0 {
			fmt.Fprintf(&b, "Primary Key: %s\n", strings.Join(pkColumns, ", "))
		}

		if tableFKs := fksByTable[table.SchemaName+"."+table.TableName]; len(tableFKs) > 0 {
			b.WriteString("Foreign Keys:\n")
			for _, fk := range tableFKs {
				fmt.Fprintf(&b, "  - %s -> %s.%s\n", fk.SourceColumn, fk.TargetTable, fk.TargetColumn)
			}
		}
	}

	return b.String(), nil
}
