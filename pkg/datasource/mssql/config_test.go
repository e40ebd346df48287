package mssql

import (
	"strings"
	"testing"
)

func TestConnectionString(t *testing.T) {
	cfg := &Config{
		Host:                   "db.example.com",
		Port:                   1433,
		Username:               "app_user",
		Password:               "p@ss:word",
		Database:               "orders",
		Encrypt:                true,
		TrustServerCertificate: true,
		ConnectionTimeout:      30,
	}

	connStr := cfg.ConnectionString()

	if !strings.HasPrefix(connStr, "sqlserver://") {
		t.Errorf("expected sqlserver:// scheme, got %q", connStr)
	}
	if !strings.Contains(connStr, "app_user:p%40ss%3Aword@db.example.com:1433") {
		t.Errorf("credentials not escaped correctly: %q", connStr)
	}
	if !strings.Contains(connStr, "database=orders") {
		t.Errorf("missing database parameter: %q", connStr)
	}
	if !strings.Contains(connStr, "encrypt=true") {
		t.Errorf("missing encrypt parameter: %q", connStr)
	}
	if !strings.Contains(connStr, "TrustServerCertificate=true") {
		t.Errorf("missing TrustServerCertificate parameter: %q", connStr)
	}
	if !strings.Contains(connStr, "connection+timeout=30") {
		t.Errorf("missing connection timeout parameter: %q", connStr)
	}
}

func TestConnectionStringEncryptDisabled(t *testing.T) {
	cfg := &Config{
		Host:     "localhost",
		Port:     1433,
		Username: "sa",
		Password: "secret",
		Database: "test",
	}

	connStr := cfg.ConnectionString()

	if !strings.Contains(connStr, "encrypt=false") {
		t.Errorf("expected encrypt=false, got %q", connStr)
	}
	if strings.Contains(connStr, "TrustServerCertificate") {
		t.Errorf("unexpected TrustServerCertificate parameter: %q", connStr)
	}
}
