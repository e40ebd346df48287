package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Load reads config.yaml from the working directory, so tests run from a
// temp dir to control which file (if any) is present.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_EnvironmentOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9191")
	t.Setenv("DATASTORE_PASSWORD", "secret")
	t.Setenv("AI_PROVIDER", "anthropic")

	cfg, err := Load("1.2.3")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", cfg.Version)
	}
	if cfg.Port != "9191" {
		t.Errorf("port = %q, want 9191", cfg.Port)
	}
	if cfg.Datastore.Driver != "postgres" {
		t.Errorf("default driver = %q, want postgres", cfg.Datastore.Driver)
	}
	if cfg.Datastore.Password != "secret" {
		t.Error("password not taken from environment")
	}
	if cfg.AI.Provider != "anthropic" {
		t.Errorf("provider = %q, want anthropic", cfg.AI.Provider)
	}
	if cfg.Guard.MaxQuestionLength != 500 {
		t.Errorf("max question length = %d, want 500", cfg.Guard.MaxQuestionLength)
	}
	if !cfg.Guard.RejectInjection {
		t.Error("reject_injection should default to true")
	}
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `
port: "3000"
datastore:
  driver: mssql
  host: sqlbox
  port: 1433
ai:
  provider: openai
  model: gpt-4o
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, dir)
	t.Setenv("PORT", "4000") // env wins over YAML

	cfg, err := Load("dev")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "4000" {
		t.Errorf("port = %q, want env override 4000", cfg.Port)
	}
	if cfg.Datastore.Driver != "mssql" {
		t.Errorf("driver = %q, want mssql", cfg.Datastore.Driver)
	}
	if cfg.Datastore.Host != "sqlbox" {
		t.Errorf("host = %q, want sqlbox", cfg.Datastore.Host)
	}
	if cfg.AI.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", cfg.AI.Model)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATASTORE_DRIVER", "oracle")

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error for unsupported driver")
	} else if !strings.Contains(err.Error(), "driver") {
		t.Errorf("error %q does not mention driver", err)
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("AI_PROVIDER", "gemini")

	if _, err := Load("dev"); err == nil {
		t.Fatal("expected error for unsupported provider")
	}
}

func TestConnectionString(t *testing.T) {
	ds := DatastoreConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "sales", SSLMode: "disable",
	}
	got := ds.ConnectionString()
	want := "host=db port=5432 user=app password=pw dbname=sales sslmode=disable"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
