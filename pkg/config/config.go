// Package config loads service configuration from config.yaml with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for askdb-engine. Values come from a
// YAML file (config.yaml) or environment variables; environment variables
// always override YAML. Secrets (passwords, API keys) must only come from
// environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Target datastore the gated statements run against
	Datastore DatastoreConfig `yaml:"datastore"`

	// Model endpoint used to generate SQL from questions
	AI AIConfig `yaml:"ai"`

	// Safety gate settings
	Guard GuardConfig `yaml:"guard"`
}

// DatastoreConfig holds connection settings for the relational datastore.
type DatastoreConfig struct {
	// Driver selects the adapter: "postgres" or "mssql".
	Driver         string `yaml:"driver" env:"DATASTORE_DRIVER" env-default:"postgres"`
	Host           string `yaml:"host" env:"DATASTORE_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"DATASTORE_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"DATASTORE_USER" env-default:"askdb"`
	Password       string `yaml:"-" env:"DATASTORE_PASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"DATASTORE_DATABASE" env-default:"askdb"`
	SSLMode        string `yaml:"ssl_mode" env:"DATASTORE_SSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"DATASTORE_MAX_CONNECTIONS" env-default:"10"`

	// SQL Server options, ignored by the postgres driver
	Encrypt                bool `yaml:"encrypt" env:"DATASTORE_ENCRYPT" env-default:"true"`
	TrustServerCertificate bool `yaml:"trust_server_certificate" env:"DATASTORE_TRUST_SERVER_CERT" env-default:"false"`
}

// AIConfig holds settings for the SQL-generation model endpoint.
type AIConfig struct {
	// Provider selects the client: "openai" (any OpenAI-compatible
	// endpoint) or "anthropic".
	Provider    string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	Endpoint    string  `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model       string  `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`
	APIKey      string  `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0"`
}

// GuardConfig holds safety gate settings.
type GuardConfig struct {
	// MaxQuestionLength bounds inbound natural-language questions.
	MaxQuestionLength int `yaml:"max_question_length" env:"GUARD_MAX_QUESTION_LENGTH" env-default:"500"`
	// RejectInjection rejects questions carrying SQL injection fingerprints
	// before they reach the generator.
	RejectInjection bool `yaml:"reject_injection" env:"GUARD_REJECT_INJECTION" env-default:"true"`
}

// Load reads configuration from config.yaml with environment variable
// overrides, falling back to environment-only when no file is present.
// The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Datastore.Driver {
	case "postgres", "mssql":
	default:
		return fmt.Errorf("unsupported datastore driver: %q", c.Datastore.Driver)
	}

	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported AI provider: %q", c.AI.Provider)
	}

	if c.Guard.MaxQuestionLength <= 0 {
		return fmt.Errorf("guard max_question_length must be positive")
	}

	return nil
}

// ConnectionString returns a keyword/value PostgreSQL connection string.
func (c *DatastoreConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
