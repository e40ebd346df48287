// Package logging provides the process logger and log sanitization
// helpers for everything that touches connection strings or raw SQL.
package logging

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Production environments get the
// JSON encoder at info level; everything else gets the development
// console encoder at debug level.
func NewLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production", "prod":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
