package logging

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		leaks    []string
		survives []string
	}{
		{
			name:     "keyword form",
			input:    "host=db port=5432 user=app password=hunter2 dbname=sales",
			leaks:    []string{"hunter2"},
			survives: []string{"host=db", "dbname=sales"},
		},
		{
			name:     "url form",
			input:    "postgres://app:hunter2@db:5432/sales",
			leaks:    []string{"hunter2", "app:"},
			survives: []string{"/sales"},
		},
		{
			name:  "empty",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeConnectionString(tt.input)
			for _, leak := range tt.leaks {
				if strings.Contains(got, leak) {
					t.Errorf("sanitized string %q leaks %q", got, leak)
				}
			}
			for _, keep := range tt.survives {
				if !strings.Contains(got, keep) {
					t.Errorf("sanitized string %q lost %q", got, keep)
				}
			}
		})
	}
}

func TestSanitizeError(t *testing.T) {
	err := errors.New(`connect failed: sqlserver://sa:S3cret@db:1433?api_key=abcdefghijklmnopqrstuvwx`)
	got := SanitizeError(err)
	if strings.Contains(got, "S3cret") {
		t.Errorf("sanitized error leaks password: %q", got)
	}
	if strings.Contains(got, "abcdefghijklmnopqrstuvwx") {
		t.Errorf("sanitized error leaks API key: %q", got)
	}
	if SanitizeError(nil) != "" {
		t.Error("SanitizeError(nil) should be empty")
	}
}

func TestSanitizeQuery_Truncation(t *testing.T) {
	short := "SELECT 1"
	if got := SanitizeQuery(short); got != short {
		t.Errorf("short query modified: %q", got)
	}
	long := strings.Repeat("SELECT * FROM users WHERE id = 1 AND ", 10)
	got := SanitizeQuery(long)
	if len(got) != MaxQueryLogLength+3 {
		t.Errorf("truncated length = %d, want %d", len(got), MaxQueryLogLength+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated query missing ellipsis: %q", got)
	}
}
