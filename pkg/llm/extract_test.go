package llm

import "testing"

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare statement",
			input:    "SELECT * FROM users",
			expected: "SELECT * FROM users",
		},
		{
			name:     "sql fence",
			input:    "```sql\nSELECT * FROM users\n```",
			expected: "SELECT * FROM users",
		},
		{
			name:     "plain fence",
			input:    "```\nSELECT * FROM users\n```",
			expected: "SELECT * FROM users",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n SELECT 1  \n",
			expected: "SELECT 1",
		},
		{
			name:     "think block then fence",
			input:    "<think>the user wants all rows</think>\n```sql\nSELECT * FROM orders\n```",
			expected: "SELECT * FROM orders",
		},
		{
			name:     "error sentinel preserved",
			input:    "ERROR: Cannot generate query from this question",
			expected: "ERROR: Cannot generate query from this question",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSQL(tt.input); got != tt.expected {
				t.Errorf("ExtractSQL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
