package sqlguard

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected QueryType
	}{
		{"simple select", "SELECT * FROM users", QuerySelect},
		{"lowercase select", "select id from orders", QuerySelect},
		{"mixed case", "SeLeCt 1", QuerySelect},
		{"leading whitespace", "   SELECT 1", QuerySelect},
		{"insert", "INSERT INTO users (name) VALUES ('a')", QueryInsert},
		{"update", "UPDATE products SET price=9.99 WHERE id=5", QueryUpdate},
		{"delete", "DELETE FROM orders WHERE id=1", QueryDelete},
		{"with clause is unknown", "WITH t AS (SELECT 1) SELECT * FROM t", QueryUnknown},
		{"ddl is unknown", "DROP TABLE users", QueryUnknown},
		{"show is unknown", "SHOW TABLES", QueryUnknown},
		{"empty", "", QueryUnknown},
		{"gibberish", "hello world", QueryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	input := "UPDATE products SET price=9.99 WHERE id=5"
	first := Classify(input)
	for i := 0; i < 10; i++ {
		if got := Classify(input); got != first {
			t.Fatalf("Classify is not deterministic: %v != %v", got, first)
		}
	}
}

func TestQueryType_IsWrite(t *testing.T) {
	writes := []QueryType{QueryInsert, QueryUpdate, QueryDelete}
	for _, qt := range writes {
		if !qt.IsWrite() {
			t.Errorf("%v.IsWrite() = false, want true", qt)
		}
	}
	for _, qt := range []QueryType{QuerySelect, QueryUnknown} {
		if qt.IsWrite() {
			t.Errorf("%v.IsWrite() = true, want false", qt)
		}
	}
}
