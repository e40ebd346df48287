package sqlguard

import "regexp"

// RuleSet holds the keyword blocklist and structural patterns a Validator
// enforces. A RuleSet is treated as immutable after construction; tests
// that need narrower or wider rules build their own set instead of
// mutating shared state.
type RuleSet struct {
	// Blocklist is scanned word-boundary-aware and case-insensitively.
	Blocklist []string

	// Patterns are structural checks: stacked statements, comment markers,
	// file-system access, inline execution, vendor procedure prefixes.
	Patterns []*regexp.Regexp
}

// DefaultRuleSet returns the production rules. DDL, DCL and transaction
// control keywords are forbidden outright; the pattern list catches
// injection shapes that survive the keyword scan.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Blocklist: []string{
			"DROP", "ALTER", "CREATE", "TRUNCATE", "REPLACE", "MERGE",
			"GRANT", "REVOKE", "EXECUTE", "EXEC", "CALL", "BEGIN",
			"COMMIT", "ROLLBACK", "RENAME", "CASCADE",
		},
		Patterns: []*regexp.Regexp{
			// Semicolon followed by another statement keyword (stacked statements)
			regexp.MustCompile(`(?i);\s*(?:SELECT|INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE)`),
			// Line and block comments can hide trailing payloads
			regexp.MustCompile(`--`),
			regexp.MustCompile(`/\*`),
			// File-system access
			regexp.MustCompile(`(?i)\bINTO\s+OUTFILE\b`),
			regexp.MustCompile(`(?i)\bLOAD_FILE\b`),
			// Inline execution calls
			regexp.MustCompile(`(?i)\bEXEC\s*\(`),
			// Vendor system-procedure prefixes (Oracle SYS., MSSQL xp_)
			regexp.MustCompile(`(?i)\bSYS\.`),
			regexp.MustCompile(`(?i)\bxp_`),
		},
	}
}
