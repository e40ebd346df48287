package sqlguard

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the outcome of a single validation pass. The invariant holds
// both ways: Safe is true iff Sanitized is populated and Reason is empty.
// Verdicts are produced fresh for every call and never cached, because the
// confirmation protocol requires re-validation at execution time.
type Verdict struct {
	Safe      bool
	Sanitized string
	Reason    string
}

// Validator checks statement text against a RuleSet. Construct with
// NewValidator; the zero value is not usable. Validators are stateless
// after construction and safe for concurrent use.
type Validator struct {
	rules    RuleSet
	keywords []*regexp.Regexp // index-aligned with rules.Blocklist
}

// NewValidator compiles the rule set into a reusable Validator.
func NewValidator(rules RuleSet) *Validator {
	keywords := make([]*regexp.Regexp, len(rules.Blocklist))
	for i, kw := range rules.Blocklist {
		keywords[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return &Validator{rules: rules, keywords: keywords}
}

// Validate runs the check sequence in order, short-circuiting on the first
// failure: empty text, unrecognized leading keyword, blocklisted keywords,
// structural patterns, semicolon placement. On success the returned
// Verdict carries the sanitized statement.
//
// This is a blocklist-plus-structure check, not a parser. It does not
// defend against statements that are syntactically clean but semantically
// destructive (a broad DELETE with a true WHERE clause passes).
func (v *Validator) Validate(sqlText string) Verdict {
	trimmed := strings.TrimSpace(sqlText)
	if trimmed == "" {
		return unsafe("empty query")
	}

	if Classify(trimmed) == QueryUnknown {
		return unsafe("query must start with one of: SELECT, INSERT, UPDATE, DELETE")
	}

	upper := strings.ToUpper(trimmed)
	for i, kw := range v.keywords {
		if kw.MatchString(upper) {
			return unsafe(fmt.Sprintf("query contains forbidden keyword: %s", v.rules.Blocklist[i]))
		}
	}

	for _, pattern := range v.rules.Patterns {
		if pattern.MatchString(trimmed) {
			return unsafe("query contains forbidden pattern or syntax")
		}
	}

	switch n := strings.Count(trimmed, ";"); {
	case n > 1:
		return unsafe("multiple SQL statements are not allowed")
	case n == 1 && !strings.HasSuffix(trimmed, ";"):
		return unsafe("semicolon found in middle of query")
	}

	return Verdict{Safe: true, Sanitized: sanitize(trimmed)}
}

func unsafe(reason string) Verdict {
	return Verdict{Reason: reason}
}

// sanitize strips a single trailing semicolon and collapses whitespace
// runs to single spaces. Sanitization is a fixed point: validating a
// sanitized statement yields the same statement back.
func sanitize(sqlText string) string {
	s := strings.TrimSpace(sqlText)
	if strings.HasSuffix(s, ";") {
		s = strings.TrimSpace(strings.TrimSuffix(s, ";"))
	}
	return strings.Join(strings.Fields(s), " ")
}
